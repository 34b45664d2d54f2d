package regmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonas-koeritz/senxor/errdefs"
)

func TestMI48Map(t *testing.T) {
	m := MI48()

	assert.Len(t, m.Registers(), 43)
	assert.Len(t, m.Fields(), 65)

	reg, ok := m.Register(REG_FRAME_MODE)
	require.True(t, ok)
	assert.Equal(t, "FRAME_MODE", reg.Name)
	assert.True(t, reg.AutoReset)
	assert.Equal(t, "RW", reg.Access())
	assert.Equal(t, "0xB1 FRAME_MODE", reg.String())

	reg, ok = m.RegisterByName("MCU_RESET")
	require.True(t, ok)
	assert.Equal(t, "W", reg.Access())

	fd, ok := m.Field(TEMPORAL)
	require.True(t, ok)
	assert.Equal(t, 16, fd.Width())
	assert.Equal(t, []Addr{REG_FILTER_SETTING_1_1, REG_FILTER_SETTING_1_0}, fd.Addrs())
	assert.False(t, fd.AutoReset)

	fd, ok = m.Field(DATA_READY)
	require.True(t, ok)
	assert.True(t, fd.AutoReset, "derived from STATUS")

	assert.Equal(t, []Name{GET_SINGLE_FRAME, CONTINUOUS_STREAM, READOUT_MODE, NO_HEADER, LOW_NETD_ROW_IN_HEADER}, m.FieldsOf(REG_FRAME_MODE))
	assert.Equal(t, []Name{TEMPORAL_ENABLE, TEMPORAL_INIT, ROLLING_AVERAGE_ENABLE}, m.FieldsOf(REG_FILTER_CONTROL))
}

func TestNewMapValidation(t *testing.T) {
	regs := []Register{
		{Name: "A", Addr: 0x10, Readable: true, Writable: true},
		{Name: "B", Addr: 0x11, Readable: true, Writable: true},
	}

	tests := []struct {
		name   string
		regs   []Register
		fields []Field
	}{
		{
			name: "duplicate address",
			regs: append(regs, Register{Name: "C", Addr: 0x10}),
		},
		{
			name: "duplicate field",
			fields: []Field{
				{Name: "X", Segments: bits(0x10, 0, 1)},
				{Name: "X", Segments: bits(0x10, 1, 1)},
			},
		},
		{
			name:   "undeclared register",
			fields: []Field{{Name: "X", Segments: bits(0x20, 0, 1)}},
		},
		{
			name:   "segment overflows register",
			fields: []Field{{Name: "X", Segments: bits(0x10, 6, 3)}},
		},
		{
			name:   "zero width",
			fields: []Field{{Name: "X", Segments: bits(0x10, 0, 0)}},
		},
		{
			name:   "register twice in a field",
			fields: []Field{{Name: "X", Segments: []Segment{{Addr: 0x10, Width: 2}, {Addr: 0x10, Offset: 4, Width: 2}}}},
		},
		{
			name: "overlapping bits",
			fields: []Field{
				{Name: "X", Segments: bits(0x10, 0, 3)},
				{Name: "Y", Segments: bits(0x10, 2, 2)},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.regs
			if r == nil {
				r = regs
			}
			_, err := NewMap(r, tc.fields)
			require.Error(t, err)
			assert.ErrorIs(t, err, errdefs.ErrValidation)
		})
	}

	m, err := NewMap(regs, []Field{
		{Name: "X", Segments: bits(0x10, 0, 3)},
		{Name: "Y", Segments: bits(0x10, 3, 5)},
		{Name: "Z", Segments: octets(0x11)},
	})
	require.NoError(t, err)
	assert.Equal(t, []Name{"X", "Y", "Z"}, m.Names())
}

func TestFieldDisplay(t *testing.T) {
	m := MI48()
	none := func(Name) (uint32, bool) { return 0, false }

	tests := []struct {
		field  Name
		value  uint32
		lookup Lookup
		want   string
	}{
		{FRAME_RATE_DIVIDER, 0, none, "MAX FPS"},
		{FRAME_RATE_DIVIDER, 4, none, "1/4 MAX FPS"},
		{SLEEP_PERIOD, 5, none, "50 ms"},
		{SLEEP_PERIOD, 5, func(n Name) (uint32, bool) { return 1, n == PERIOD_X100 }, "5 s"},
		{LUT_SELECTOR, 0, none, "Default LUT"},
		{LUT_SELECTOR, 2, func(n Name) (uint32, bool) { return 1, n == LUT_SOURCE }, "Extended LUT"},
		{OFFSET, 0xF9, none, "-0.7 K"},
		{OTF, 10, none, "1.10"},
		{EMISSIVITY, 95, none, "95%"},
		{PRODUCTION_YEAR, 23, none, "2023"},
		{CALIB_SAMPLE_SIZE, 1, none, "200 frames"},
		{TIMEOUT_PERIOD, 3, none, "100 ms"},
		{READOUT_MODE, 5, none, "N/A"},
		{SENXOR_TYPE, 5, none, "MI0802 rev.2"},
		{CONTINUOUS_STREAM, 1, none, "true"},
		{STARK_CUTOFF, 32, none, "32"},
	}

	for _, tc := range tests {
		fd, ok := m.Field(tc.field)
		require.True(t, ok, tc.field)
		assert.Equal(t, tc.want, fd.Display(tc.value, tc.lookup), "%s=%d", tc.field, tc.value)
	}
}
