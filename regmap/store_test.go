package regmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonas-koeritz/senxor/errdefs"
)

func TestStoreCachedRead(t *testing.T) {
	m := MI48()
	for _, reg := range m.Registers() {
		if reg.AutoReset {
			continue
		}
		ft := newFakeTransport()
		ft.set(reg.Addr, 0x5A)
		s := NewStore(m, ft)

		v, err := s.Read(reg.Addr)
		require.NoError(t, err)
		assert.Equal(t, uint8(0x5A), v)

		v, err = s.Read(reg.Addr)
		require.NoError(t, err)
		assert.Equal(t, uint8(0x5A), v)
		assert.Equal(t, 1, ft.trips(), "%s: second read must hit the cache", reg)
	}
}

func TestStoreAutoResetRead(t *testing.T) {
	m := MI48()
	for _, reg := range m.Registers() {
		if !reg.AutoReset {
			continue
		}
		ft := newFakeTransport()
		s := NewStore(m, ft)

		for i := 0; i < 3; i++ {
			ft.set(reg.Addr, uint8(i))
			v, err := s.Read(reg.Addr)
			require.NoError(t, err)
			assert.Equal(t, uint8(i), v)
		}
		assert.Equal(t, 3, ft.trips(), "%s: every read goes to the device", reg)
	}
}

func TestStoreWrite(t *testing.T) {
	ft := newFakeTransport()
	s := NewStore(MI48(), ft)

	require.NoError(t, s.Write(REG_EMISSIVITY, 95))
	assert.Equal(t, uint8(95), ft.get(REG_EMISSIVITY))

	v, err := s.Read(REG_EMISSIVITY)
	require.NoError(t, err)
	assert.Equal(t, uint8(95), v)
	assert.Equal(t, 1, ft.trips(), "read after write is served from cache")
}

func TestStoreFailedWriteKeepsCache(t *testing.T) {
	ft := newFakeTransport()
	ft.set(REG_EMISSIVITY, 100)
	s := NewStore(MI48(), ft)

	_, err := s.Read(REG_EMISSIVITY)
	require.NoError(t, err)

	ft.failWrite = true
	err = s.Write(REG_EMISSIVITY, 50)
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrTransport)
	assert.ErrorIs(t, err, errLinkDown)
	assert.Contains(t, err.Error(), "0xCA EMISSIVITY")

	assert.Equal(t, uint8(100), s.Status()[REG_EMISSIVITY])
}

func TestStoreReadError(t *testing.T) {
	ft := newFakeTransport()
	ft.failRead = true
	s := NewStore(MI48(), ft)

	_, err := s.Read(REG_FRAME_RATE)
	assert.ErrorIs(t, err, errdefs.ErrTransport)
	assert.Empty(t, s.Status())
}

func TestStoreValidation(t *testing.T) {
	ft := newFakeTransport()
	s := NewStore(MI48(), ft)

	_, err := s.Read(0x7F)
	assert.ErrorIs(t, err, errdefs.ErrValidation)

	err = s.Write(REG_STATUS, 1)
	assert.ErrorIs(t, err, errdefs.ErrValidation)

	err = s.Write(0x7F, 1)
	assert.ErrorIs(t, err, errdefs.ErrValidation)

	assert.Zero(t, ft.trips(), "validation happens before I/O")
}

func TestStoreReadAll(t *testing.T) {
	m := MI48()
	ft := newFakeTransport()
	for i, addr := range m.Addrs() {
		ft.set(addr, uint8(i+1))
	}
	s := NewStore(m, ft)

	vals, err := s.ReadAll()
	require.NoError(t, err)
	assert.Len(t, vals, len(m.Registers()))
	assert.Equal(t, 1, ft.trips())

	snap := s.Status()
	assert.Equal(t, vals, snap)
	assert.Equal(t, 1, ft.trips(), "status performs no I/O")

	for i, addr := range m.Addrs() {
		assert.Equal(t, uint8(i+1), snap[addr])
	}
}

func TestStoreReadMany(t *testing.T) {
	ft := newFakeTransport()
	ft.set(REG_EMISSIVITY, 95)
	ft.set(REG_FRAME_RATE, 2)
	ft.set(REG_STATUS, 0x10)
	s := NewStore(MI48(), ft)

	_, err := s.Read(REG_EMISSIVITY)
	require.NoError(t, err)

	vals, err := s.ReadMany([]Addr{REG_EMISSIVITY, REG_FRAME_RATE, REG_STATUS})
	require.NoError(t, err)
	assert.Equal(t, map[Addr]uint8{REG_EMISSIVITY: 95, REG_FRAME_RATE: 2, REG_STATUS: 0x10}, vals)
	assert.Equal(t, 1, ft.reads)
	assert.Equal(t, 1, ft.bulk, "misses are fetched together")

	_, err = s.ReadMany([]Addr{REG_EMISSIVITY, REG_FRAME_RATE})
	require.NoError(t, err)
	assert.Equal(t, 2, ft.trips(), "all cached")
}

func TestStoreRefreshInvalidate(t *testing.T) {
	ft := newFakeTransport()
	ft.set(REG_FRAME_RATE, 1)
	s := NewStore(MI48(), ft)

	_, err := s.Read(REG_FRAME_RATE)
	require.NoError(t, err)

	ft.set(REG_FRAME_RATE, 3)
	v, err := s.Refresh(REG_FRAME_RATE)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), v)

	s.Invalidate()
	assert.Empty(t, s.Status())
	_, err = s.Read(REG_FRAME_RATE)
	require.NoError(t, err)
	assert.Equal(t, 3, ft.trips())
}
