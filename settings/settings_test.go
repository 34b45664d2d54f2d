package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonas-koeritz/senxor/errdefs"
	"github.com/jonas-koeritz/senxor/regmap"
)

const yamlDoc = `
profiles:
  - name: default
    desc: factory filters
    settings:
      TEMPORAL_ENABLE: 1
      TEMPORAL: 125
  - name: bright
    when: "EMISSIVITY < 90"
    settings:
      emissivity: 95
`

const tomlDoc = `
[[profiles]]
name = "default"
desc = "factory filters"
[profiles.settings]
TEMPORAL_ENABLE = 1
TEMPORAL = 125

[[profiles]]
name = "bright"
when = "EMISSIVITY < 90"
[profiles.settings]
emissivity = 95
`

const jsonDoc = `{"profiles": [
  {"name": "default", "desc": "factory filters", "settings": {"TEMPORAL_ENABLE": 1, "TEMPORAL": 125}},
  {"name": "bright", "when": "EMISSIVITY < 90", "settings": {"emissivity": 95}}
]}`

func TestDecode(t *testing.T) {
	for format, doc := range map[Format]string{YAML: yamlDoc, TOML: tomlDoc, JSON: jsonDoc} {
		t.Run(string(format), func(t *testing.T) {
			profiles, err := Decode(strings.NewReader(doc), format)
			require.NoError(t, err)
			require.Len(t, profiles, 2)

			assert.Equal(t, "default", profiles[0].Name)
			assert.Equal(t, "factory filters", profiles[0].Desc)
			assert.Equal(t, map[string]int64{"TEMPORAL_ENABLE": 1, "TEMPORAL": 125}, profiles[0].Settings)
			assert.Equal(t, "EMISSIVITY < 90", profiles[1].When)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("foo: 1\n"), YAML)
	assert.ErrorContains(t, err, "no profiles")

	_, err = Decode(strings.NewReader(`{"profiles": [{"settings": {}}]}`), JSON)
	assert.ErrorContains(t, err, "no name")

	_, err = Decode(strings.NewReader(`{"profiles": [{"name": "a"}, {"name": "a"}]}`), JSON)
	assert.ErrorContains(t, err, "duplicate")

	_, err = Decode(strings.NewReader(""), "ini")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "senxor.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))

	profiles, err := Load(path)
	require.NoError(t, err)
	p, ok := Find(profiles, "bright")
	require.True(t, ok)
	assert.Equal(t, int64(95), p.Settings["emissivity"])

	_, err = Load(filepath.Join(dir, "senxor.ini"))
	assert.ErrorContains(t, err, "unsupported")
}

func TestEncodeRoundTrip(t *testing.T) {
	profiles, err := Decode(strings.NewReader(yamlDoc), YAML)
	require.NoError(t, err)

	for _, format := range []Format{YAML, TOML, JSON} {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, format, profiles), format)
		back, err := Decode(&buf, format)
		require.NoError(t, err, format)
		assert.Equal(t, profiles, back, format)
	}
}

type memTransport map[uint8]uint8

func (m memTransport) ReadRegister(addr uint8) (uint8, error) { return m[addr], nil }
func (m memTransport) WriteRegister(addr, v uint8) error      { m[addr] = v; return nil }
func (m memTransport) ReadRegisters(addrs []uint8) (map[uint8]uint8, error) {
	out := make(map[uint8]uint8, len(addrs))
	for _, a := range addrs {
		out[a] = m[a]
	}
	return out, nil
}

func TestApply(t *testing.T) {
	regs := memTransport{}
	fields := regmap.NewFields(regmap.NewStore(regmap.MI48(), regs))

	profiles, err := Decode(strings.NewReader(yamlDoc), YAML)
	require.NoError(t, err)

	for _, p := range Select(profiles, func(p Profile) bool { return p.When == "" }) {
		require.NoError(t, Apply(fields, p))
	}
	assert.Equal(t, uint8(125), regs[uint8(regmap.REG_FILTER_SETTING_1_0)])
	assert.Equal(t, uint8(0), regs[uint8(regmap.REG_FILTER_SETTING_1_1)])
	assert.Equal(t, uint8(1), regs[uint8(regmap.REG_FILTER_CONTROL)]&1)
	assert.NotContains(t, regs, uint8(regmap.REG_EMISSIVITY), "profile with a condition not selected")

	err = Apply(fields, Profile{Name: "bad", Settings: map[string]int64{"EMISSIVITY": 90, "NOPE": 1}})
	assert.ErrorIs(t, err, errdefs.ErrValidation)
	err = Apply(fields, Profile{Name: "neg", Settings: map[string]int64{"OFFSET": -3}})
	assert.ErrorIs(t, err, errdefs.ErrValidation)
	assert.NotContains(t, regs, uint8(regmap.REG_EMISSIVITY), "nothing written for a rejected profile")
}
