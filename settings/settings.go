// Package settings loads named device profiles from YAML, TOML or JSON and
// applies them to the fields of a device.
//
// A document lists profiles:
//
//	profiles:
//	  - name: low-noise
//	    desc: temporal and median filters on
//	    when: "SENXOR_TYPE == 5"
//	    settings:
//	      TEMPORAL_ENABLE: 1
//	      TEMPORAL: 125
//	      MEDIAN_ENABLE: 1
//
// The when expression is kept verbatim; choosing which profiles apply is
// left to the caller (see Select).
package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jonas-koeritz/senxor/errdefs"
	"github.com/jonas-koeritz/senxor/regmap"
)

// Format is the encoding of a settings document.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// Profile is a named set of field values.
type Profile struct {
	Name     string           `yaml:"name" toml:"name" json:"name"`
	Desc     string           `yaml:"desc,omitempty" toml:"desc,omitempty" json:"desc,omitempty"`
	When     string           `yaml:"when,omitempty" toml:"when,omitempty" json:"when,omitempty"`
	Settings map[string]int64 `yaml:"settings" toml:"settings" json:"settings"`
}

type document struct {
	Profiles []Profile `yaml:"profiles" toml:"profiles" json:"profiles"`
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("unsupported settings file type %q", filepath.Ext(path))
	}
}

// Load reads the profiles of the file at path.
func Load(path string) ([]Profile, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings: %w", err)
	}
	defer f.Close()

	profiles, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// Decode parses a settings document read from r.
func Decode(r io.Reader, format Format) ([]Profile, error) {
	var doc document

	var err error
	switch format {
	case YAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	case TOML:
		_, err = toml.NewDecoder(r).Decode(&doc)
	case JSON:
		err = json.NewDecoder(r).Decode(&doc)
	default:
		return nil, fmt.Errorf("unsupported settings format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s settings: %w", format, err)
	}
	if doc.Profiles == nil {
		return nil, fmt.Errorf("settings document has no profiles")
	}

	seen := make(map[string]bool, len(doc.Profiles))
	for i, p := range doc.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile %d has no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate profile %q", p.Name)
		}
		seen[p.Name] = true
	}
	return doc.Profiles, nil
}

// Encode writes profiles as a settings document.
func Encode(w io.Writer, format Format, profiles []Profile) error {
	doc := document{Profiles: profiles}
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		return toml.NewEncoder(w).Encode(doc)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unsupported settings format %q", format)
	}
}

// Select returns the profiles for which keep reports true, in order.
func Select(profiles []Profile, keep func(Profile) bool) []Profile {
	var out []Profile
	for _, p := range profiles {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the profile called name.
func Find(profiles []Profile, name string) (Profile, bool) {
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Values resolves the settings of p to field values. Field names are
// matched case-insensitively.
func (p Profile) Values(m *regmap.Map) (map[regmap.Name]uint32, error) {
	vals := make(map[regmap.Name]uint32, len(p.Settings))
	for key, v := range p.Settings {
		name := regmap.Name(strings.ToUpper(key))
		if _, ok := m.Field(name); !ok {
			return nil, errdefs.Validation("apply profile "+p.Name, key, "unknown field")
		}
		if v < 0 || v > math.MaxUint32 {
			return nil, errdefs.Validation("apply profile "+p.Name, key, "value %d out of range", v)
		}
		vals[name] = uint32(v)
	}
	return vals, nil
}

// Apply writes the settings of p. All names and values are checked before
// the first write.
func Apply(fields *regmap.Fields, p Profile) error {
	vals, err := p.Values(fields.Map())
	if err != nil {
		return err
	}
	if err := fields.SetFields(vals); err != nil {
		return fmt.Errorf("apply profile %s: %w", p.Name, err)
	}
	return nil
}
