package defaults

import (
	"bytes"
	"fmt"
	"io"

	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// replacedSections are list and map sections that a dataset file replaces
// wholesale instead of merging into the built-in values.
var replacedSections = []string{"hardCosts", "softCosts"}

// Load reads a dataset override file (YAML, TOML or JSON, chosen by
// extension) on top of Builtin. Scalar sections merge field by field,
// hardCosts and softCosts replace the built-in lists, and unitSizes and
// municipalities add or replace individual entries.
func Load(path string) (*Dataset, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading defaults file, %w", err)
	}
	return decode(v)
}

// LoadFromReader reads a YAML dataset override from r.
func LoadFromReader(r io.Reader) (*Dataset, error) {
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading defaults data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Dataset, error) {
	ds := Builtin()
	for _, key := range replacedSections {
		if !v.IsSet(key) {
			continue
		}
		switch key {
		case "hardCosts":
			ds.HardCosts = nil
		case "softCosts":
			ds.SoftCosts = nil
		}
	}
	if err := v.Unmarshal(ds); err != nil {
		return nil, fmt.Errorf("unable to decode defaults into struct, %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Validate checks the references inside the dataset that cannot fall back
// gracefully at calculation time.
func (d *Dataset) Validate() error {
	if _, ok := d.Municipalities[d.DefaultMunicipality]; !ok {
		return fmt.Errorf("default municipality %q is not defined", d.DefaultMunicipality)
	}
	for _, s := range d.SoftCosts {
		if s.Formula == "" {
			continue
		}
		if _, ok := d.Formula(s.Formula); !ok {
			return fmt.Errorf("soft cost %q uses unknown formula %q", s.Key, s.Formula)
		}
	}
	seen := make(map[string]struct{}, len(d.HardCosts))
	for _, h := range d.HardCosts {
		if _, dup := seen[h.Key]; dup {
			return fmt.Errorf("hard cost key %q is defined twice", h.Key)
		}
		seen[h.Key] = struct{}{}
	}
	if d.Financing.ConstructionPeriod > constants.MaxConstructionPeriod {
		return fmt.Errorf("construction period of %d months exceeds %d",
			d.Financing.ConstructionPeriod, constants.MaxConstructionPeriod)
	}
	return nil
}

// ExportYAML renders the dataset as a YAML override file.
func (d *Dataset) ExportYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode defaults: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode defaults: %w", err)
	}
	return buf.Bytes(), nil
}
