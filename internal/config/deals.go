package config

import (
	"fmt"

	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/internal/engine"
)

// DealSpec is one deal scenario in the configuration file. The shorthand
// fields are applied first, in the order they appear below, followed by the
// explicit edits.
type DealSpec struct {
	Name         string `yaml:"name"`
	Active       bool   `yaml:"active"`
	Units        int    `yaml:"units,omitempty"`
	BuildType    string `yaml:"buildType,omitempty"`
	Municipality string `yaml:"municipality,omitempty"`

	LandPrice          *float64 `yaml:"landPrice,omitempty"`
	HardCostPerSF      *float64 `yaml:"hardCostPerSF,omitempty"`
	SalePrice          *float64 `yaml:"salePrice,omitempty"`
	InterestRate       *float64 `yaml:"interestRate,omitempty"`
	ConstructionPeriod *int     `yaml:"constructionPeriod,omitempty"`
	StartMonth         string   `yaml:"startMonth,omitempty"`

	Edits []deal.Edit `yaml:"edits,omitempty"`
}

// Options returns the shape of the deal the scenario starts from.
func (s DealSpec) Options() deal.Options {
	return deal.Options{
		Units:        s.Units,
		BuildType:    s.BuildType,
		Municipality: s.Municipality,
	}
}

// ToEdits expands the shorthand fields and appends the explicit edits.
func (s DealSpec) ToEdits() []deal.Edit {
	edits := []deal.Edit{{Field: deal.FieldName, Text: s.Name}}
	if s.LandPrice != nil {
		edits = append(edits, deal.Edit{Field: deal.FieldLandPrice, Value: *s.LandPrice})
	}
	if s.HardCostPerSF != nil {
		edits = append(edits, deal.Edit{Field: deal.FieldHardCostPerSF, Value: *s.HardCostPerSF})
	}
	if s.SalePrice != nil {
		edits = append(edits, deal.Edit{Field: deal.FieldSalePrice, Value: *s.SalePrice})
	}
	if s.InterestRate != nil {
		edits = append(edits, deal.Edit{Field: deal.FieldInterestRate, Value: *s.InterestRate})
	}
	if s.ConstructionPeriod != nil {
		edits = append(edits, deal.Edit{Field: deal.FieldConstructionPeriod, Value: float64(*s.ConstructionPeriod)})
	}
	if s.StartMonth != "" {
		edits = append(edits, deal.Edit{Field: deal.FieldStartMonth, Text: s.StartMonth})
	}
	return append(edits, s.Edits...)
}

// Validate checks the scenario's edits name real fields.
func (s DealSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("deal name is required")
	}
	for i, e := range s.Edits {
		if e.Field == "" {
			return fmt.Errorf("edit %d has no field", i)
		}
	}
	return nil
}

// Build runs the scenario through an editing session and returns the
// calculated deal.
func (s DealSpec) Build(eng *engine.Engine) (*deal.Deal, error) {
	session := eng.NewSession(s.Options())
	if err := session.ApplyAll(s.ToEdits()); err != nil {
		return nil, fmt.Errorf("failed to build deal %s: %w", s.Name, err)
	}
	return session.Deal(), nil
}

// BuildDeals builds every active scenario in order.
func (c *Configuration) BuildDeals(eng *engine.Engine) ([]*deal.Deal, error) {
	var deals []*deal.Deal
	for _, spec := range c.ActiveDeals() {
		d, err := spec.Build(eng)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	return deals, nil
}
