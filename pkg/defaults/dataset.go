// Package defaults holds the static configuration dataset a deal is created
// from: unit sizes, cost distributions, municipal fee schedules, baseline
// financing and revenue rates, and the permit fee formulas.
package defaults

import (
	"sort"
)

// Formula names recognised in soft-cost weight definitions.
const (
	FormulaBuildingPermit = "buildingPermit"
	FormulaDevPermit      = "devPermit"
)

// Formula maps a hard-cost total to a fee amount.
type Formula func(hardTotal float64) float64

// WeightKind tags which source a line item's natural amount comes from.
type WeightKind string

const (
	// WeightPct is a percentage of a base. Hard-cost percentages are
	// fractions of the section total; soft-cost percentages are percent of
	// the hard-cost total.
	WeightPct WeightKind = "pct"
	// WeightFixed is a flat dollar amount.
	WeightFixed WeightKind = "fixed"
	// WeightFormula is computed by a named Formula from the hard-cost total.
	WeightFormula WeightKind = "formula"
)

// Weight is the single active weight source of a line item.
type Weight struct {
	Kind    WeightKind `json:"kind" yaml:"kind"`
	Value   float64    `json:"value,omitempty" yaml:"value,omitempty"`
	Formula string     `json:"formula,omitempty" yaml:"formula,omitempty"`
}

// PctWeight returns a percentage weight.
func PctWeight(pct float64) Weight {
	return Weight{Kind: WeightPct, Value: pct}
}

// FixedWeight returns a flat amount weight.
func FixedWeight(amount float64) Weight {
	return Weight{Kind: WeightFixed, Value: amount}
}

// FormulaWeight returns a weight computed by the named formula.
func FormulaWeight(name string) Weight {
	return Weight{Kind: WeightFormula, Formula: name}
}

// Dataset is the complete defaults table. Treat it as read-only once a
// deal has been created from it.
type Dataset struct {
	DefaultBuildType    string                  `json:"defaultBuildType" yaml:"defaultBuildType"`
	DefaultMunicipality string                  `json:"defaultMunicipality" yaml:"defaultMunicipality"`
	DefaultUnits        int                     `json:"defaultUnits" yaml:"defaultUnits"`
	DefaultUnitSize     float64                 `json:"defaultUnitSize" yaml:"defaultUnitSize"`
	UnitSizes           map[string]float64      `json:"unitSizes" yaml:"unitSizes"`
	CostPerSF           CostBenchmarks          `json:"costPerSF" yaml:"costPerSF"`
	HardCosts           []HardCostWeight        `json:"hardCosts" yaml:"hardCosts"`
	SoftCosts           []SoftCostWeight        `json:"softCosts" yaml:"softCosts"`
	BaseSoftCostPct     float64                 `json:"baseSoftCostPct" yaml:"baseSoftCostPct"`
	Land                LandDefaults            `json:"land" yaml:"land"`
	ContingencyPct      float64                 `json:"contingencyPct" yaml:"contingencyPct"`
	Municipalities      map[string]Municipality `json:"municipalities" yaml:"municipalities"`
	Financing           FinancingDefaults       `json:"financing" yaml:"financing"`
	Revenue             RevenueDefaults         `json:"revenue" yaml:"revenue"`
	Permits             PermitRates             `json:"permits" yaml:"permits"`
}

// CostBenchmarks are construction cost per square foot reference points.
type CostBenchmarks struct {
	Conservative float64 `json:"conservative" yaml:"conservative"`
	Baseline     float64 `json:"baseline" yaml:"baseline"`
	MidRange     float64 `json:"midRange" yaml:"midRange"`
	High         float64 `json:"high" yaml:"high"`
}

// HardCostWeight is one hard-cost trade and its share of the total (0..1).
type HardCostWeight struct {
	Key   string  `json:"key" yaml:"key"`
	Label string  `json:"label" yaml:"label"`
	Pct   float64 `json:"pct" yaml:"pct"`
}

// Weight returns the tagged weight for the trade.
func (h HardCostWeight) Weight() Weight {
	return PctWeight(h.Pct)
}

// SoftCostWeight is one soft-cost line. At most one of Pct, Fixed and
// Formula should be set; see Weight for the precedence when several are.
type SoftCostWeight struct {
	Key     string   `json:"key" yaml:"key"`
	Label   string   `json:"label" yaml:"label"`
	Pct     *float64 `json:"pct,omitempty" yaml:"pct,omitempty"`
	Fixed   *float64 `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Formula string   `json:"formula,omitempty" yaml:"formula,omitempty"`
}

// Weight resolves the definition to a single weight source. A formula wins,
// then a fixed amount without a percentage, then the percentage. A line
// with nothing set weighs a flat zero.
func (s SoftCostWeight) Weight() Weight {
	switch {
	case s.Formula != "":
		return FormulaWeight(s.Formula)
	case s.Fixed != nil && s.Pct == nil:
		return FixedWeight(*s.Fixed)
	case s.Pct != nil:
		return PctWeight(*s.Pct)
	default:
		return FixedWeight(0)
	}
}

// InitialAmount is the amount a freshly created line shows before the
// first synchronisation.
func (s SoftCostWeight) InitialAmount() float64 {
	if s.Fixed != nil {
		return *s.Fixed
	}
	return 0
}

// LandDefaults are the acquisition costs applied to new deals.
type LandDefaults struct {
	LegalDD         float64 `json:"legalDD" yaml:"legalDD"`
	ClosingCostsPct float64 `json:"closingCostsPct" yaml:"closingCostsPct"`
}

// Municipality is a fee schedule with its source links.
type Municipality struct {
	Label         string `json:"label" yaml:"label"`
	SourceURL     string `json:"sourceUrl,omitempty" yaml:"sourceUrl,omitempty"`
	FeesURL       string `json:"feesUrl,omitempty" yaml:"feesUrl,omitempty"`
	CalculatorURL string `json:"calculatorUrl,omitempty" yaml:"calculatorUrl,omitempty"`
	DCC           []Fee  `json:"dcc" yaml:"dcc"`
	Other         []Fee  `json:"other" yaml:"other"`
}

// Fee is either a per-unit rate or a flat amount.
type Fee struct {
	Key       string   `json:"key" yaml:"key"`
	Label     string   `json:"label" yaml:"label"`
	PerUnit   *float64 `json:"perUnit,omitempty" yaml:"perUnit,omitempty"`
	Fixed     *float64 `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	SourceURL string   `json:"sourceUrl,omitempty" yaml:"sourceUrl,omitempty"`
}

// FinancingDefaults are the construction loan baseline terms.
type FinancingDefaults struct {
	EquityPct          float64 `json:"equityPct" yaml:"equityPct"`
	InterestRate       float64 `json:"interestRate" yaml:"interestRate"`
	ConstructionPeriod int     `json:"constructionPeriod" yaml:"constructionPeriod"`
	CommitmentFeePct   float64 `json:"commitmentFeePct" yaml:"commitmentFeePct"`
	LenderLegal        float64 `json:"lenderLegal" yaml:"lenderLegal"`
}

// RevenueDefaults are the sale-side baseline rates.
type RevenueDefaults struct {
	RealtorCommissionPct float64 `json:"realtorCommissionPct" yaml:"realtorCommissionPct"`
	LegalPerSale         float64 `json:"legalPerSale" yaml:"legalPerSale"`
	MarketingCosts       float64 `json:"marketingCosts" yaml:"marketingCosts"`
}

// PermitRates parameterise the two permit formulas as a share of
// construction value.
type PermitRates struct {
	BuildingPermitRate float64 `json:"buildingPermitRate" yaml:"buildingPermitRate"`
	DevPermitRate      float64 `json:"devPermitRate" yaml:"devPermitRate"`
}

// UnitSize returns the square feet per unit for a build type, falling back
// to DefaultUnitSize for unknown types.
func (d *Dataset) UnitSize(buildType string) float64 {
	if size, ok := d.UnitSizes[buildType]; ok && size > 0 {
		return size
	}
	return d.DefaultUnitSize
}

// Municipality returns the schedule for key and the key actually used.
// Unknown keys resolve to DefaultMunicipality.
func (d *Dataset) Municipality(key string) (Municipality, string) {
	if m, ok := d.Municipalities[key]; ok {
		return m, key
	}
	return d.Municipalities[d.DefaultMunicipality], d.DefaultMunicipality
}

// MunicipalityKeys lists the configured municipalities in sorted order.
func (d *Dataset) MunicipalityKeys() []string {
	keys := make([]string, 0, len(d.Municipalities))
	for key := range d.Municipalities {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// BuildTypes lists the configured build types in sorted order.
func (d *Dataset) BuildTypes() []string {
	keys := make([]string, 0, len(d.UnitSizes))
	for key := range d.UnitSizes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// BuildingPermit is the building permit fee for a construction value.
func (d *Dataset) BuildingPermit(constructionValue float64) float64 {
	return constructionValue * d.Permits.BuildingPermitRate
}

// DevPermit is the development permit fee for a construction value.
func (d *Dataset) DevPermit(constructionValue float64) float64 {
	return constructionValue * d.Permits.DevPermitRate
}

// Formula looks up a weight formula by name.
func (d *Dataset) Formula(name string) (Formula, bool) {
	switch name {
	case FormulaBuildingPermit:
		return d.BuildingPermit, true
	case FormulaDevPermit:
		return d.DevPermit, true
	}
	return nil, false
}
