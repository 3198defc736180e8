// Package deal defines the pro forma deal model: the mutable aggregate that
// the engine recalculates on every edit, plus the edits themselves and the
// upgrade applied to restored snapshots.
package deal

import (
	"github.com/iwvelando/proforma/pkg/defaults"
)

// InputMethod identifies which triple-entry field drives a cost section.
type InputMethod string

const (
	// MethodRate drives the section from its rate: dollars per square foot
	// for hard costs, percent of hard costs for soft costs.
	MethodRate InputMethod = "rate"
	// MethodPerUnit drives the section from the cost per unit.
	MethodPerUnit InputMethod = "perUnit"
	// MethodTotal drives the section from the absolute total.
	MethodTotal InputMethod = "total"
)

// ParseInputMethod accepts the canonical names plus the per-section aliases
// "perSF" and "pctOfHard" used by older snapshots and forms.
func ParseInputMethod(s string) (InputMethod, bool) {
	switch s {
	case string(MethodRate), "perSF", "pctOfHard":
		return MethodRate, true
	case string(MethodPerUnit):
		return MethodPerUnit, true
	case string(MethodTotal):
		return MethodTotal, true
	}
	return "", false
}

// LineItem is a single cost entry. Amount is either distributed from the
// section's base total by Weight or, once Modified, the user's own value.
type LineItem struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Weight   defaults.Weight `json:"weight"`
	Amount   float64         `json:"amount"`
	Modified bool            `json:"modified"`
}

// CostSection is a triple-entry cost section (hard or soft costs).
//
// BaseTotal is the intended total derived from the triple-entry fields.
// Total is the actual sum of the line items and only diverges from
// BaseTotal while at least one item is modified.
type CostSection struct {
	Total       float64     `json:"total"`
	BaseTotal   float64     `json:"baseTotal"`
	InputMethod InputMethod `json:"inputMethod"`
	Rate        float64     `json:"rate"`
	CostPerUnit float64     `json:"costPerUnit"`
	Delta       float64     `json:"delta"`
	BasePct     float64     `json:"basePct,omitempty"`
	RevisedPct  float64     `json:"revisedPct,omitempty"`
	Items       []LineItem  `json:"items"`
}

// AnyModified reports whether any line item carries a user override.
func (s *CostSection) AnyModified() bool {
	for _, item := range s.Items {
		if item.Modified {
			return true
		}
	}
	return false
}

// ClearModified drops every line item override in the section.
func (s *CostSection) ClearModified() {
	for i := range s.Items {
		s.Items[i].Modified = false
	}
}

// Item returns the line item with the given key, or nil.
func (s *CostSection) Item(key string) *LineItem {
	for i := range s.Items {
		if s.Items[i].Key == key {
			return &s.Items[i]
		}
	}
	return nil
}

// ProjectInfo describes the building.
type ProjectInfo struct {
	Name         string  `json:"name"`
	Municipality string  `json:"municipality"`
	BuildType    string  `json:"buildType"`
	Units        int     `json:"units"`
	UnitSize     float64 `json:"unitSize"`
	TotalSF      float64 `json:"totalSF"`
}

// RecalcArea sets TotalSF from the unit size and count.
func (p *ProjectInfo) RecalcArea() {
	p.TotalSF = p.UnitSize * float64(p.Units)
}

// LandAcquisition holds the land purchase and its acquisition costs.
type LandAcquisition struct {
	PurchasePrice   float64 `json:"purchasePrice"`
	LegalDD         float64 `json:"legalDD"`
	ClosingCostsPct float64 `json:"closingCostsPct"`
	ClosingCosts    float64 `json:"closingCosts"`
	Total           float64 `json:"total"`
}

// Contingency is a percentage allowance over hard, soft and municipal costs.
type Contingency struct {
	Pct    float64 `json:"pct"`
	Amount float64 `json:"amount"`
}

// FeeCategory groups municipal fees for display.
type FeeCategory string

const (
	CategoryDCC   FeeCategory = "dcc"
	CategoryOther FeeCategory = "other"
)

// FeeBasis says how a municipal fee's rate applies.
type FeeBasis string

const (
	BasisPerUnit FeeBasis = "perUnit"
	BasisFixed   FeeBasis = "fixed"
)

// FeeItem is one municipal fee. Rate is dollars per unit for BasisPerUnit
// and the flat amount for BasisFixed.
type FeeItem struct {
	Key       string      `json:"key"`
	Label     string      `json:"label"`
	Category  FeeCategory `json:"category"`
	Basis     FeeBasis    `json:"basis"`
	Rate      float64     `json:"rate"`
	Amount    float64     `json:"amount"`
	SourceURL string      `json:"sourceUrl,omitempty"`
}

// MunicipalFees is the fee schedule of the selected municipality.
type MunicipalFees struct {
	Municipality string    `json:"municipality"`
	Total        float64   `json:"total"`
	Items        []FeeItem `json:"items"`
}

// Item returns the fee with the given key, or nil.
func (m *MunicipalFees) Item(key string) *FeeItem {
	for i := range m.Items {
		if m.Items[i].Key == key {
			return &m.Items[i]
		}
	}
	return nil
}

// Financing is the construction loan.
type Financing struct {
	EquityPct            float64 `json:"equityPct"`
	LTV                  float64 `json:"ltv"`
	LoanAmount           float64 `json:"loanAmount"`
	InterestRate         float64 `json:"interestRate"`
	ConstructionPeriod   int     `json:"constructionPeriod"`
	StartMonth           string  `json:"startMonth,omitempty"`
	LandInterest         float64 `json:"landInterest"`
	ConstructionInterest float64 `json:"constructionInterest"`
	InterestCost         float64 `json:"interestCost"`
	CommitmentFeePct     float64 `json:"commitmentFeePct"`
	CommitmentFee        float64 `json:"commitmentFee"`
	LenderLegal          float64 `json:"lenderLegal"`
	Total                float64 `json:"total"`
}

// Revenue is the sale side of the deal.
type Revenue struct {
	PricePerUnit         float64 `json:"pricePerUnit"`
	Units                int     `json:"units"`
	GrossSales           float64 `json:"grossSales"`
	RealtorCommissionPct float64 `json:"realtorCommissionPct"`
	RealtorCommission    float64 `json:"realtorCommission"`
	LegalPerSale         float64 `json:"legalPerSale"`
	LegalFees            float64 `json:"legalFees"`
	MarketingCosts       float64 `json:"marketingCosts"`
	NetRevenue           float64 `json:"netRevenue"`
}

// Results is the derived summary of a calculated deal. It is never read
// back by the engine.
type Results struct {
	TotalCostBeforeFinancing float64 `json:"totalCostBeforeFinancing"`
	TotalProjectCost         float64 `json:"totalProjectCost"`
	NetRevenue               float64 `json:"netRevenue"`
	Profit                   float64 `json:"profit"`
	YieldPct                 float64 `json:"yieldPct"`
	Pass                     bool    `json:"pass"`
	ProfitPerUnit            float64 `json:"profitPerUnit"`
	CostPerUnit              float64 `json:"costPerUnit"`
	ROIOnEquity              float64 `json:"roiOnEquity"`
	BreakEvenPricePerUnit    float64 `json:"breakEvenPricePerUnit"`
	TargetTotalCost          float64 `json:"targetTotalCost"`
	CostReduction            float64 `json:"costReduction"`
	TargetNetRevenue         float64 `json:"targetNetRevenue"`
	RevenueIncrease          float64 `json:"revenueIncrease"`
}

// Deal is the full pro forma state for one editing session.
type Deal struct {
	ProjectInfo   ProjectInfo     `json:"projectInfo"`
	Land          LandAcquisition `json:"landAcquisition"`
	HardCosts     CostSection     `json:"hardCosts"`
	SoftCosts     CostSection     `json:"softCosts"`
	Contingency   Contingency     `json:"contingency"`
	MunicipalFees MunicipalFees   `json:"municipalFees"`
	Financing     Financing       `json:"financing"`
	Revenue       Revenue         `json:"revenue"`
	Results       Results         `json:"results"`
}

// Clone returns a deep copy of the deal.
func (d *Deal) Clone() *Deal {
	c := *d
	c.HardCosts.Items = append([]LineItem(nil), d.HardCosts.Items...)
	c.SoftCosts.Items = append([]LineItem(nil), d.SoftCosts.Items...)
	c.MunicipalFees.Items = append([]FeeItem(nil), d.MunicipalFees.Items...)
	return &c
}
