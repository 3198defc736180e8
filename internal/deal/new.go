package deal

import (
	"github.com/iwvelando/proforma/pkg/defaults"
)

// Options select the shape of a new deal. Zero values take the dataset
// defaults.
type Options struct {
	Units        int    `json:"units,omitempty"`
	BuildType    string `json:"buildType,omitempty"`
	Municipality string `json:"municipality,omitempty"`
}

// New creates a deal populated from the dataset. Hard costs start driven by
// cost per unit at the baseline $/SF, soft costs by percent of hard costs.
// Soft cost triple-entry fields stay at zero until the first calculation
// seeds them from the natural weighted total.
func New(ds *defaults.Dataset, opts Options) *Deal {
	if opts.Units == 0 {
		opts.Units = ds.DefaultUnits
	}
	if opts.BuildType == "" {
		opts.BuildType = ds.DefaultBuildType
	}
	unitSize := ds.UnitSize(opts.BuildType)

	d := &Deal{
		ProjectInfo: ProjectInfo{
			BuildType: opts.BuildType,
			Units:     opts.Units,
			UnitSize:  unitSize,
		},
		Land: LandAcquisition{
			LegalDD:         ds.Land.LegalDD,
			ClosingCostsPct: ds.Land.ClosingCostsPct,
		},
		HardCosts: CostSection{
			InputMethod: MethodPerUnit,
			Rate:        ds.CostPerSF.Baseline,
			CostPerUnit: ds.CostPerSF.Baseline * unitSize,
			Items:       HardItems(ds),
		},
		SoftCosts: CostSection{
			InputMethod: MethodRate,
			Items:       SoftItems(ds),
		},
		Contingency: Contingency{Pct: ds.ContingencyPct},
		Financing: Financing{
			EquityPct:          ds.Financing.EquityPct,
			LTV:                1 - ds.Financing.EquityPct/100,
			InterestRate:       ds.Financing.InterestRate,
			ConstructionPeriod: ds.Financing.ConstructionPeriod,
			CommitmentFeePct:   ds.Financing.CommitmentFeePct,
			LenderLegal:        ds.Financing.LenderLegal,
		},
		Revenue: Revenue{
			Units:                opts.Units,
			RealtorCommissionPct: ds.Revenue.RealtorCommissionPct,
			LegalPerSale:         ds.Revenue.LegalPerSale,
			MarketingCosts:       ds.Revenue.MarketingCosts,
		},
	}
	d.ProjectInfo.RecalcArea()
	d.ApplyMunicipality(ds, opts.Municipality)
	return d
}

// HardItems returns the default hard cost line items.
func HardItems(ds *defaults.Dataset) []LineItem {
	items := make([]LineItem, 0, len(ds.HardCosts))
	for _, def := range ds.HardCosts {
		items = append(items, LineItem{
			Key:    def.Key,
			Label:  def.Label,
			Weight: def.Weight(),
		})
	}
	return items
}

// SoftItems returns the default soft cost line items. Fixed-amount lines
// start at their fixed value.
func SoftItems(ds *defaults.Dataset) []LineItem {
	items := make([]LineItem, 0, len(ds.SoftCosts))
	for _, def := range ds.SoftCosts {
		items = append(items, LineItem{
			Key:    def.Key,
			Label:  def.Label,
			Weight: def.Weight(),
			Amount: def.InitialAmount(),
		})
	}
	return items
}

// FeeItems returns the fee schedule of a municipality and the key that was
// resolved, falling back to the dataset default for unknown keys.
func FeeItems(ds *defaults.Dataset, municipality string) ([]FeeItem, string) {
	m, key := ds.Municipality(municipality)
	items := make([]FeeItem, 0, len(m.DCC)+len(m.Other))
	for _, fee := range m.DCC {
		items = append(items, feeItem(fee, CategoryDCC))
	}
	for _, fee := range m.Other {
		items = append(items, feeItem(fee, CategoryOther))
	}
	return items, key
}

func feeItem(fee defaults.Fee, category FeeCategory) FeeItem {
	item := FeeItem{
		Key:       fee.Key,
		Label:     fee.Label,
		Category:  category,
		Basis:     BasisFixed,
		SourceURL: fee.SourceURL,
	}
	switch {
	case fee.PerUnit != nil:
		item.Basis = BasisPerUnit
		item.Rate = *fee.PerUnit
	case fee.Fixed != nil:
		item.Rate = *fee.Fixed
	}
	return item
}

// ApplyMunicipality switches the deal to a municipality and reloads its fee
// schedule, discarding any edited fee rates.
func (d *Deal) ApplyMunicipality(ds *defaults.Dataset, municipality string) {
	items, key := FeeItems(ds, municipality)
	d.ProjectInfo.Municipality = key
	d.MunicipalFees.Municipality = key
	d.MunicipalFees.Items = items
}

// SetBuildType switches the build type and reloads its unit size.
func (d *Deal) SetBuildType(ds *defaults.Dataset, buildType string) {
	d.ProjectInfo.BuildType = buildType
	d.ProjectInfo.UnitSize = ds.UnitSize(buildType)
	d.ProjectInfo.RecalcArea()
}
