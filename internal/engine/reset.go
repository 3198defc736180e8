package engine

import (
	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/pkg/mathutil"
)

// ResetHardCosts restores the default trade split of the current base
// total. Overrides and delta are dropped and the triple-entry fields are
// realigned to the base total.
func (e *Engine) ResetHardCosts(d *deal.Deal) {
	h := &d.HardCosts
	h.Items = deal.HardItems(e.ds)
	h.Delta = 0
	h.Total = h.BaseTotal
	h.Rate = mathutil.SafeDivide(h.BaseTotal, d.ProjectInfo.TotalSF)
	h.CostPerUnit = mathutil.SafeDivide(h.BaseTotal, float64(d.ProjectInfo.Units))
	e.distributeHardCosts(d)
}

// ResetSoftCosts restores the default soft cost lines over the current
// base total.
func (e *Engine) ResetSoftCosts(d *deal.Deal) {
	s := &d.SoftCosts
	s.Items = deal.SoftItems(e.ds)
	s.Delta = 0
	s.Total = s.BaseTotal
	s.Rate = mathutil.SafeDivide(s.BaseTotal, d.HardCosts.Total/100)
	s.CostPerUnit = mathutil.SafeDivide(s.BaseTotal, float64(d.ProjectInfo.Units))
	e.distributeSoftCosts(d)
}

// ResetMunicipalFees reloads the fee schedule of the deal's municipality.
func (e *Engine) ResetMunicipalFees(d *deal.Deal) {
	d.ApplyMunicipality(e.ds, d.MunicipalFees.Municipality)
}

// NewDeal creates a deal from the engine's dataset.
func (e *Engine) NewDeal(opts deal.Options) *deal.Deal {
	return deal.New(e.ds, opts)
}

// MunicipalDefaults replaces a deal with a fresh one of the same unit count
// and build type in the given municipality, or the dataset default when
// municipality is empty. A positive land price and sale price carry over.
func (e *Engine) MunicipalDefaults(d *deal.Deal, municipality string) *deal.Deal {
	if municipality == "" {
		municipality = e.ds.DefaultMunicipality
	}
	fresh := deal.New(e.ds, deal.Options{
		Units:        d.ProjectInfo.Units,
		BuildType:    d.ProjectInfo.BuildType,
		Municipality: municipality,
	})
	if d.Land.PurchasePrice > 0 {
		fresh.Land.PurchasePrice = d.Land.PurchasePrice
	}
	if d.Revenue.PricePerUnit > 0 {
		fresh.Revenue.PricePerUnit = d.Revenue.PricePerUnit
	}
	return fresh
}
