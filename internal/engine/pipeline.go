package engine

import (
	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/pkg/mathutil"
	"go.uber.org/zap"
)

// Calculate runs the full pipeline over the deal in place and returns the
// results, which are also stored on the deal.
//
// Stage order: land, hard costs, soft costs, municipal fees, contingency,
// financing, revenue, results. Municipal fees come before contingency so
// that contingency is taken over this pass's fee total; no stage reads the
// output of a later one.
func (e *Engine) Calculate(d *deal.Deal) deal.Results {
	e.Land(d)
	e.SyncHardCosts(d)
	e.SyncSoftCosts(d)
	e.MunicipalFees(d)
	e.Contingency(d)
	e.Financing(d)
	e.Revenue(d)
	d.Results = e.Results(d)

	e.logger.Debug("calculated deal",
		zap.String("op", "engine.Calculate"),
		zap.String("name", d.ProjectInfo.Name),
		zap.Float64("hardCosts", d.HardCosts.Total),
		zap.Float64("softCosts", d.SoftCosts.Total),
		zap.Float64("municipalFees", d.MunicipalFees.Total),
		zap.Float64("financing", d.Financing.Total),
		zap.Float64("totalProjectCost", d.Results.TotalProjectCost),
		zap.Float64("yieldPct", d.Results.YieldPct),
		zap.Bool("pass", d.Results.Pass),
	)
	return d.Results
}

// Land computes closing costs and the land total.
func (e *Engine) Land(d *deal.Deal) {
	l := &d.Land
	l.ClosingCosts = mathutil.ApplyPercentage(l.PurchasePrice, l.ClosingCostsPct)
	l.Total = l.PurchasePrice + l.LegalDD + l.ClosingCosts
}

// MunicipalFees prices each fee for the current unit count.
func (e *Engine) MunicipalFees(d *deal.Deal) {
	m := &d.MunicipalFees
	units := float64(d.ProjectInfo.Units)
	total := 0.0
	for i := range m.Items {
		fee := &m.Items[i]
		switch fee.Basis {
		case deal.BasisPerUnit:
			fee.Amount = fee.Rate * units
		default:
			fee.Amount = fee.Rate
		}
		total += fee.Amount
	}
	m.Total = total
}

// Contingency is a percentage of hard, soft and municipal costs.
func (e *Engine) Contingency(d *deal.Deal) {
	c := &d.Contingency
	base := d.HardCosts.Total + d.SoftCosts.Total + d.MunicipalFees.Total
	c.Amount = mathutil.RoundDollar(mathutil.ApplyPercentage(base, c.Pct))
}

// Revenue computes gross sales, selling costs and net revenue.
func (e *Engine) Revenue(d *deal.Deal) {
	r := &d.Revenue
	r.Units = d.ProjectInfo.Units
	units := float64(r.Units)

	r.GrossSales = units * r.PricePerUnit
	r.RealtorCommission = mathutil.ApplyPercentage(r.GrossSales, r.RealtorCommissionPct)
	r.LegalFees = units * r.LegalPerSale
	r.NetRevenue = r.GrossSales - r.RealtorCommission - r.LegalFees - r.MarketingCosts
}
