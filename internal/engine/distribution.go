package engine

import (
	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/pkg/defaults"
	"github.com/iwvelando/proforma/pkg/mathutil"
)

// tripleEntry resolves a section's base total from its authoritative input
// method and back-fills the other two fields. rateBase is what Rate is
// multiplied by: total area for hard costs, one percent of the hard cost
// total for soft costs.
//
// While any line item is modified the base total is frozen and nothing is
// recomputed.
func tripleEntry(s *deal.CostSection, units int, rateBase float64) {
	if s.AnyModified() {
		return
	}
	n := float64(units)
	switch s.InputMethod {
	case deal.MethodRate:
		s.BaseTotal = s.Rate * rateBase
		s.CostPerUnit = mathutil.SafeDivide(s.BaseTotal, n)
	case deal.MethodPerUnit:
		s.BaseTotal = s.CostPerUnit * n
		s.Rate = mathutil.SafeDivide(s.BaseTotal, rateBase)
	case deal.MethodTotal:
		// Total doubles as the line item sum, so a typed total settles to
		// the rounded sum of its items on the next recalculation.
		s.BaseTotal = s.Total
		s.CostPerUnit = mathutil.SafeDivide(s.BaseTotal, n)
		s.Rate = mathutil.SafeDivide(s.BaseTotal, rateBase)
	}
}

// distribute assigns every unmodified item its natural amount, keeps the
// amounts of modified items and totals the section. natural[i] is what item
// i would get if it were unmodified. Delta reports how far the overrides
// move the total away from the natural amounts.
func distribute(s *deal.CostSection, natural []float64, units int, rateBase float64) {
	deltaSum := 0.0
	total := 0.0
	anyModified := false
	for i := range s.Items {
		item := &s.Items[i]
		if item.Modified {
			anyModified = true
			deltaSum += item.Amount - natural[i]
		} else {
			item.Amount = natural[i]
		}
		total += item.Amount
	}
	s.Total = total
	s.Delta = mathutil.RoundDollar(deltaSum)

	if anyModified {
		s.Rate = mathutil.SafeDivide(s.Total, rateBase)
		s.CostPerUnit = mathutil.SafeDivide(s.Total, float64(units))
	}
}

// SyncHardCosts runs the triple-entry sync and redistribution for hard
// costs. Each unmodified trade gets its percentage share of the base total.
func (e *Engine) SyncHardCosts(d *deal.Deal) {
	h := &d.HardCosts
	units := d.ProjectInfo.Units
	area := d.ProjectInfo.TotalSF

	tripleEntry(h, units, area)
	e.distributeHardCosts(d)
}

func (e *Engine) distributeHardCosts(d *deal.Deal) {
	h := &d.HardCosts
	base := h.BaseTotal
	if base == 0 {
		base = h.Total
	}

	natural := make([]float64, len(h.Items))
	for i, item := range h.Items {
		natural[i] = mathutil.RoundDollar(base * e.hardShare(item.Weight))
	}
	distribute(h, natural, d.ProjectInfo.Units, d.ProjectInfo.TotalSF)
}

// hardShare is the fraction of the hard cost total a trade takes.
func (e *Engine) hardShare(w defaults.Weight) float64 {
	if w.Kind == defaults.WeightPct {
		return w.Value
	}
	return 0
}

// SyncSoftCosts runs the triple-entry sync and redistribution for soft
// costs. Soft weights depend on the current hard cost total, so hard costs
// must be synced first.
//
// A section that has never been seeded (zero base total) is initialised
// from the natural weighted total of the dataset's soft cost lines.
func (e *Engine) SyncSoftCosts(d *deal.Deal) {
	s := &d.SoftCosts
	units := d.ProjectInfo.Units
	hardTotal := d.HardCosts.Total
	rateBase := hardTotal / 100

	if s.BaseTotal == 0 && hardTotal > 0 {
		natural := e.naturalSoftTotal(hardTotal)
		s.BaseTotal = natural
		s.Rate = mathutil.SafeDivide(natural, rateBase)
		s.CostPerUnit = mathutil.SafeDivide(natural, float64(units))
	}

	tripleEntry(s, units, rateBase)
	e.distributeSoftCosts(d)
}

func (e *Engine) distributeSoftCosts(d *deal.Deal) {
	s := &d.SoftCosts
	hardTotal := d.HardCosts.Total
	base := s.BaseTotal

	weights := make([]float64, len(s.Items))
	totalWeight := 0.0
	for i, item := range s.Items {
		weights[i] = e.softWeight(item.Weight, hardTotal)
		totalWeight += weights[i]
	}

	natural := make([]float64, len(s.Items))
	for i, w := range weights {
		if totalWeight > 0 && base > 0 {
			natural[i] = mathutil.RoundDollar(base * w / totalWeight)
		} else {
			natural[i] = mathutil.RoundDollar(w)
		}
	}
	distribute(s, natural, d.ProjectInfo.Units, hardTotal/100)

	s.BasePct = mathutil.CalculatePercentage(totalWeight, hardTotal)
	s.RevisedPct = mathutil.CalculatePercentage(s.Total, hardTotal)
}

// softWeight evaluates a soft cost weight against the hard cost total.
// Unknown formulas weigh nothing.
func (e *Engine) softWeight(w defaults.Weight, hardTotal float64) float64 {
	switch w.Kind {
	case defaults.WeightPct:
		return mathutil.ApplyPercentage(hardTotal, w.Value)
	case defaults.WeightFixed:
		return w.Value
	case defaults.WeightFormula:
		if f, ok := e.ds.Formula(w.Formula); ok {
			return f(hardTotal)
		}
	}
	return 0
}

// naturalSoftTotal is the rounded sum of the dataset's soft cost weights.
func (e *Engine) naturalSoftTotal(hardTotal float64) float64 {
	total := 0.0
	for _, def := range e.ds.SoftCosts {
		total += e.softWeight(def.Weight(), hardTotal)
	}
	return mathutil.RoundDollar(total)
}
