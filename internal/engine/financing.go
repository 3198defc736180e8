package engine

import (
	"fmt"
	"math"

	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/datetime"
	"github.com/iwvelando/proforma/pkg/mathutil"
)

// Draw is one month of the construction draw schedule.
type Draw struct {
	Month      int     `json:"month"`
	Label      string  `json:"label"`
	Cumulative float64 `json:"cumulative"`
	Tranche    float64 `json:"tranche"`
	Interest   float64 `json:"interest"`
}

// DrawSchedule is the monthly drawdown of the construction loan portion.
type DrawSchedule struct {
	Loan     float64 `json:"loan"`
	Interest float64 `json:"interest"`
	Draws    []Draw  `json:"draws"`
}

// SCurve returns the normalised logistic cumulative draw fraction for a
// construction period: 0 at t=0, 1 at t=months, steepness 6/months and
// midpoint months/2. Non-positive periods have no curve and return nil.
func SCurve(months int) func(t float64) float64 {
	if months <= 0 {
		return nil
	}
	n := float64(months)
	k := constants.SCurveSteepness / n
	mid := n / 2
	raw := func(t float64) float64 {
		return 1 / (1 + math.Exp(-k*(t-mid)))
	}
	s0, sN := raw(0), raw(n)
	return func(t float64) float64 {
		return (raw(t) - s0) / (sN - s0)
	}
}

// BuildDrawSchedule draws loan over months along the S-curve. Each tranche
// accrues simple interest at the monthly rate for the months remaining
// after its draw month plus half of the draw month itself.
func BuildDrawSchedule(loan, annualRate float64, months int) DrawSchedule {
	schedule := DrawSchedule{Loan: loan}
	if months > 0 {
		schedule.Draws = make([]Draw, 0, min(months, constants.MaxConstructionPeriod))
	}
	schedule.Interest = walkDraws(loan, annualRate, months, func(d Draw) {
		schedule.Draws = append(schedule.Draws, d)
	})
	return schedule
}

// constructionInterest is the interest of BuildDrawSchedule without keeping
// the draws.
func constructionInterest(loan, annualRate float64, months int) float64 {
	return walkDraws(loan, annualRate, months, nil)
}

// walkDraws visits each monthly draw in order and returns the total interest.
// visit may be nil.
func walkDraws(loan, annualRate float64, months int, visit func(Draw)) float64 {
	curve := SCurve(months)
	if curve == nil {
		return 0
	}

	monthlyRate := annualRate / constants.PercentageMultiplier / constants.MonthsPerYear
	total := 0.0
	prev := curve(0)
	for m := 1; m <= months; m++ {
		cum := curve(float64(m))
		tranche := loan * (cum - prev)
		interest := tranche * monthlyRate * (float64(months-m) + constants.DrawMonthFraction)
		if visit != nil {
			visit(Draw{
				Month:      m,
				Cumulative: cum,
				Tranche:    tranche,
				Interest:   interest,
			})
		}
		total += interest
		prev = cum
	}
	return total
}

// constructionSubtotal is everything drawn over the construction period.
func constructionSubtotal(d *deal.Deal) float64 {
	return d.HardCosts.Total + d.SoftCosts.Total + d.Contingency.Amount + d.MunicipalFees.Total
}

// Financing sizes the loan and computes interest. Land is drawn in full on
// day one; everything else follows the S-curve draw schedule.
func (e *Engine) Financing(d *deal.Deal) {
	f := &d.Financing
	land := d.Land.Total
	construction := constructionSubtotal(d)

	f.LTV = 1 - f.EquityPct/constants.PercentageMultiplier
	f.LoanAmount = (land + construction) * f.LTV

	months := f.ConstructionPeriod
	if months > 0 {
		monthlyRate := f.InterestRate / constants.PercentageMultiplier / constants.MonthsPerYear
		f.LandInterest = land * f.LTV * monthlyRate * float64(months)
	} else {
		f.LandInterest = 0
	}
	f.ConstructionInterest = constructionInterest(construction*f.LTV, f.InterestRate, months)

	f.InterestCost = f.LandInterest + f.ConstructionInterest
	f.CommitmentFee = mathutil.RoundDollar(mathutil.ApplyPercentage(f.LoanAmount, f.CommitmentFeePct))
	f.Total = f.InterestCost + f.CommitmentFee + f.LenderLegal
}

// DrawSchedule returns the construction draw schedule of a calculated deal,
// labelled with calendar months when the deal has a start month.
func (e *Engine) DrawSchedule(d *deal.Deal) (DrawSchedule, error) {
	f := d.Financing
	if f.ConstructionPeriod > constants.MaxConstructionPeriod {
		return DrawSchedule{}, fmt.Errorf("construction period of %d months exceeds %d: %w",
			f.ConstructionPeriod, constants.MaxConstructionPeriod, deal.ErrConstructionPeriod)
	}
	schedule := BuildDrawSchedule(constructionSubtotal(d)*f.LTV, f.InterestRate, f.ConstructionPeriod)
	labels, err := datetime.MonthLabels(f.StartMonth, len(schedule.Draws))
	if err != nil {
		return schedule, err
	}
	for i := range schedule.Draws {
		schedule.Draws[i].Label = labels[i]
	}
	return schedule, nil
}
