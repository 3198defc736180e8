package engine

import (
	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/mathutil"
)

// Results sums the sections into the deal summary and back-solves what it
// would take to reach the target yield. The back-solved targets are
// informational and never fed into the deal.
func (e *Engine) Results(d *deal.Deal) deal.Results {
	costBeforeFinancing := d.Land.Total + d.HardCosts.Total + d.SoftCosts.Total +
		d.Contingency.Amount + d.MunicipalFees.Total
	totalCost := costBeforeFinancing + d.Financing.Total
	netRevenue := d.Revenue.NetRevenue
	profit := netRevenue - totalCost
	units := float64(d.ProjectInfo.Units)

	yieldPct := 0.0
	if totalCost > 0 {
		yieldPct = mathutil.CalculatePercentage(profit, totalCost)
	}
	equity := mathutil.ApplyPercentage(totalCost, d.Financing.EquityPct)
	roi := 0.0
	if equity > 0 {
		roi = mathutil.CalculatePercentage(profit, equity)
	}

	breakEven := 0.0
	if units > 0 {
		breakEven = mathutil.SafeDivide(totalCost/units, 1-d.Revenue.RealtorCommissionPct/constants.PercentageMultiplier)
	}

	targetTotalCost := netRevenue / constants.TargetYieldMultiplier
	targetNetRevenue := constants.TargetYieldMultiplier * totalCost

	return deal.Results{
		TotalCostBeforeFinancing: costBeforeFinancing,
		TotalProjectCost:         totalCost,
		NetRevenue:               netRevenue,
		Profit:                   profit,
		YieldPct:                 yieldPct,
		Pass:                     yieldPct >= constants.TargetYieldPct,
		ProfitPerUnit:            mathutil.SafeDivide(profit, units),
		CostPerUnit:              mathutil.SafeDivide(totalCost, units),
		ROIOnEquity:              roi,
		BreakEvenPricePerUnit:    breakEven,
		TargetTotalCost:          targetTotalCost,
		CostReduction:            totalCost - targetTotalCost,
		TargetNetRevenue:         targetNetRevenue,
		RevenueIncrease:          targetNetRevenue - netRevenue,
	}
}
