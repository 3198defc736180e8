package export

import (
	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/pkg/mathutil"
	"github.com/xuri/excelize/v2"
)

type summaryRow struct {
	label string
	value func(*deal.Deal) interface{}
	style func(styles) int
}

func currencyStyle(s styles) int { return s.currency }
func percentStyle(s styles) int  { return s.percent }
func plainStyle(styles) int      { return 0 }

func money(get func(*deal.Deal) float64) func(*deal.Deal) interface{} {
	return func(d *deal.Deal) interface{} { return get(d) }
}

// ratio turns a percentage field into the fraction Excel formats as a percent.
func ratio(get func(*deal.Deal) float64) func(*deal.Deal) interface{} {
	return func(d *deal.Deal) interface{} { return get(d) / 100 }
}

var summaryRows = []summaryRow{
	{"Municipality", func(d *deal.Deal) interface{} { return d.ProjectInfo.Municipality }, plainStyle},
	{"Build Type", func(d *deal.Deal) interface{} { return d.ProjectInfo.BuildType }, plainStyle},
	{"Units", func(d *deal.Deal) interface{} { return d.ProjectInfo.Units }, plainStyle},
	{"Total SF", money(func(d *deal.Deal) float64 { return d.ProjectInfo.TotalSF }), currencyStyle},
	{"Land Acquisition", money(func(d *deal.Deal) float64 { return d.Land.Total }), currencyStyle},
	{"Hard Costs", money(func(d *deal.Deal) float64 { return d.HardCosts.Total }), currencyStyle},
	{"Soft Costs", money(func(d *deal.Deal) float64 { return d.SoftCosts.Total }), currencyStyle},
	{"Municipal Fees", money(func(d *deal.Deal) float64 { return d.MunicipalFees.Total }), currencyStyle},
	{"Contingency", money(func(d *deal.Deal) float64 { return d.Contingency.Amount }), currencyStyle},
	{"Total Cost Before Financing", money(func(d *deal.Deal) float64 { return d.Results.TotalCostBeforeFinancing }), currencyStyle},
	{"Loan Amount", money(func(d *deal.Deal) float64 { return d.Financing.LoanAmount }), currencyStyle},
	{"Land Interest", money(func(d *deal.Deal) float64 { return d.Financing.LandInterest }), currencyStyle},
	{"Construction Interest", money(func(d *deal.Deal) float64 { return d.Financing.ConstructionInterest }), currencyStyle},
	{"Commitment Fee", money(func(d *deal.Deal) float64 { return d.Financing.CommitmentFee }), currencyStyle},
	{"Lender Legal", money(func(d *deal.Deal) float64 { return d.Financing.LenderLegal }), currencyStyle},
	{"Financing", money(func(d *deal.Deal) float64 { return d.Financing.Total }), currencyStyle},
	{"Total Project Cost", money(func(d *deal.Deal) float64 { return d.Results.TotalProjectCost }), currencyStyle},
	{"Gross Sales", money(func(d *deal.Deal) float64 { return d.Revenue.GrossSales }), currencyStyle},
	{"Realtor Commission", money(func(d *deal.Deal) float64 { return d.Revenue.RealtorCommission }), currencyStyle},
	{"Legal Fees", money(func(d *deal.Deal) float64 { return d.Revenue.LegalFees }), currencyStyle},
	{"Marketing", money(func(d *deal.Deal) float64 { return d.Revenue.MarketingCosts }), currencyStyle},
	{"Net Revenue", money(func(d *deal.Deal) float64 { return d.Results.NetRevenue }), currencyStyle},
	{"Profit", money(func(d *deal.Deal) float64 { return d.Results.Profit }), currencyStyle},
	{"Yield on Cost", ratio(func(d *deal.Deal) float64 { return d.Results.YieldPct }), percentStyle},
	{"Meets 20% Target", func(d *deal.Deal) interface{} { return passLabel(d.Results.Pass) }, plainStyle},
	{"Profit per Unit", money(func(d *deal.Deal) float64 { return d.Results.ProfitPerUnit }), currencyStyle},
	{"Cost per Unit", money(func(d *deal.Deal) float64 { return d.Results.CostPerUnit }), currencyStyle},
	{"ROI on Equity", ratio(func(d *deal.Deal) float64 { return d.Results.ROIOnEquity }), percentStyle},
	{"Break-even Price per Unit", money(func(d *deal.Deal) float64 { return d.Results.BreakEvenPricePerUnit }), currencyStyle},
	{"Cost Reduction to Target", money(func(d *deal.Deal) float64 { return d.Results.CostReduction }), currencyStyle},
	{"Revenue Increase to Target", money(func(d *deal.Deal) float64 { return d.Results.RevenueIncrease }), currencyStyle},
}

func passLabel(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}

func (x *Exporter) writeSummary(f *excelize.File, st styles, deals []*deal.Deal) error {
	headers := []string{"Metric"}
	for i, d := range deals {
		headers = append(headers, dealName(d, i))
	}
	if err := writeHeader(f, SummarySheet, st.header, headers); err != nil {
		return err
	}

	for r, row := range summaryRows {
		rowNum := r + 2
		if err := f.SetCellValue(SummarySheet, cell(1, rowNum), row.label); err != nil {
			return err
		}
		for c, d := range deals {
			ref := cell(c+2, rowNum)
			if err := f.SetCellValue(SummarySheet, ref, row.value(d)); err != nil {
				return err
			}
			if style := row.style(st); style != 0 {
				if err := f.SetCellStyle(SummarySheet, ref, ref, style); err != nil {
					return err
				}
			}
		}
	}

	if err := f.SetColWidth(SummarySheet, "A", "A", 30); err != nil {
		return err
	}
	if len(deals) > 0 {
		last, _ := excelize.ColumnNumberToName(len(deals) + 1)
		return f.SetColWidth(SummarySheet, "B", last, 18)
	}
	return nil
}

func (x *Exporter) writeCostBreakdown(f *excelize.File, st styles, deals []*deal.Deal) error {
	headers := []string{"Deal", "Section", "Item", "Amount", "Modified", "Category"}
	if err := writeHeader(f, CostBreakdownSheet, st.header, headers); err != nil {
		return err
	}

	row := 2
	put := func(values ...interface{}) error {
		for i, v := range values {
			if err := f.SetCellValue(CostBreakdownSheet, cell(i+1, row), v); err != nil {
				return err
			}
		}
		ref := cell(4, row)
		if err := f.SetCellStyle(CostBreakdownSheet, ref, ref, st.currency); err != nil {
			return err
		}
		row++
		return nil
	}

	for i, d := range deals {
		name := dealName(d, i)
		landLines := []struct {
			label  string
			amount float64
		}{
			{"Land Purchase Price", d.Land.PurchasePrice},
			{"Legal / Due Diligence", d.Land.LegalDD},
			{"Closing Costs", d.Land.ClosingCosts},
		}
		for _, l := range landLines {
			if err := put(name, "Land", l.label, l.amount, "", ""); err != nil {
				return err
			}
		}
		for _, item := range d.HardCosts.Items {
			if err := put(name, "Hard Costs", item.Label, item.Amount, item.Modified, ""); err != nil {
				return err
			}
		}
		for _, item := range d.SoftCosts.Items {
			if err := put(name, "Soft Costs", item.Label, item.Amount, item.Modified, ""); err != nil {
				return err
			}
		}
		for _, fee := range d.MunicipalFees.Items {
			if err := put(name, "Municipal Fees", fee.Label, fee.Amount, "", string(fee.Category)); err != nil {
				return err
			}
		}
		if err := put(name, "Contingency", "Contingency", d.Contingency.Amount, "", ""); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(CostBreakdownSheet, "A", "C", 28); err != nil {
		return err
	}
	return f.SetColWidth(CostBreakdownSheet, "D", "F", 15)
}

func (x *Exporter) writeDrawSchedule(f *excelize.File, st styles, deals []*deal.Deal) error {
	headers := []string{"Deal", "Month", "Period", "Cumulative Drawn", "Tranche", "Interest"}
	if err := writeHeader(f, DrawScheduleSheet, st.header, headers); err != nil {
		return err
	}

	row := 2
	for i, d := range deals {
		schedule, err := x.engine.DrawSchedule(d)
		if err != nil {
			return err
		}
		for _, draw := range schedule.Draws {
			values := []interface{}{dealName(d, i), draw.Month, draw.Label, draw.Cumulative,
				mathutil.Round(draw.Tranche), mathutil.Round(draw.Interest)}
			for c, v := range values {
				if err := f.SetCellValue(DrawScheduleSheet, cell(c+1, row), v); err != nil {
					return err
				}
			}
			if err := f.SetCellStyle(DrawScheduleSheet, cell(4, row), cell(4, row), st.percent); err != nil {
				return err
			}
			if err := f.SetCellStyle(DrawScheduleSheet, cell(5, row), cell(6, row), st.rate); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetColWidth(DrawScheduleSheet, "A", "A", 28); err != nil {
		return err
	}
	return f.SetColWidth(DrawScheduleSheet, "B", "F", 16)
}
