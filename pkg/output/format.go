// Package output provides utilities for formatting and displaying deal results.
package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Line is one labelled figure of a deal's pro forma.
type Line struct {
	Label  string
	Amount float64
	Pct    bool
}

// Lines lists the pro forma figures in display order.
func Lines(d *deal.Deal) []Line {
	r := d.Results
	return []Line{
		{Label: "Land Acquisition", Amount: d.Land.Total},
		{Label: "Hard Costs", Amount: d.HardCosts.Total},
		{Label: "Soft Costs", Amount: d.SoftCosts.Total},
		{Label: "Municipal Fees", Amount: d.MunicipalFees.Total},
		{Label: "Contingency", Amount: d.Contingency.Amount},
		{Label: "Cost Before Financing", Amount: r.TotalCostBeforeFinancing},
		{Label: "Financing", Amount: d.Financing.Total},
		{Label: "Total Project Cost", Amount: r.TotalProjectCost},
		{Label: "Net Revenue", Amount: r.NetRevenue},
		{Label: "Profit", Amount: r.Profit},
		{Label: "Yield on Cost", Amount: r.YieldPct, Pct: true},
		{Label: "ROI on Equity", Amount: r.ROIOnEquity, Pct: true},
		{Label: "Profit per Unit", Amount: r.ProfitPerUnit},
		{Label: "Cost per Unit", Amount: r.CostPerUnit},
		{Label: "Break-even Price", Amount: r.BreakEvenPricePerUnit},
		{Label: "Cost Reduction", Amount: r.CostReduction},
		{Label: "Revenue Increase", Amount: r.RevenueIncrease},
	}
}

func verdict(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, deals []*deal.Deal) {
	p := message.NewPrinter(language.English)
	for i, d := range deals {
		fmt.Fprintf(w, "--- Results for deal %s ---\n", d.ProjectInfo.Name)
		fmt.Fprintf(w, "%d units, %s, %s, %s SF\n",
			d.ProjectInfo.Units, d.ProjectInfo.BuildType, d.ProjectInfo.Municipality,
			p.Sprintf("%.0f", d.ProjectInfo.TotalSF))
		fmt.Fprintf(w, "Item                  | Amount\n")
		fmt.Fprintf(w, "____                  | ______\n")
		for _, line := range Lines(d) {
			value := format.Currency(line.Amount)
			if line.Pct {
				value = format.Pct(line.Amount)
			}
			fmt.Fprintf(w, "%-21s | %s\n", line.Label, value)
		}
		fmt.Fprintf(w, "%-21s | %s\n", "20% Target", verdict(d.Results.Pass))
		if i < len(deals)-1 {
			fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat writes one row per figure and one column per deal.
func CsvFormat(w io.Writer, deals []*deal.Deal) {
	if len(deals) == 0 {
		return
	}
	fmt.Fprintf(w, `"item"`)
	for _, d := range deals {
		fmt.Fprintf(w, `,"amount (%s)"`, d.ProjectInfo.Name)
	}
	fmt.Fprintf(w, "\n")

	lines := make([][]Line, len(deals))
	for i, d := range deals {
		lines[i] = Lines(d)
	}
	for row, first := range lines[0] {
		fmt.Fprintf(w, `"%s"`, first.Label)
		for i := range deals {
			fmt.Fprintf(w, `,"%.2f"`, lines[i][row].Amount)
		}
		fmt.Fprintf(w, "\n")
	}
	fmt.Fprintf(w, `"pass"`)
	for _, d := range deals {
		fmt.Fprintf(w, `,"%t"`, d.Results.Pass)
	}
	fmt.Fprintf(w, "\n")
}
