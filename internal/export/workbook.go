// Package export writes calculated deals to an Excel pro forma workbook.
package export

import (
	"fmt"
	"io"

	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/internal/engine"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Sheet names.
const (
	SummarySheet       = "Summary"
	CostBreakdownSheet = "Cost Breakdown"
	DrawScheduleSheet  = "Draw Schedule"
)

// Exporter builds workbooks from calculated deals.
type Exporter struct {
	logger *zap.Logger
	engine *engine.Engine
}

// NewExporter returns an exporter that uses eng for draw schedules.
func NewExporter(logger *zap.Logger, eng *engine.Engine) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger, engine: eng}
}

type styles struct {
	header   int
	currency int
	percent  int
	rate     int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	if s.currency, err = f.NewStyle(&excelize.Style{NumFmt: 3}); err != nil {
		return s, err
	}
	if s.percent, err = f.NewStyle(&excelize.Style{NumFmt: 10}); err != nil {
		return s, err
	}
	if s.rate, err = f.NewStyle(&excelize.Style{NumFmt: 4}); err != nil {
		return s, err
	}
	return s, nil
}

// Workbook lays out the deals in three sheets: a side-by-side summary, every
// line item, and the monthly construction draws. The deals must already be
// calculated.
func (x *Exporter) Workbook(deals []*deal.Deal) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{CostBreakdownSheet, DrawScheduleSheet} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create workbook styles: %w", err)
	}

	steps := []func(*excelize.File, styles, []*deal.Deal) error{
		x.writeSummary,
		x.writeCostBreakdown,
		x.writeDrawSchedule,
	}
	for _, step := range steps {
		if err := step(f, st, deals); err != nil {
			f.Close()
			return nil, err
		}
	}

	x.logger.Debug("built workbook",
		zap.String("op", "export.Workbook"),
		zap.Int("deals", len(deals)),
	)
	return f, nil
}

// Write builds the workbook and writes it to w.
func (x *Exporter) Write(w io.Writer, deals []*deal.Deal) error {
	f, err := x.Workbook(deals)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveAs builds the workbook and saves it to path.
func (x *Exporter) SaveAs(path string, deals []*deal.Deal) error {
	f, err := x.Workbook(deals)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func writeHeader(f *excelize.File, sheet string, style int, headers []string) error {
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cell(i+1, 1), h); err != nil {
			return err
		}
	}
	return f.SetRowStyle(sheet, 1, 1, style)
}

func dealName(d *deal.Deal, i int) string {
	if d.ProjectInfo.Name != "" {
		return d.ProjectInfo.Name
	}
	return fmt.Sprintf("Deal %d", i+1)
}
