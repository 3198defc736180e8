package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/pkg/mathutil"
)

func TestSCurveBoundaries(t *testing.T) {
	for _, months := range []int{1, 2, 6, 12, 14, 24, 36} {
		curve := SCurve(months)
		if curve == nil {
			t.Fatalf("%d months: expected a curve", months)
		}
		if got := curve(0); got != 0 {
			t.Errorf("%d months: expected 0 at t=0, got %v", months, got)
		}
		if got := curve(float64(months)); got != 1 {
			t.Errorf("%d months: expected 1 at t=months, got %v", months, got)
		}
		prev := 0.0
		for m := 1; m <= months; m++ {
			cur := curve(float64(m))
			if cur < prev {
				t.Errorf("%d months: curve decreases at month %d", months, m)
			}
			prev = cur
		}
	}

	if SCurve(0) != nil || SCurve(-3) != nil {
		t.Error("expected no curve for a non-positive period")
	}
}

func TestSCurveIsSymmetric(t *testing.T) {
	curve := SCurve(14)
	if got := curve(7); !mathutil.WithinTolerance(got, 0.5, 1e-12) {
		t.Errorf("expected half drawn at the midpoint, got %v", got)
	}
	for m := 0.0; m <= 14; m++ {
		if !mathutil.WithinTolerance(curve(m)+curve(14-m), 1, 1e-12) {
			t.Errorf("expected S(%v) + S(%v) = 1", m, 14-m)
		}
	}
}

func TestDrawScheduleTranchesSumToLoan(t *testing.T) {
	tests := []struct {
		name   string
		loan   float64
		rate   float64
		months int
	}{
		{"Reference", 1086916.25, 7.5, 14},
		{"One month", 500000, 6, 1},
		{"Long build", 3000000, 8.25, 30},
		{"Zero rate", 750000, 0, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule := BuildDrawSchedule(tt.loan, tt.rate, tt.months)
			if len(schedule.Draws) != tt.months {
				t.Fatalf("expected %d draws, got %d", tt.months, len(schedule.Draws))
			}
			total := 0.0
			interest := 0.0
			for _, draw := range schedule.Draws {
				total += draw.Tranche
				interest += draw.Interest
			}
			if !mathutil.WithinTolerance(total, tt.loan, 1e-6) {
				t.Errorf("expected tranches to sum to %v, got %v", tt.loan, total)
			}
			if !mathutil.WithinTolerance(interest, schedule.Interest, 1e-9) {
				t.Errorf("expected schedule interest %v to equal the monthly sum %v", schedule.Interest, interest)
			}
			if last := schedule.Draws[tt.months-1].Cumulative; last != 1 {
				t.Errorf("expected final cumulative draw of 1, got %v", last)
			}
		})
	}
}

func TestDrawScheduleSingleMonth(t *testing.T) {
	// A single month draws everything at once and accrues half a month.
	schedule := BuildDrawSchedule(120000, 12, 1)
	if !mathutil.WithinTolerance(schedule.Interest, 120000*0.01*0.5, 1e-9) {
		t.Errorf("expected 600 interest, got %v", schedule.Interest)
	}
}

func TestDrawScheduleBeatsFullDraw(t *testing.T) {
	loan, rate, months := 1000000.0, 7.5, 14
	schedule := BuildDrawSchedule(loan, rate, months)
	fullDraw := loan * rate / 100 / 12 * float64(months)
	if schedule.Interest >= fullDraw || schedule.Interest <= 0 {
		t.Errorf("expected S-curve interest between 0 and %v, got %v", fullDraw, schedule.Interest)
	}
	// Draws centred on the midpoint accrue about half the period.
	if !mathutil.WithinTolerance(schedule.Interest, fullDraw/2, fullDraw*0.01) {
		t.Errorf("expected roughly half of full-draw interest, got %v of %v", schedule.Interest, fullDraw)
	}
}

func TestDrawScheduleEmpty(t *testing.T) {
	schedule := BuildDrawSchedule(1000000, 7.5, 0)
	if len(schedule.Draws) != 0 || schedule.Interest != 0 {
		t.Errorf("expected an empty schedule, got %+v", schedule)
	}
}

func TestEngineDrawScheduleLabels(t *testing.T) {
	eng, d := scenario(t)

	schedule, err := eng.DrawSchedule(d)
	if err != nil {
		t.Fatalf("DrawSchedule failed: %v", err)
	}
	if schedule.Draws[0].Label != "Month 1" {
		t.Errorf("expected generic label, got %q", schedule.Draws[0].Label)
	}
	if !mathutil.WithinTolerance(schedule.Interest, d.Financing.ConstructionInterest, 1e-9) {
		t.Errorf("expected schedule interest %v to match financing %v", schedule.Interest, d.Financing.ConstructionInterest)
	}

	if err := d.Apply(eng.Dataset(), deal.Edit{Field: deal.FieldStartMonth, Text: "2026-11"}); err != nil {
		t.Fatal(err)
	}
	schedule, err = eng.DrawSchedule(d)
	if err != nil {
		t.Fatalf("DrawSchedule failed: %v", err)
	}
	// Month 1 of construction is the start month.
	if schedule.Draws[0].Label != "2026-11" || schedule.Draws[13].Label != "2027-12" {
		t.Errorf("unexpected calendar labels %q .. %q", schedule.Draws[0].Label, schedule.Draws[13].Label)
	}

	d.Financing.StartMonth = "next spring"
	if _, err := eng.DrawSchedule(d); err == nil {
		t.Error("expected an invalid start month to fail")
	}
}

func TestLongConstructionPeriod(t *testing.T) {
	eng, d := scenario(t)
	d.Financing.ConstructionPeriod = 2_000_000
	eng.Calculate(d)

	f := d.Financing
	if math.IsNaN(f.ConstructionInterest) || math.IsInf(f.ConstructionInterest, 0) || f.ConstructionInterest <= 0 {
		t.Errorf("expected finite construction interest, got %v", f.ConstructionInterest)
	}
	if math.IsNaN(d.Results.TotalProjectCost) || math.IsInf(d.Results.TotalProjectCost, 0) {
		t.Errorf("expected a finite project cost, got %v", d.Results.TotalProjectCost)
	}

	if _, err := eng.DrawSchedule(d); !errors.Is(err, deal.ErrConstructionPeriod) {
		t.Errorf("expected the draw schedule to be refused, got %v", err)
	}
}

func TestConstructionInterestMatchesSchedule(t *testing.T) {
	for _, months := range []int{-3, 0, 1, 14, 240} {
		schedule := BuildDrawSchedule(1250000, 6.25, months)
		if got := constructionInterest(1250000, 6.25, months); got != schedule.Interest {
			t.Errorf("%d months: expected %v, got %v", months, schedule.Interest, got)
		}
	}
}

func TestSessionRejectsLongConstructionPeriod(t *testing.T) {
	s := newScenarioSession(t)
	before := s.Results()

	err := s.Apply(deal.Edit{Field: deal.FieldConstructionPeriod, Value: 5e9})
	if !errors.Is(err, deal.ErrConstructionPeriod) {
		t.Fatalf("expected ErrConstructionPeriod, got %v", err)
	}
	if s.Results() != before || s.Deal().Financing.ConstructionPeriod != 14 {
		t.Error("expected the rejected edit to leave the session unchanged")
	}
}

func TestFinancingLoanSizing(t *testing.T) {
	_, d := scenario(t)
	f := d.Financing

	if f.LTV != 0.75 {
		t.Errorf("expected ltv 0.75, got %v", f.LTV)
	}
	subtotal := d.Land.Total + d.HardCosts.Total + d.SoftCosts.Total + d.Contingency.Amount + d.MunicipalFees.Total
	if !mathutil.WithinTolerance(f.LoanAmount, subtotal*0.75, 1e-6) {
		t.Errorf("expected loan %v, got %v", subtotal*0.75, f.LoanAmount)
	}
	if f.CommitmentFee != math.Floor(f.CommitmentFee) {
		t.Errorf("expected a whole-dollar commitment fee, got %v", f.CommitmentFee)
	}
	if !mathutil.WithinTolerance(f.InterestCost, f.LandInterest+f.ConstructionInterest, 1e-9) {
		t.Errorf("expected interest cost to be land plus construction interest")
	}
}
