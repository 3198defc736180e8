package validation

import (
	"strings"
	"testing"

	"github.com/iwvelando/proforma/internal/deal"
)

func completeDeal() *deal.Deal {
	return &deal.Deal{
		ProjectInfo: deal.ProjectInfo{Name: "Fernwood", Units: 4},
		Land:        deal.LandAcquisition{PurchasePrice: 400000},
		HardCosts:   deal.CostSection{Total: 1210000},
		Revenue:     deal.Revenue{PricePerUnit: 650000},
	}
}

func TestValidateDeal(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*deal.Deal)
		warnings []string
	}{
		{
			name:   "Complete deal",
			modify: func(*deal.Deal) {},
		},
		{
			name:     "Missing land cost",
			modify:   func(d *deal.Deal) { d.Land.PurchasePrice = 0 },
			warnings: []string{"no land cost"},
		},
		{
			name:     "Missing construction cost",
			modify:   func(d *deal.Deal) { d.HardCosts.Total = 0 },
			warnings: []string{"no construction cost"},
		},
		{
			name:     "Missing sale price",
			modify:   func(d *deal.Deal) { d.Revenue.PricePerUnit = -1 },
			warnings: []string{"no sale price"},
		},
		{
			name:     "Too few units",
			modify:   func(d *deal.Deal) { d.ProjectInfo.Units = 1 },
			warnings: []string{"has 1 units, expected 2 to 8"},
		},
		{
			name:     "Too many units",
			modify:   func(d *deal.Deal) { d.ProjectInfo.Units = 9 },
			warnings: []string{"has 9 units"},
		},
		{
			name:     "Construction period too long",
			modify:   func(d *deal.Deal) { d.Financing.ConstructionPeriod = 100000 },
			warnings: []string{"100000 month construction period, expected at most 600"},
		},
		{
			name: "Everything missing on an untitled deal",
			modify: func(d *deal.Deal) {
				*d = deal.Deal{}
			},
			warnings: []string{"'untitled' has no land cost", "no construction cost", "no sale price", "has 0 units"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completeDeal()
			tt.modify(d)
			got := ValidateDeal(d)
			if len(got) != len(tt.warnings) {
				t.Fatalf("expected %d warnings, got %d: %v", len(tt.warnings), len(got), got)
			}
			for i, want := range tt.warnings {
				if !strings.Contains(got[i], want) {
					t.Errorf("warning %d: expected to contain %q, got %q", i, want, got[i])
				}
			}
		})
	}
}

func TestValidateDealsBoundaries(t *testing.T) {
	low, high := completeDeal(), completeDeal()
	low.ProjectInfo.Units = 2
	high.ProjectInfo.Units = 8
	if warnings := ValidateDeals([]*deal.Deal{low, high}); len(warnings) != 0 {
		t.Errorf("expected no warnings at the unit bounds, got %v", warnings)
	}

	bad := completeDeal()
	bad.Land.PurchasePrice = 0
	if warnings := ValidateDeals([]*deal.Deal{low, bad}); len(warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", warnings)
	}
}
