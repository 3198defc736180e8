package validation

import (
	"fmt"

	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/pkg/constants"
)

// ValidateDeal returns the input problems a user should see before trusting
// a deal's results. Warnings never stop a calculation.
func ValidateDeal(d *deal.Deal) []string {
	var warnings []string
	name := d.ProjectInfo.Name
	if name == "" {
		name = "untitled"
	}

	if d.Land.PurchasePrice <= 0 {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' has no land cost", name))
	}
	if d.HardCosts.Total <= 0 {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' has no construction cost", name))
	}
	if d.Revenue.PricePerUnit <= 0 {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' has no sale price", name))
	}
	if units := d.ProjectInfo.Units; units < constants.MinUnits || units > constants.MaxUnits {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' has %d units, expected %d to %d",
			name, units, constants.MinUnits, constants.MaxUnits))
	}
	if months := d.Financing.ConstructionPeriod; months > constants.MaxConstructionPeriod {
		warnings = append(warnings, fmt.Sprintf("Deal '%s' has a %d month construction period, expected at most %d",
			name, months, constants.MaxConstructionPeriod))
	}

	return warnings
}

// ValidateDeals collects the warnings of every deal.
func ValidateDeals(deals []*deal.Deal) []string {
	var warnings []string
	for _, d := range deals {
		warnings = append(warnings, ValidateDeal(d)...)
	}
	return warnings
}
