// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/proforma/internal/deal"
	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/iwvelando/proforma/pkg/mathutil"
)

// FindDeal finds a deal by project name in the results slice.
// Returns nil when no deal has the name.
func FindDeal(deals []*deal.Deal, name string) *deal.Deal {
	for _, d := range deals {
		if d != nil && d.ProjectInfo.Name == name {
			return d
		}
	}
	return nil
}

// SumItems adds up the amounts of a section's line items.
func SumItems(items []deal.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Amount
	}
	return total
}

// Close reports whether two amounts agree to within a cent.
func Close(a, b float64) bool {
	return mathutil.WithinTolerance(a, b, constants.CurrencyTolerance)
}
