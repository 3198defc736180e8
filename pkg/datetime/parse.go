// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/proforma/pkg/constants"
)

const (
	// DateTimeLayout is the month format used for construction start months
	// and draw schedule labels.
	DateTimeLayout = constants.DateTimeLayout
)

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// MonthLabels returns count consecutive month labels starting with start
// itself, so month 1 of construction is the start month. An empty start
// yields "Month N" labels.
func MonthLabels(start string, count int) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}
	labels := make([]string, count)
	if start == "" {
		for i := range labels {
			labels[i] = fmt.Sprintf("Month %d", i+1)
		}
		return labels, nil
	}
	for i := range labels {
		label, err := OffsetDate(start, DateTimeLayout, i)
		if err != nil {
			return nil, fmt.Errorf("invalid start month %q: %w", start, err)
		}
		labels[i] = label
	}
	return labels, nil
}

// Today returns the snapshot date stamp for t.
func Today(t time.Time) string {
	return t.Format(constants.SnapshotDateLayout)
}
