package services

import (
	"fmt"
	"time"
)

// DateRange bounds a print history query. Zero values are open ends.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDate parses a date string in typical formats (YYYY-MM-DD)
func ParseDate(dateStr string) (time.Time, error) {
	// Primary format: ISO 8601 (standard for HTML5 date inputs)
	layout := "2006-01-02"

	parsedTime, err := time.Parse(layout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}

	return parsedTime, nil
}

// ParseDateRange parses optional from/to dates. The to day is included.
func ParseDateRange(from, to string) (DateRange, error) {
	var r DateRange
	if from != "" {
		t, err := ParseDate(from)
		if err != nil {
			return DateRange{}, err
		}
		r.From = t
	}
	if to != "" {
		t, err := ParseDate(to)
		if err != nil {
			return DateRange{}, err
		}
		r.To = t.AddDate(0, 0, 1)
	}
	if !r.From.IsZero() && !r.To.IsZero() && !r.From.Before(r.To) {
		return DateRange{}, fmt.Errorf("invalid date range: %s is after %s", from, to)
	}
	return r, nil
}
