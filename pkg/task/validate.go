package task

import (
	"time"
)

// dateLayouts are tried in order when parsing start and end dates.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// Validate checks field presence first, then date order. Presence failures
// are reported in field order so the same input always yields the same error.
func (f Fields) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"title", f.Title},
		{"employee", f.Employee},
		{"startDate", f.StartDate},
		{"endDate", f.EndDate},
		{"description", f.Description},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.name, Reason: ReasonMissingField}
		}
	}

	start, err := parseDate(f.StartDate)
	if err != nil {
		return &ValidationError{Field: "startDate", Reason: ReasonInvalidDate}
	}
	end, err := parseDate(f.EndDate)
	if err != nil {
		return &ValidationError{Field: "endDate", Reason: ReasonInvalidDate}
	}
	if start.After(end) {
		return &ValidationError{Field: "startDate", Reason: ReasonDateOrder}
	}
	return nil
}

// parseDate parses a calendar date such as "2024-01-31". Timestamps in RFC
// 3339 form are accepted too; dates without a zone are taken as UTC.
func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
