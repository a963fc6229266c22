package utils

import "time"

// FilingDateLayout is the canonical date format used in filings and output.
const FilingDateLayout = "2006-01-02"

// ParseFilingDate parses a filing date in any of the formats EDGAR uses.
// Returns the zero time when no layout matches.
func ParseFilingDate(s string) time.Time {
	for _, layout := range []string{
		FilingDateLayout,
		"2006-01-02T15:04:05.000Z",
		"01/02/2006",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatFilingDate renders a date as YYYY-MM-DD.
func FormatFilingDate(t time.Time) string {
	return t.Format(FilingDateLayout)
}
