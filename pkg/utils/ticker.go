package utils

import (
	"regexp"
	"strings"
)

// EquitySuffix is the exchange suffix appended to tickers in output
// (Bloomberg convention).
const EquitySuffix = " US Equity"

// cikAnnotation matches trailing "(CIK 0001234567)" annotations that EDGAR
// appends to entity display names.
var cikAnnotation = regexp.MustCompile(`\s*\(CIK\s+\d+\)\s*`)

// tickerAnnotation matches a parenthesized ticker symbol, e.g. "(ACME)" or
// "(BRK.B)". Symbols are 1-10 chars, upper-case with optional dot/dash parts.
var tickerAnnotation = regexp.MustCompile(`\(([A-Z][A-Z0-9.\-]{0,9})\)`)

// ParseCompanyName splits a raw EDGAR entity display name such as
// "Acme Corp (ACME) (CIK 0001234567)" into a cleaned company name and a
// ticker in Bloomberg format ("ACME US Equity"). The ticker is empty when
// the name carries no symbol annotation.
func ParseCompanyName(raw string) (clean, ticker string) {
	s := cikAnnotation.ReplaceAllString(raw, " ")

	if m := tickerAnnotation.FindStringSubmatch(s); m != nil {
		ticker = m[1] + EquitySuffix
		s = tickerAnnotation.ReplaceAllString(s, " ")
	}

	clean = strings.Join(strings.Fields(s), " ")
	return clean, ticker
}

// CleanTicker strips the exchange suffix from a ticker and upper-cases the
// remainder, e.g. "acme US Equity" -> "ACME".
func CleanTicker(ticker string) string {
	t := strings.ReplaceAll(ticker, EquitySuffix, "")
	return strings.ToUpper(strings.TrimSpace(t))
}
