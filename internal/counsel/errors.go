package counsel

import "fmt"

// NoResultsError is returned when a pipeline stage is left with zero
// filings or companies. It is terminal: the caller gets no table.
type NoResultsError struct {
	Firm  string
	Stage string // "search", "filing-type filter", "deduplication"
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no results for law firm %q at %s stage", e.Firm, e.Stage)
}

// NoMatchError is returned when no company survives the reference-dataset
// join.
type NoMatchError struct{}

func (e *NoMatchError) Error() string {
	return "no companies found with tickers in the reference dataset"
}

// NoQualifyingCompanyError is returned when no company survives the
// market-cap floor filter.
type NoQualifyingCompanyError struct {
	Floor float64
}

func (e *NoQualifyingCompanyError) Error() string {
	return fmt.Sprintf("no companies found with market cap above %.0f", e.Floor)
}
