// Package models defines the core data structures used throughout firmscan.
package models

import "time"

// FilingRecord is a single filing as returned by the EDGAR search
// collaborators. Records are read-only once fetched.
type FilingRecord struct {
	CompanyName string `json:"company_name"` // raw, possibly annotated with ticker
	CIK         string `json:"cik"`          // numeric string, no padding
	Accession   string `json:"accession"`    // dash-delimited, e.g. "0001234567-24-000012"
	PrimaryDoc  string `json:"primary_doc"`  // document filename, may be empty
	FilingDate  string `json:"filing_date"`  // YYYY-MM-DD as reported
	FilingType  string `json:"filing_type"`  // form type, e.g. "S-1"
}

// CompanyRecord is one deduplicated company derived from a filing stream:
// exactly one record per distinct clean company name, carrying the most
// recent qualifying filing date.
type CompanyRecord struct {
	Company    string    `json:"company"`     // cleaned company name
	Ticker     string    `json:"ticker"`      // raw, may carry an exchange suffix
	FilingDate time.Time `json:"filing_date"` // most recent qualifying filing
	CIK        string    `json:"cik"`
}

// EnrichedCompanyRecord is a CompanyRecord plus externally sourced fields.
// Optional fields are only meaningful when the corresponding enrichment
// succeeded; the result assembler decides per field group whether they are
// rendered at all.
type EnrichedCompanyRecord struct {
	CompanyRecord

	MarketCap float64 `json:"market_cap"`
	WeekHigh  float64 `json:"week_high_52,omitempty"`
	WeekLow   float64 `json:"week_low_52,omitempty"`

	RebateRate float64 `json:"rebate_rate,omitempty"`
	FeeRate    float64 `json:"fee_rate,omitempty"`
	Available  int64   `json:"available,omitempty"`
	HasLoan    bool    `json:"has_loan"`

	Lawyer string `json:"most_recent_lawyer,omitempty"` // empty when not found
}
