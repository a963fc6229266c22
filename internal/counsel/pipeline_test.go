package counsel

import (
	"context"
	"errors"
	"testing"

	"github.com/finlawtools/firmscan/internal/config"
	"github.com/finlawtools/firmscan/internal/reference"
	"github.com/finlawtools/firmscan/internal/stockloan"
	"github.com/finlawtools/firmscan/pkg/models"
)

func pipelineConfig() config.SearchConfig {
	return config.SearchConfig{
		MaxTotalFilings:   10000,
		FilingsPerCompany: 10,
		Concurrency:       5,
		MarketCapFloor:    500_000_000,
	}
}

func TestPipelineRun(t *testing.T) {
	src := &fakeSource{
		searchResult: []models.FilingRecord{
			filing("Acme Corp (ACME) (CIK 0000012345)", "12345", "2023-01-15"),
			filing("Acme Corp (ACME) (CIK 0000012345)", "12345", "2023-06-01"),
		},
		searchTotal: 2,
		filings: []models.FilingRecord{
			{CIK: "12345", Accession: "0001-23-000002", PrimaryDoc: "s1.htm"},
		},
		docs: map[string]string{
			"https://example.test/12345/0001-23-000002/s1.htm": "Legal matters will be passed upon by Doe & Partners LLP. /s/ Carol Adams, counsel to the issuer",
		},
	}
	ref := &fakeRef{rows: map[string]reference.Row{
		"ACME": {Ticker: "ACME", MarketCap: 2_000_000_000},
	}}
	feed := &fakeFeed{records: []stockloan.LoanRecord{
		{Symbol: "ACME", RebateRate: -0.25, FeeRate: 0.3, Available: 150000},
	}}

	p := New(src, ref, feed, pipelineConfig(), NopObserver)
	table, err := p.Run(context.Background(), "Doe & Partners", searchWindow.start, searchWindow.end)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(table.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(table.Rows))
	}
	row := table.Rows[0]
	cell := func(col string) string {
		for i, c := range table.Columns {
			if c == col {
				return row[i]
			}
		}
		t.Fatalf("missing column %q in %v", col, table.Columns)
		return ""
	}

	if cell("Company") != "Acme Corp" {
		t.Errorf("company = %q", cell("Company"))
	}
	if cell("Ticker") != "ACME US Equity" {
		t.Errorf("ticker = %q", cell("Ticker"))
	}
	if cell("Filing Date") != "2023-06-01" {
		t.Errorf("filing date = %q, want the most recent filing's date", cell("Filing Date"))
	}
	if cell("Most Recent Lawyer") != "Carol Adams" {
		t.Errorf("lawyer = %q", cell("Most Recent Lawyer"))
	}
	if cell("Available") != "150000" {
		t.Errorf("available = %q", cell("Available"))
	}
}

func TestPipelineRunNoSearchResults(t *testing.T) {
	src := &fakeSource{searchTotal: 0}
	ref := &fakeRef{rows: map[string]reference.Row{}}

	p := New(src, ref, nil, pipelineConfig(), NopObserver)
	_, err := p.Run(context.Background(), "Doe & Partners", searchWindow.start, searchWindow.end)

	var nre *NoResultsError
	if !errors.As(err, &nre) {
		t.Fatalf("err = %v, want *NoResultsError", err)
	}
	if nre.Firm != "Doe & Partners" {
		t.Errorf("error firm = %q, want the searched firm", nre.Firm)
	}
}

func TestPipelineRunBelowFloor(t *testing.T) {
	src := &fakeSource{
		searchResult: []models.FilingRecord{
			filing("Tiny Co (TINY)", "999", "2023-03-01"),
		},
		searchTotal: 1,
	}
	ref := &fakeRef{rows: map[string]reference.Row{
		"TINY": {Ticker: "TINY", MarketCap: 100_000_000},
	}}

	p := New(src, ref, nil, pipelineConfig(), NopObserver)
	_, err := p.Run(context.Background(), "Doe & Partners", searchWindow.start, searchWindow.end)

	var nqe *NoQualifyingCompanyError
	if !errors.As(err, &nqe) {
		t.Fatalf("err = %v, want *NoQualifyingCompanyError", err)
	}
}

func TestPipelineRunLoanFailureOmitsColumns(t *testing.T) {
	src := &fakeSource{
		searchResult: []models.FilingRecord{
			filing("Acme Corp (ACME)", "12345", "2023-06-01"),
		},
		searchTotal: 1,
	}
	ref := &fakeRef{rows: map[string]reference.Row{
		"ACME": {Ticker: "ACME", MarketCap: 2_000_000_000},
	}}
	feed := &fakeFeed{err: errors.New("feed unavailable")}

	p := New(src, ref, feed, pipelineConfig(), NopObserver)
	table, err := p.Run(context.Background(), "Doe & Partners", searchWindow.start, searchWindow.end)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, c := range table.Columns {
		if c == "Available" || c == "Rebate Rate (%)" || c == "Fee Rate (%)" {
			t.Errorf("loan column %q present after failed feed fetch", c)
		}
	}
	if len(table.Rows) != 1 {
		t.Errorf("got %d rows, want 1 (rows survive a loan feed failure)", len(table.Rows))
	}
}
