package counsel

import (
	"context"
	"sort"
	"time"

	"github.com/finlawtools/firmscan/internal/edgar"
	"github.com/finlawtools/firmscan/pkg/models"
)

// FilingSource bundles the EDGAR collaborators the pipeline consumes,
// implemented by *edgar.Client.
type FilingSource interface {
	SearchFilings(ctx context.Context, query string, start, end time.Time, maxTotal int) ([]models.FilingRecord, int, error)
	RecentFilings(ctx context.Context, cik string, start, end time.Time, limit int) ([]models.FilingRecord, error)
	DocumentURL(cik, accession, primaryDoc string) string
	FetchCounselText(ctx context.Context, docURL string) (string, error)
}

// Extractor attributes the most recently associated lawyer of a target
// firm for a single company, scanning that company's recent filings.
type Extractor struct {
	source     FilingSource
	maxFilings int
}

// NewExtractor creates an extractor that looks at up to maxFilings of each
// company's most recent filings.
func NewExtractor(source FilingSource, maxFilings int) *Extractor {
	if maxFilings <= 0 {
		maxFilings = 10
	}
	return &Extractor{source: source, maxFilings: maxFilings}
}

// MostRecentLawyer fetches the company's recent filings in descending
// recency order, accumulates firm-to-lawyer associations across them, and
// returns the alphabetically first lawyer of a firm fuzzy-matching
// targetFirm. Attribution is strictly best-effort: the second return is
// false when no lawyer could be attributed, and every failure along the
// way — listing, document fetch, extraction — degrades to that outcome.
// A fetch failure for one filing never stops the scan of the remaining
// filings.
func (e *Extractor) MostRecentLawyer(ctx context.Context, cik, companyName, targetFirm string, start, end time.Time) (string, bool) {
	if cik == "" {
		return "", false
	}

	filings, err := e.source.RecentFilings(ctx, cik, start, end, e.maxFilings)
	if err != nil {
		return "", false
	}

	index := make(map[string]map[string]struct{})
	for _, f := range filings {
		url := e.source.DocumentURL(f.CIK, f.Accession, f.PrimaryDoc)
		text, err := e.source.FetchCounselText(ctx, url)
		if err != nil || text == "" {
			continue
		}
		for firm, lawyers := range edgar.ExtractLawyers(text, companyName) {
			set := index[firm]
			if set == nil {
				set = make(map[string]struct{})
				index[firm] = set
			}
			for _, l := range lawyers {
				set[l] = struct{}{}
			}
		}
	}

	// Sorted firm keys keep the "first matching firm" deterministic.
	firms := make([]string, 0, len(index))
	for firm := range index {
		firms = append(firms, firm)
	}
	sort.Strings(firms)

	for _, firm := range firms {
		if !FirmsMatch(firm, targetFirm) {
			continue
		}
		lawyers := index[firm]
		if len(lawyers) == 0 {
			continue
		}
		names := make([]string, 0, len(lawyers))
		for n := range lawyers {
			names = append(names, n)
		}
		sort.Strings(names)
		return names[0], true
	}
	return "", false
}
