package counsel

import (
	"sort"

	"github.com/finlawtools/firmscan/pkg/models"
	"github.com/finlawtools/firmscan/pkg/utils"
)

// DedupeFilings collapses a stream of already type-filtered filings to one
// CompanyRecord per distinct clean company name, keeping the most recent
// filing. The sort is stable and descending by filing date, so among
// equal-dated filings for the same company the one appearing earlier in
// the input (API-returned) order wins — that tie-break is deliberate, not
// incidental.
//
// A company whose most recent filing carries no ticker is dropped after
// deduplication, not replaced by an older ticker-bearing filing.
func DedupeFilings(filings []models.FilingRecord) ([]models.CompanyRecord, error) {
	if len(filings) == 0 {
		return nil, &NoResultsError{Stage: "filing-type filter"}
	}

	records := make([]models.CompanyRecord, 0, len(filings))
	for _, f := range filings {
		clean, ticker := utils.ParseCompanyName(f.CompanyName)
		records = append(records, models.CompanyRecord{
			Company:    clean,
			Ticker:     ticker,
			FilingDate: utils.ParseFilingDate(f.FilingDate),
			CIK:        f.CIK,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FilingDate.After(records[j].FilingDate)
	})

	seen := make(map[string]bool, len(records))
	var out []models.CompanyRecord
	for _, r := range records {
		if seen[r.Company] {
			continue
		}
		seen[r.Company] = true
		if r.Ticker == "" {
			continue
		}
		out = append(out, r)
	}

	if len(out) == 0 {
		return nil, &NoResultsError{Stage: "deduplication"}
	}
	return out, nil
}
