package counsel

import (
	"context"
	"fmt"
	"strings"

	"github.com/finlawtools/firmscan/internal/reference"
	"github.com/finlawtools/firmscan/internal/stockloan"
	"github.com/finlawtools/firmscan/pkg/models"
	"github.com/finlawtools/firmscan/pkg/utils"
)

// ReferenceData is the static ticker reference dataset collaborator,
// implemented by *reference.Table.
type ReferenceData interface {
	Lookup(ticker string) (reference.Row, bool)
	HasWeekRange() bool
}

// LoanFeed is the borrow-availability feed collaborator, implemented by
// *stockloan.Client.
type LoanFeed interface {
	Fetch(ctx context.Context) ([]stockloan.LoanRecord, error)
}

// EnrichReference joins companies against the reference dataset by cleaned
// ticker and applies the market-cap floor. Companies with no reference
// match are dropped, not kept as nulls (inner-join semantics), as are
// companies at or below the floor. Counts are reported to the observer
// after each filter stage.
func EnrichReference(companies []models.CompanyRecord, ref ReferenceData, floor float64, obs Observer) ([]models.EnrichedCompanyRecord, error) {
	var rows []models.EnrichedCompanyRecord
	for _, c := range companies {
		r, ok := ref.Lookup(utils.CleanTicker(c.Ticker))
		if !ok {
			continue
		}
		row := models.EnrichedCompanyRecord{CompanyRecord: c, MarketCap: r.MarketCap}
		if r.WeekHigh != nil {
			row.WeekHigh = *r.WeekHigh
		}
		if r.WeekLow != nil {
			row.WeekLow = *r.WeekLow
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &NoMatchError{}
	}
	obs.Report(fmt.Sprintf("Companies with reference tickers: %d", len(rows)))

	initial := len(rows)
	kept := rows[:0]
	for _, r := range rows {
		if r.MarketCap > floor {
			kept = append(kept, r)
		}
	}
	obs.Report(fmt.Sprintf("Filtered to %d companies with market cap above %.0f (from %d)", len(kept), floor, initial))

	if len(kept) == 0 {
		return nil, &NoQualifyingCompanyError{Floor: floor}
	}
	return kept, nil
}

// EnrichLoan left-joins borrow-availability fields onto the rows by cleaned
// ticker. Companies without a feed match keep all prior fields with the
// loan fields absent; they are never dropped. A feed fetch failure skips
// the whole step — the rows come back unchanged and the failure is
// reported as a note, never surfaced to the caller. The return value says
// whether the loan field group was populated at all.
func EnrichLoan(ctx context.Context, rows []models.EnrichedCompanyRecord, feed LoanFeed, obs Observer) bool {
	records, err := feed.Fetch(ctx)
	if err != nil {
		obs.Report(fmt.Sprintf("Note: could not fetch stock loan data (%v)", err))
		return false
	}

	bySymbol := make(map[string]stockloan.LoanRecord, len(records))
	for _, r := range records {
		bySymbol[strings.ToUpper(strings.TrimSpace(r.Symbol))] = r
	}

	for i := range rows {
		if r, ok := bySymbol[utils.CleanTicker(rows[i].Ticker)]; ok {
			rows[i].RebateRate = r.RebateRate
			rows[i].FeeRate = r.FeeRate
			rows[i].Available = r.Available
			rows[i].HasLoan = true
		}
	}
	return true
}
