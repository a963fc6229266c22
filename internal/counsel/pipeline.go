package counsel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finlawtools/firmscan/internal/config"
	"github.com/finlawtools/firmscan/internal/edgar"
	"github.com/finlawtools/firmscan/pkg/models"
)

// Pipeline wires the search, enrichment and attribution stages into one
// run over a law firm and date range.
type Pipeline struct {
	source FilingSource
	ref    ReferenceData
	loan   LoanFeed
	finder LawyerFinder
	obs    Observer

	maxTotalFilings int
	concurrency     int
	marketCapFloor  float64
}

// New builds a pipeline from its collaborators. loan may be nil when no
// stock loan feed is configured.
func New(source FilingSource, ref ReferenceData, loan LoanFeed, cfg config.SearchConfig, obs Observer) *Pipeline {
	if obs == nil {
		obs = NopObserver
	}
	return &Pipeline{
		source:          source,
		ref:             ref,
		loan:            loan,
		finder:          NewExtractor(source, cfg.FilingsPerCompany),
		obs:             obs,
		maxTotalFilings: cfg.MaxTotalFilings,
		concurrency:     cfg.Concurrency,
		marketCapFloor:  cfg.MarketCapFloor,
	}
}

// Run executes the full search for one firm. The returned table's columns
// depend on which optional data sources contributed; terminal conditions
// come back as *NoResultsError, *NoMatchError or *NoQualifyingCompanyError.
func (p *Pipeline) Run(ctx context.Context, firm string, start, end time.Time) (*models.ResultTable, error) {
	p.obs.Report(fmt.Sprintf("Searching for companies represented by %s...", firm))

	filings, total, err := p.source.SearchFilings(ctx, firm, start, end, p.maxTotalFilings)
	if err != nil {
		return nil, err
	}
	p.obs.Report(fmt.Sprintf("Total filings found: %d", total))
	if len(filings) == 0 {
		return nil, &NoResultsError{Firm: firm, Stage: "search"}
	}

	important := edgar.FilterImportant(filings)
	p.obs.Report(fmt.Sprintf("After filtering to relevant filing types: %d", len(important)))

	companies, err := DedupeFilings(important)
	if err != nil {
		var nre *NoResultsError
		if errors.As(err, &nre) {
			nre.Firm = firm
		}
		return nil, err
	}
	p.obs.Report(fmt.Sprintf("Unique companies: %d", len(companies)))

	p.obs.Report("Filtering to reference tickers and adding market cap...")
	rows, err := EnrichReference(companies, p.ref, p.marketCapFloor, p.obs)
	if err != nil {
		return nil, err
	}

	groups := FieldGroups{WeekRange: p.ref.HasWeekRange()}
	if p.loan != nil {
		p.obs.Report("Adding stock loan availability data...")
		groups.StockLoan = EnrichLoan(ctx, rows, p.loan, p.obs)
	}

	AttributeLawyers(ctx, rows, p.finder, firm, start, end, p.concurrency, p.obs)

	p.obs.Report(fmt.Sprintf("Search complete: %d companies", len(rows)))
	return BuildTable(rows, groups), nil
}
