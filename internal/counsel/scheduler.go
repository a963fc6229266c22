package counsel

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finlawtools/firmscan/pkg/models"
)

// LawyerFinder resolves the most recent lawyer of a target firm for one
// company. Implemented by *Extractor.
type LawyerFinder interface {
	MostRecentLawyer(ctx context.Context, cik, companyName, targetFirm string, start, end time.Time) (string, bool)
}

const progressEvery = 10

// AttributeLawyers runs the lawyer lookup for every row with a bounded
// number of concurrent workers. Each goroutine writes only its own row, so
// no locking is needed around the slice. Lookup failures leave Lawyer
// empty; nothing here is fatal.
func AttributeLawyers(ctx context.Context, rows []models.EnrichedCompanyRecord, finder LawyerFinder, targetFirm string, start, end time.Time, limit int, obs Observer) {
	if limit <= 0 {
		limit = 5
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var done atomic.Int64
	total := int64(len(rows))

	for i := range rows {
		i := i
		g.Go(func() error {
			if rows[i].CIK != "" {
				if lawyer, ok := finder.MostRecentLawyer(ctx, rows[i].CIK, rows[i].Company, targetFirm, start, end); ok {
					rows[i].Lawyer = lawyer
				}
			}
			if n := done.Add(1); n%progressEvery == 0 || n == total {
				obs.Report(fmt.Sprintf("Lawyer lookup: %d/%d companies processed", n, total))
			}
			return nil
		})
	}
	g.Wait()
}
