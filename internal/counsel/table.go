package counsel

import (
	"strconv"

	"github.com/finlawtools/firmscan/pkg/models"
	"github.com/finlawtools/firmscan/pkg/utils"
)

// FieldGroups records which optional column groups the enrichment stages
// actually produced for this run.
type FieldGroups struct {
	WeekRange bool
	StockLoan bool
}

// BuildTable assembles the final result table. Column order is fixed;
// the 52-week and stock-loan groups appear only when their data source
// contributed for this run.
func BuildTable(rows []models.EnrichedCompanyRecord, groups FieldGroups) *models.ResultTable {
	columns := []string{"Company", "Ticker", "Most Recent Lawyer", "Market Cap"}
	if groups.WeekRange {
		columns = append(columns, "52wk High", "52wk Low")
	}
	if groups.StockLoan {
		columns = append(columns, "Rebate Rate (%)", "Fee Rate (%)", "Available")
	}
	columns = append(columns, "Filing Date")

	table := &models.ResultTable{Columns: columns, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		lawyer := r.Lawyer
		if lawyer == "" {
			lawyer = "Not found"
		}
		row := []string{
			r.Company,
			utils.CleanTicker(r.Ticker) + utils.EquitySuffix,
			lawyer,
			formatFloat(r.MarketCap),
		}
		if groups.WeekRange {
			row = append(row, formatFloat(r.WeekHigh), formatFloat(r.WeekLow))
		}
		if groups.StockLoan {
			if r.HasLoan {
				row = append(row,
					formatFloat(r.RebateRate),
					formatFloat(r.FeeRate),
					strconv.FormatInt(r.Available, 10))
			} else {
				row = append(row, "", "", "")
			}
		}
		row = append(row, utils.FormatFilingDate(r.FilingDate))
		table.Rows = append(table.Rows, row)
	}
	return table
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
