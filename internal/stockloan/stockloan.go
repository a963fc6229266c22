// Package stockloan fetches the securities-lending availability feed.
// The feed is a pipe-delimited text file in the IBKR shortable-stock
// format, with '#'-prefixed metadata and header rows:
//
//	#BOF|2024.01.02|...
//	#SYM|CUR|NAME|CON|ISIN|REBATERATE|FEERATE|AVAILABLE
//	AAPL|USD|APPLE INC|265598|US0378331005|4.83|0.25|15000000
//	...
//	#EOF
package stockloan

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/finlawtools/firmscan/internal/infra"
)

// LoanRecord is one symbol's borrow-availability entry.
type LoanRecord struct {
	Symbol     string  `json:"symbol"`
	RebateRate float64 `json:"rebate_rate"`
	FeeRate    float64 `json:"fee_rate"`
	Available  int64   `json:"available"`
}

// Client fetches and parses the loan-availability feed.
type Client struct {
	url     string
	limiter *infra.RateLimiter
}

// NewClient creates a stock-loan feed client for the given feed URL.
func NewClient(url string) *Client {
	return &Client{
		url:     url,
		limiter: infra.NewRateLimiter(2, time.Second),
	}
}

// Fetch downloads and parses the feed. Rows with malformed numeric fields
// are skipped rather than failing the whole feed.
func (c *Client) Fetch(ctx context.Context) ([]LoanRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, _, err := infra.DoGet(ctx, c.url, map[string]string{
		"Accept": "text/plain, */*",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch stock loan feed: %w", err)
	}
	defer body.Close()

	r := csv.NewReader(body)
	r.Comma = '|'
	r.Comment = '#' // skips BOF/EOF markers and the header row
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse stock loan feed: %w", err)
	}

	var records []LoanRecord
	for _, row := range rows {
		if len(row) < 8 {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(row[0]))
		if symbol == "" {
			continue
		}
		rebate, err1 := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		fee, err2 := strconv.ParseFloat(strings.TrimSpace(row[6]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		records = append(records, LoanRecord{
			Symbol:     symbol,
			RebateRate: rebate,
			FeeRate:    fee,
			Available:  parseAvailable(row[7]),
		})
	}
	return records, nil
}

// parseAvailable handles plain and ">N"-style share counts.
func parseAvailable(s string) int64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), ">"))
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
