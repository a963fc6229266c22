// Package edgar implements the SEC EDGAR collaborators consumed by the
// counsel pipeline: paginated full-text filing search, per-company recent
// filings via the submissions API, and filing-document retrieval.
//
// No API key required. Must include a User-Agent header per SEC policy.
// Docs: https://www.sec.gov/edgar/sec-api-documentation
// Rate limit: 10 requests/second per user-agent.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/finlawtools/firmscan/internal/config"
	"github.com/finlawtools/firmscan/internal/infra"
	"github.com/finlawtools/firmscan/pkg/models"
)

// searchPageSize is the page size requested from the full-text search API.
const searchPageSize = 100

// Client talks to SEC EDGAR. All requests share one rate limiter so the
// combined request rate stays under SEC's per-user-agent cap.
type Client struct {
	searchBaseURL  string
	dataBaseURL    string
	archiveBaseURL string
	userAgent      string

	cache   *infra.Cache
	limiter *infra.RateLimiter
}

// NewClient creates an EDGAR client from configuration.
func NewClient(cfg config.EdgarConfig) *Client {
	ua := cfg.UserAgent
	if cfg.Contact != "" {
		ua = fmt.Sprintf("%s (%s)", cfg.UserAgent, cfg.Contact)
	}
	ttl := time.Duration(cfg.CacheTTLSec) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	rate := cfg.RatePerSecond
	if rate <= 0 {
		rate = 8
	}
	return &Client{
		searchBaseURL:  strings.TrimRight(cfg.SearchBaseURL, "/"),
		dataBaseURL:    strings.TrimRight(cfg.DataBaseURL, "/"),
		archiveBaseURL: strings.TrimRight(cfg.ArchiveBaseURL, "/"),
		userAgent:      ua,
		cache:          infra.NewCache(ttl),
		limiter:        infra.NewRateLimiter(rate, time.Second),
	}
}

// Ping checks connectivity to SEC EDGAR.
func (c *Client) Ping(ctx context.Context) error {
	u := c.dataBaseURL + "/submissions/CIK0000320193.json" // Apple
	body, _, err := infra.DoGet(ctx, u, c.headers())
	if err != nil {
		return fmt.Errorf("edgar ping: %w", err)
	}
	body.Close()
	return nil
}

// SearchFilings queries EDGAR full-text search for filings mentioning the
// given phrase within a date range, paginating until maxTotal records are
// collected or the result set is exhausted. It returns the records and the
// total hit count reported by EDGAR.
func (c *Client) SearchFilings(ctx context.Context, query string, start, end time.Time, maxTotal int) ([]models.FilingRecord, int, error) {
	cacheKey := fmt.Sprintf("search:%s:%s:%s:%d", query, start.Format("2006-01-02"), end.Format("2006-01-02"), maxTotal)
	if cached, ok := c.cache.Get(cacheKey); ok {
		hit := cached.(searchCacheEntry)
		return hit.records, hit.total, nil
	}

	var records []models.FilingRecord
	total := 0

	for from := 0; maxTotal <= 0 || len(records) < maxTotal; from += searchPageSize {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, 0, err
		}

		u := fmt.Sprintf("%s/search-index?q=%s&dateRange=custom&startdt=%s&enddt=%s&from=%d&size=%d",
			c.searchBaseURL,
			url.QueryEscape(fmt.Sprintf("%q", query)),
			start.Format("2006-01-02"), end.Format("2006-01-02"),
			from, searchPageSize)

		var resp searchResponse
		if err := c.getJSON(ctx, u, &resp); err != nil {
			return nil, 0, fmt.Errorf("edgar filing search: %w", err)
		}

		total = resp.Hits.Total.Value
		if len(resp.Hits.Hits) == 0 {
			break
		}

		for _, hit := range resp.Hits.Hits {
			records = append(records, hitToRecord(hit))
		}

		if from+searchPageSize >= total {
			break
		}
	}

	if maxTotal > 0 && len(records) > maxTotal {
		records = records[:maxTotal]
	}

	c.cache.Set(cacheKey, searchCacheEntry{records: records, total: total})
	return records, total, nil
}

type searchCacheEntry struct {
	records []models.FilingRecord
	total   int
}

// hitToRecord converts a full-text search hit to a FilingRecord. The hit ID
// is "<accession>:<primary document>"; display names carry the ticker
// annotation that entity_name lacks.
func hitToRecord(hit searchHit) models.FilingRecord {
	accession, primaryDoc := hit.ID, ""
	if i := strings.IndexByte(hit.ID, ':'); i >= 0 {
		accession, primaryDoc = hit.ID[:i], hit.ID[i+1:]
	}

	name := hit.Source.EntityName
	if len(hit.Source.DisplayNames) > 0 {
		name = hit.Source.DisplayNames[0]
	}
	cik := ""
	if len(hit.Source.CIKs) > 0 {
		cik = hit.Source.CIKs[0]
	}

	return models.FilingRecord{
		CompanyName: name,
		CIK:         cik,
		Accession:   accession,
		PrimaryDoc:  primaryDoc,
		FilingDate:  hit.Source.FiledAt,
		FilingType:  hit.Source.FormType,
	}
}

// RecentFilings returns up to limit of the company's most recent filings
// within [start, end], newest first, from the submissions API.
func (c *Client) RecentFilings(ctx context.Context, cik string, start, end time.Time, limit int) ([]models.FilingRecord, error) {
	cacheKey := fmt.Sprintf("recent:%s:%s:%s:%d", cik, start.Format("2006-01-02"), end.Format("2006-01-02"), limit)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]models.FilingRecord), nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/submissions/CIK%s.json", c.dataBaseURL, PadCIK(cik))
	var resp submissionsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("edgar submissions for CIK %s: %w", cik, err)
	}

	recent := resp.Filings.Recent
	var filings []models.FilingRecord
	for i := 0; i < len(recent.AccessionNumber); i++ {
		if limit > 0 && len(filings) >= limit {
			break
		}
		filed, err := time.Parse("2006-01-02", recent.FilingDate[i])
		if err != nil {
			continue
		}
		if filed.Before(start) || filed.After(end) {
			continue
		}
		primaryDoc := ""
		if i < len(recent.PrimaryDocument) {
			primaryDoc = recent.PrimaryDocument[i]
		}
		filings = append(filings, models.FilingRecord{
			CompanyName: resp.Name,
			CIK:         cik,
			Accession:   recent.AccessionNumber[i],
			PrimaryDoc:  primaryDoc,
			FilingDate:  recent.FilingDate[i],
			FilingType:  recent.Form[i],
		})
	}

	c.cache.Set(cacheKey, filings)
	return filings, nil
}

// DocumentURL builds the archive URL for a filing document. When the filing
// has no primary document the complete submission text file is used instead.
func (c *Client) DocumentURL(cik, accession, primaryDoc string) string {
	accessionClean := strings.ReplaceAll(accession, "-", "")
	doc := primaryDoc
	if doc == "" {
		doc = accession + ".txt"
	}
	return fmt.Sprintf("%s/edgar/data/%s/%s/%s",
		c.archiveBaseURL, strings.TrimLeft(cik, "0"), accessionClean, doc)
}

// --- shared helpers ---

func (c *Client) headers() map[string]string {
	return map[string]string{
		"User-Agent": c.userAgent,
		"Accept":     "application/json",
	}
}

// getJSON performs a GET request to an EDGAR endpoint and decodes JSON.
func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	body, _, err := infra.DoGet(ctx, url, c.headers())
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read EDGAR response: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse EDGAR JSON: %w", err)
	}
	return nil
}

// PadCIK pads a CIK number to 10 digits with leading zeros.
func PadCIK(cik string) string {
	for len(cik) < 10 {
		cik = "0" + cik
	}
	return cik
}
