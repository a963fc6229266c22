package counsel

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/finlawtools/firmscan/pkg/models"
)

type fakeSource struct {
	filings      []models.FilingRecord
	filingsErr   error
	docs         map[string]string // URL -> counsel text
	docErrs      map[string]error
	recentCalls  int
	fetchedURLs  []string
	searchResult []models.FilingRecord
	searchTotal  int
	searchErr    error
}

func (f *fakeSource) SearchFilings(ctx context.Context, query string, start, end time.Time, maxTotal int) ([]models.FilingRecord, int, error) {
	return f.searchResult, f.searchTotal, f.searchErr
}

func (f *fakeSource) RecentFilings(ctx context.Context, cik string, start, end time.Time, limit int) ([]models.FilingRecord, error) {
	f.recentCalls++
	if f.filingsErr != nil {
		return nil, f.filingsErr
	}
	if limit < len(f.filings) {
		return f.filings[:limit], nil
	}
	return f.filings, nil
}

func (f *fakeSource) DocumentURL(cik, accession, primaryDoc string) string {
	return fmt.Sprintf("https://example.test/%s/%s/%s", cik, accession, primaryDoc)
}

func (f *fakeSource) FetchCounselText(ctx context.Context, docURL string) (string, error) {
	f.fetchedURLs = append(f.fetchedURLs, docURL)
	if err, ok := f.docErrs[docURL]; ok {
		return "", err
	}
	return f.docs[docURL], nil
}

var searchWindow = struct{ start, end time.Time }{
	time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
}

func TestMostRecentLawyer(t *testing.T) {
	src := &fakeSource{
		filings: []models.FilingRecord{
			{CIK: "12345", Accession: "0001-23-000001", PrimaryDoc: "s1.htm"},
		},
		docs: map[string]string{
			"https://example.test/12345/0001-23-000001/s1.htm": "Legal matters will be passed upon by Doe & Partners LLP. /s/ Carol Adams, counsel to the issuer",
		},
	}

	e := NewExtractor(src, 10)
	lawyer, ok := e.MostRecentLawyer(context.Background(), "12345", "Acme Corp", "Doe & Partners", searchWindow.start, searchWindow.end)
	if !ok {
		t.Fatal("MostRecentLawyer: no lawyer found")
	}
	if lawyer != "Carol Adams" {
		t.Errorf("lawyer = %q, want Carol Adams", lawyer)
	}
}

func TestMostRecentLawyerEmptyCIK(t *testing.T) {
	src := &fakeSource{}
	e := NewExtractor(src, 10)
	if _, ok := e.MostRecentLawyer(context.Background(), "", "Acme Corp", "Doe & Partners", searchWindow.start, searchWindow.end); ok {
		t.Error("expected no lawyer for empty CIK")
	}
	if src.recentCalls != 0 {
		t.Errorf("RecentFilings called %d times for empty CIK, want 0", src.recentCalls)
	}
}

func TestMostRecentLawyerListingError(t *testing.T) {
	src := &fakeSource{filingsErr: errors.New("edgar down")}
	e := NewExtractor(src, 10)
	if _, ok := e.MostRecentLawyer(context.Background(), "12345", "Acme Corp", "Doe & Partners", searchWindow.start, searchWindow.end); ok {
		t.Error("expected failure to degrade to not-found")
	}
}

func TestMostRecentLawyerSkipsFailedDocuments(t *testing.T) {
	src := &fakeSource{
		filings: []models.FilingRecord{
			{CIK: "12345", Accession: "0001-23-000001", PrimaryDoc: "a.htm"},
			{CIK: "12345", Accession: "0001-23-000002", PrimaryDoc: "b.htm"},
		},
		docErrs: map[string]error{
			"https://example.test/12345/0001-23-000001/a.htm": errors.New("boom"),
		},
		docs: map[string]string{
			"https://example.test/12345/0001-23-000002/b.htm": "Counsel to the underwriters is Smith Klein & Roe LLP. Attention: Jane Marle",
		},
	}

	e := NewExtractor(src, 10)
	lawyer, ok := e.MostRecentLawyer(context.Background(), "12345", "Acme Corp", "Smith Klein & Roe", searchWindow.start, searchWindow.end)
	if !ok || lawyer != "Jane Marle" {
		t.Errorf("lawyer = %q, ok = %v; want Jane Marle after skipping the failed document", lawyer, ok)
	}
	if len(src.fetchedURLs) != 2 {
		t.Errorf("fetched %d documents, want 2", len(src.fetchedURLs))
	}
}

func TestMostRecentLawyerNoFirmMatch(t *testing.T) {
	src := &fakeSource{
		filings: []models.FilingRecord{
			{CIK: "12345", Accession: "0001-23-000001", PrimaryDoc: "a.htm"},
		},
		docs: map[string]string{
			"https://example.test/12345/0001-23-000001/a.htm": "Legal matters by Other Firm LLP. /s/ Bob Smith, counsel",
		},
	}
	e := NewExtractor(src, 10)
	if _, ok := e.MostRecentLawyer(context.Background(), "12345", "Acme Corp", "Doe & Partners", searchWindow.start, searchWindow.end); ok {
		t.Error("expected no match for an unrelated firm")
	}
}
