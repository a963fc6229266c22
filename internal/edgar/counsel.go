package edgar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/finlawtools/firmscan/internal/infra"
)

// Counsel-section markers, checked case-insensitively against filing text.
var counselMarkers = []string{
	"legal matters",
	"legal counsel",
	"attorneys for",
	"counsel",
}

const (
	maxDocumentBytes  = 8 << 20 // filings can be large; cap the read
	counselWindowBack = 400
	counselWindowFwd  = 1800
	maxCounselWindows = 8
)

// FetchCounselText fetches a filing document and returns the text windows
// surrounding counsel-related section markers. Returns an empty string when
// the document mentions no counsel section.
func (c *Client) FetchCounselText(ctx context.Context, docURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, _, err := infra.DoGet(ctx, docURL, map[string]string{
		"User-Agent": c.userAgent,
		"Accept":     "text/html, text/plain, */*",
	})
	if err != nil {
		return "", fmt.Errorf("fetch document %s: %w", docURL, err)
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxDocumentBytes))
	if err != nil {
		return "", fmt.Errorf("read document %s: %w", docURL, err)
	}

	text, err := documentText(data)
	if err != nil {
		return "", fmt.Errorf("parse document %s: %w", docURL, err)
	}

	return counselWindows(text), nil
}

// documentText strips markup from a filing document. Plain-text documents
// pass through goquery unchanged as a single text node.
func documentText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	// Collapse all whitespace runs so the regex scans see one flat line.
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}

// counselWindows returns the concatenated text windows around counsel
// markers, or "" when none are present.
func counselWindows(text string) string {
	lower := strings.ToLower(text)

	var windows []string
	for _, marker := range counselMarkers {
		offset := 0
		for len(windows) < maxCounselWindows {
			i := strings.Index(lower[offset:], marker)
			if i < 0 {
				break
			}
			pos := offset + i
			from := pos - counselWindowBack
			if from < 0 {
				from = 0
			}
			to := pos + counselWindowFwd
			if to > len(text) {
				to = len(text)
			}
			windows = append(windows, text[from:to])
			offset = pos + len(marker)
		}
	}

	return strings.Join(windows, "\n")
}

// --- lawyer extraction ---

// firmNamePattern matches a run of capitalized words joined by commas or
// ampersands and ending in a legal-entity suffix, e.g.
// "Skadden, Arps, Slate, Meagher & Flom LLP". Deliberately loose: the
// pipeline's fuzzy firm match tolerates extra leading words.
var firmNamePattern = regexp.MustCompile(
	`(?:[A-Z][A-Za-z.'-]+(?:,? | ?& ?)){1,7}(?:LLP|L\.L\.P\.|LLC|P\.C\.|P\.A\.)`)

// Individual-name patterns: conformed signatures, "Esq." designations, and
// attention lines are where filings name the responsible lawyer.
var (
	signaturePattern = regexp.MustCompile(`/s/ ?([A-Z][A-Za-z.'-]+(?: [A-Z][A-Za-z.'-]+){1,3})`)
	esqPattern       = regexp.MustCompile(`([A-Z][A-Za-z.'-]+(?: [A-Z][A-Za-z.'-]+){1,3}), ?Esq`)
	attnPattern      = regexp.MustCompile(`(?:Attention|Attn\.?|c/o):? ([A-Z][A-Za-z.'-]+(?: [A-Z][A-Za-z.'-]+){1,3})`)
)

// ExtractLawyers scans counsel text for law-firm names and the individual
// lawyers mentioned near them, returning firm name -> lawyer names. The
// issuer's own name is excluded from the firm candidates.
func ExtractLawyers(text, companyName string) map[string][]string {
	company := strings.ToLower(strings.TrimSpace(companyName))

	found := make(map[string]map[string]struct{})
	for _, loc := range firmNamePattern.FindAllStringIndex(text, -1) {
		firm := strings.TrimSpace(text[loc[0]:loc[1]])
		if company != "" && strings.ToLower(firm) == company {
			continue
		}

		from := loc[0] - counselWindowBack
		if from < 0 {
			from = 0
		}
		to := loc[1] + counselWindowBack
		if to > len(text) {
			to = len(text)
		}
		window := text[from:to]

		lawyers, ok := found[firm]
		if !ok {
			lawyers = make(map[string]struct{})
			found[firm] = lawyers
		}
		for _, p := range []*regexp.Regexp{signaturePattern, esqPattern, attnPattern} {
			for _, m := range p.FindAllStringSubmatch(window, -1) {
				lawyers[strings.TrimSpace(m[1])] = struct{}{}
			}
		}
	}

	out := make(map[string][]string, len(found))
	for firm, lawyers := range found {
		names := make([]string, 0, len(lawyers))
		for name := range lawyers {
			names = append(names, name)
		}
		out[firm] = names
	}
	return out
}
