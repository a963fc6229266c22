package counsel

import "strings"

// firmSuffixes are the legal-entity suffix tokens stripped during
// normalization.
var firmSuffixes = []string{"llp", "l.l.p.", "llc", "p.c.", "p.a."}

// NormalizeFirm canonicalizes a law-firm name for fuzzy comparison:
// lower-case, strip one trailing legal-entity suffix token, trim whitespace
// and trailing punctuation. Pure; empty input maps to empty output.
func NormalizeFirm(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range firmSuffixes {
		if strings.HasSuffix(n, suffix) {
			n = strings.TrimSuffix(n, suffix)
			break
		}
	}
	return strings.TrimRight(strings.TrimSpace(n), ",.")
}

// FirmsMatch applies the three-way fuzzy test between two firm names:
// equal after normalization, or either normalized name a substring of the
// other. The substring legs handle abbreviated versus expanded variants
// ("Doe & Partners" vs "Doe & Partners International"). Short generic
// names can false-positive ("Day" matches "Day & Zimmermann"); callers
// accept that as the cost of catching real abbreviations.
func FirmsMatch(a, b string) bool {
	na, nb := NormalizeFirm(a), NormalizeFirm(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}
