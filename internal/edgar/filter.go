package edgar

import (
	"strings"

	"github.com/finlawtools/firmscan/pkg/models"
)

// importantForms are the form types where outside counsel is customarily
// named: registration statements, prospectuses, and the periodic reports
// that carry legal-matters sections.
var importantForms = map[string]bool{
	"S-1":     true,
	"S-3":     true,
	"S-4":     true,
	"S-11":    true,
	"F-1":     true,
	"F-3":     true,
	"10-K":    true,
	"10-Q":    true,
	"8-K":     true,
	"20-F":    true,
	"DEF 14A": true,
	"DEFM14A": true,
}

// FilterImportant returns the subset of records whose form type is relevant
// to counsel attribution. Amendments ("/A") and prospectus variants
// ("424B1".."424B5") count as their base form.
func FilterImportant(records []models.FilingRecord) []models.FilingRecord {
	var out []models.FilingRecord
	for _, r := range records {
		if isImportantForm(r.FilingType) {
			out = append(out, r)
		}
	}
	return out
}

func isImportantForm(form string) bool {
	f := strings.TrimSpace(strings.ToUpper(form))
	f = strings.TrimSuffix(f, "/A")
	if strings.HasPrefix(f, "424B") {
		return true
	}
	return importantForms[f]
}
