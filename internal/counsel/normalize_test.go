package counsel

import "testing"

func TestNormalizeFirm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Doe & Partners LLP", "doe & partners"},
		{"Doe & Partners L.L.P.", "doe & partners"},
		{"Smith Klein & Roe, P.C.", "smith klein & roe"},
		{"  Acme Legal LLC  ", "acme legal"},
		{"Doe & Partners", "doe & partners"},
		{"Wachtell, Lipton, Rosen & Katz", "wachtell, lipton, rosen & katz"},
		{"", ""},
		{"LLP", ""},
	}
	for _, tt := range tests {
		if got := NormalizeFirm(tt.in); got != tt.want {
			t.Errorf("NormalizeFirm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirmsMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Doe & Partners LLP", "Doe & Partners", true},
		{"doe & partners llp", "DOE & PARTNERS L.L.P.", true},
		{"Doe & Partners", "Doe & Partners International LLP", true},
		{"Doe & Partners International LLP", "Doe & Partners", true},
		{"Doe & Partners LLP", "Smith Klein & Roe LLP", false},
		{"", "Doe & Partners", false},
		{"Doe & Partners", "", false},
		{"LLP", "Doe & Partners LLP", false},
	}
	for _, tt := range tests {
		if got := FirmsMatch(tt.a, tt.b); got != tt.want {
			t.Errorf("FirmsMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
