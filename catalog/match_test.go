/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package catalog

import "testing"

func TestMatchesProvince(t *testing.T) {
	tests := []struct {
		raw, candidate string
		want           bool
	}{
		{"Ankara", "Ankara", true},
		{"  ankara ", "ANKARA", true},
		{"Afyonkarahisar", "Afyon", true},
		{"Afyon", "Afyonkarahisar", true},
		{"Karahisar", "Afyonkarahisar", true},
		{"İzmit", "Kocaeli", true},
		{"Kocaeli", "Izmit", true},
		{"Adapazarı", "Sakarya", true},
		{"Sakarya", "Adapazari", true},
		{"İzmir", "Izmir", true},
		{"IZMIR", "İzmir", true},
		{"Şanlıurfa", "Sanliurfa", true},
		{"Istanbul Province", "İstanbul", true},
		{"Kahramanmaraş", "Maraş", true},
		{"Ankara", "Antalya", false},
		{"İzmir", "Kocaeli", false},
		{"İzmir", "İzmit", false},
		{"Van", "Edirne", false},
		{"", "Ankara", false},
		{"Ankara", "   ", false},
	}

	for _, tt := range tests {
		if got := MatchesProvince(tt.raw, tt.candidate); got != tt.want {
			t.Errorf("MatchesProvince(%q, %q) = %v, want %v", tt.raw, tt.candidate, got, tt.want)
		}
	}
}

func TestMatchesProvinceSymmetric(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	for _, a := range c.Provinces() {
		for _, b := range c.Provinces() {
			if MatchesProvince(a.Name, b.Name) != MatchesProvince(b.Name, a.Name) {
				t.Errorf("MatchesProvince not symmetric for %q and %q", a.Name, b.Name)
			}
		}
	}
}

func TestFold(t *testing.T) {
	tests := map[string]string{
		"İstanbul":  "istanbul",
		"ISPARTA":   "isparta",
		"Iğdır":     "igdir",
		"Çanakkale": "canakkale",
		" Muğla ":   "mugla",
		"Gümüşhane": "gumushane",
	}

	for in, want := range tests {
		if got := fold(in); got != want {
			t.Errorf("fold(%q) = %q, want %q", in, got, want)
		}
	}
}
