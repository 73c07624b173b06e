package listquery

import (
	"testing"
)

func TestMatches(t *testing.T) {
	cases := []struct {
		name   string
		term   string
		fields []string
		want   bool
	}{
		{"empty term matches", "", []string{"Riyadh"}, true},
		{"case-insensitive", "riyadh", []string{"Riyadh", "+966500000000"}, true},
		{"substring", "966", []string{"Riyadh", "+966500000000"}, true},
		{"no match", "jeddah", []string{"Riyadh", "+966500000000"}, false},
		{"whitespace trimmed", "  riyadh  ", []string{"Riyadh"}, true},
		{"no fields", "x", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(tc.term, tc.fields...); got != tc.want {
				t.Fatalf("Matches(%q, %v) = %v, want %v", tc.term, tc.fields, got, tc.want)
			}
		})
	}
}

func TestMatchesCategory(t *testing.T) {
	if !MatchesCategory("", "Delivered") {
		t.Fatal("empty filter must accept every value")
	}
	if !MatchesCategory("Delivered", "Delivered") {
		t.Fatal("equal values must match")
	}
	if MatchesCategory("Delivered", "Pending") {
		t.Fatal("different values must not match")
	}
	if MatchesCategory("delivered", "Delivered") {
		t.Fatal("categorical filter is exact, not case-folded")
	}
}
