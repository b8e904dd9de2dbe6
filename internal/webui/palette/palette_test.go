package palette

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantHex  string
		wantOK   bool
	}{
		{name: "known category", category: "technology", wantHex: "#1e40af", wantOK: true},
		{name: "case insensitive", category: "Technology", wantHex: "#1e40af", wantOK: true},
		{name: "unknown category", category: "cooking", wantOK: false},
		{name: "empty", category: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Lookup(tt.category)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.category, ok, tt.wantOK)
			}
			if ok && c.Hex != tt.wantHex {
				t.Errorf("Lookup(%q).Hex = %q, want %q", tt.category, c.Hex, tt.wantHex)
			}
		})
	}
}

func TestHexFallback(t *testing.T) {
	if got := Hex("nonexistent"); got != "#6b7280" {
		t.Errorf("Hex fallback = %q, want %q", got, "#6b7280")
	}
	if got := Hex("sports"); got != "#dc2626" {
		t.Errorf("Hex(sports) = %q, want %q", got, "#dc2626")
	}
}

func TestBadgeClassFallback(t *testing.T) {
	if got := BadgeClass("nonexistent"); got != "bg-gray-100 text-gray-800" {
		t.Errorf("BadgeClass fallback = %q", got)
	}
}

func TestAllIsCopy(t *testing.T) {
	a := All()
	a[0].Hex = "#000000"
	if Hex(a[0].ID) == "#000000" {
		t.Error("All() must return a copy, not the internal slice")
	}
}
