package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestParseQueryParams(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{"defaults", "/api/articles", 1, 6, false},
		{"explicit page", "/api/articles?page=3", 3, 6, false},
		{"explicit limit", "/api/articles?limit=12", 1, 12, false},
		{"both", "/api/articles?page=2&limit=10", 2, 10, false},
		{"zero page", "/api/articles?page=0", 0, 0, true},
		{"negative page", "/api/articles?page=-1", 0, 0, true},
		{"non-numeric page", "/api/articles?page=abc", 0, 0, true},
		{"limit above max", "/api/articles?limit=100", 0, 0, true},
		{"zero limit", "/api/articles?limit=0", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			got, err := ParseQueryParams(r, cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d",
					got.Page, got.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestCalculateOffset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 6, 0},
		{2, 6, 6},
		{3, 6, 12},
		{5, 10, 40},
	}
	for _, tt := range tests {
		if got := CalculateOffset(tt.page, tt.limit); got != tt.want {
			t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 6, 1},
		{5, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{100, 6, 17},
	}
	for _, tt := range tests {
		if got := CalculateTotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := DefaultConfig()

	got := Params{}.WithDefaults(cfg)
	if got.Page != 1 || got.Limit != 6 {
		t.Errorf("zero params -> %+v", got)
	}

	got = Params{Page: 2, Limit: 500}.WithDefaults(cfg)
	if got.Limit != cfg.MaxLimit {
		t.Errorf("limit should be capped, got %d", got.Limit)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()

	if err := (Params{Page: 1, Limit: 6}).Validate(cfg); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
	if err := (Params{Page: 0, Limit: 6}).Validate(cfg); err == nil {
		t.Error("page 0 should be invalid")
	}
	if err := (Params{Page: 1, Limit: 51}).Validate(cfg); err == nil {
		t.Error("limit above max should be invalid")
	}
}
