package handlers

import "testing"

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name      string
		page      int
		size      int
		wantFirst int
		wantLen   int
		wantPage  int
	}{
		{"first page", 1, 10, 0, 10, 1},
		{"last partial page", 3, 10, 20, 3, 3},
		{"page past the end clamps", 9, 10, 20, 3, 3},
		{"page below one clamps", 0, 5, 0, 5, 1},
		{"large size", 1, 25, 0, 23, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, p := paginate(items, tt.page, tt.size)
			if len(got) != tt.wantLen || got[0] != tt.wantFirst || p.Page != tt.wantPage {
				t.Errorf("got %d items from %d on page %d", len(got), got[0], p.Page)
			}
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	got, p := paginate([]string(nil), 2, 10)
	if len(got) != 0 || p.Page != 1 || p.Pages != 1 || p.From() != 0 || p.To() != 0 {
		t.Errorf("empty pager = %+v", p)
	}
}

func TestParsePaging(t *testing.T) {
	tests := []struct {
		page, size         string
		wantPage, wantSize int
	}{
		{"", "", 1, 10},
		{"3", "25", 3, 25},
		{"-2", "7", 1, 10},
		{"x", "5", 1, 5},
	}
	for _, tt := range tests {
		page, size := parsePaging(tt.page, tt.size)
		if page != tt.wantPage || size != tt.wantSize {
			t.Errorf("parsePaging(%q, %q) = %d, %d", tt.page, tt.size, page, size)
		}
	}
}
