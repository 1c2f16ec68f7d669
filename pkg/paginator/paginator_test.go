package paginator

import "testing"

func TestAdjust(t *testing.T) {
	tests := []struct {
		name      string
		in        PaginateQuery
		wantPage  int
		wantLimit int64
	}{
		{"defaults applied", PaginateQuery{}, DefaultPage, DefaultLimit},
		{"negative values", PaginateQuery{Page: -1, Limit: -5}, DefaultPage, DefaultLimit},
		{"limit capped", PaginateQuery{Page: 2, Limit: 500}, 2, MaxLimit},
		{"valid untouched", PaginateQuery{Page: 3, Limit: 50}, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in
			q.Adjust()
			if q.Page != tt.wantPage || q.Limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d", q.Page, q.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	q := PaginateQuery{Page: 3, Limit: 20}
	if got := q.Offset(); got != 40 {
		t.Errorf("expected offset 40, got %d", got)
	}
}

func TestTotalPages(t *testing.T) {
	p := Paginator{Total: 45, PerPage: 20}
	if got := p.TotalPages(); got != 3 {
		t.Errorf("expected 3 pages, got %d", got)
	}
	if (Paginator{}).TotalPages() != 0 {
		t.Error("empty paginator should have 0 pages")
	}
}

func TestHasNextPage(t *testing.T) {
	p := Paginator{Total: 45, PerPage: 20, CurrentPage: 2}
	if !p.HasNextPage() {
		t.Error("page 2 of 3 should have a next page")
	}
	p.CurrentPage = 3
	if p.HasNextPage() {
		t.Error("last page should not have a next page")
	}
}
