package pkg

import (
	"errors"
	"testing"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset int
		wantErr    error
	}{
		{"first page", 1, 10, 0, nil},
		{"third page", 3, 10, 20, nil},
		{"limit one", 5, 1, 4, nil},
		{"zero page", 0, 10, 0, ErrInvalidPage},
		{"negative page", -2, 10, 0, ErrInvalidPage},
		{"zero limit", 1, 0, 0, ErrInvalidLimit},
		{"negative limit", 1, -5, 0, ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, err := Window(tt.page, tt.limit)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Window(%d, %d) err = %v, want %v", tt.page, tt.limit, err, tt.wantErr)
			}
			if err == nil && offset != tt.wantOffset {
				t.Errorf("Window(%d, %d) = %d, want %d", tt.page, tt.limit, offset, tt.wantOffset)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		listLen  int
		page     int
		limit    int
		total    int64
		wantNext bool
		wantPrev bool
	}{
		{"single page", 3, 1, 10, 3, false, false},
		{"middle page", 10, 2, 10, 35, true, true},
		{"last page", 5, 4, 10, 35, false, true},
		{"past the end", 0, 3, 10, 5, false, true},
		{"empty set", 0, 1, 10, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := make([]int, tt.listLen)
			p := NewPagination(list, tt.page, tt.limit, tt.total)
			if p.HasNext != tt.wantNext || p.HasPrev != tt.wantPrev {
				t.Errorf("HasNext=%v HasPrev=%v, want %v/%v", p.HasNext, p.HasPrev, tt.wantNext, tt.wantPrev)
			}
			if p.Total != tt.total || p.Page != tt.page || p.Limit != tt.limit {
				t.Errorf("params not carried: %+v", p)
			}
		})
	}
}

func TestNewPaginationNilList(t *testing.T) {
	p := NewPagination[int](nil, 3, 10, 5)
	if p.List == nil || len(p.List) != 0 {
		t.Errorf("nil list should become empty slice, got %#v", p.List)
	}
}
