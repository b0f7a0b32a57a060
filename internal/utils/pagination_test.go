package utils

import "testing"

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		hasNext    bool
	}{
		{"middle page", 2, 20, 45, 3, true},
		{"last page", 3, 20, 45, 3, false},
		{"exact multiple", 2, 10, 20, 2, false},
		{"single short page", 1, 20, 5, 1, false},
		{"empty result", 1, 20, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewPagination(tt.page, tt.limit, tt.total)
			if meta.TotalPages != tt.totalPages || meta.HasNext != tt.hasNext {
				t.Fatalf("meta = %+v, want pages %d next %v", meta, tt.totalPages, tt.hasNext)
			}
			if meta.Page != tt.page || meta.Limit != tt.limit || meta.Total != tt.total {
				t.Fatalf("meta echoes wrong inputs: %+v", meta)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1, 20); got != 0 {
		t.Fatalf("Offset(1, 20) = %d", got)
	}
	if got := Offset(3, 10); got != 20 {
		t.Fatalf("Offset(3, 10) = %d", got)
	}
}
