package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		perpage int
		want    int
	}{
		{"47 rows at 10 per page", 47, 10, 5},
		{"exact multiple", 50, 10, 5},
		{"one row over", 51, 10, 6},
		{"empty list still has one page", 0, 10, 1},
		{"zero perpage guarded", 47, 0, 1},
		{"single page", 3, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.perpage))
		})
	}
}
