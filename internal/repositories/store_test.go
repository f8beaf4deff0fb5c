package repositories

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name               string
		page, limit, total int64
		start              int64
		ok                 bool
	}{
		{"first page", 1, 10, 5, 0, true},
		{"middle page", 2, 2, 5, 2, true},
		{"last partial page", 3, 2, 5, 4, true},
		{"just past the end", 4, 2, 6, 0, false},
		{"empty collection", 1, 10, 0, 0, false},
		{"max page", math.MaxInt64, 100, 3, 0, false},
		{"max page limit one", math.MaxInt64, 1, 3, 0, false},
		{"max page max limit", math.MaxInt64, math.MaxInt64, 3, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, ok := PageOffset(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.start, start)
			}
		})
	}
}
