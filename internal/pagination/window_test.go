package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count    int
		expected int
	}{
		{0, 0},
		{1, 1},
		{20, 1},
		{21, 2},
		{400, 20},
		{72431, 3622},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TotalPages(tt.count), "count %d", tt.count)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 5))
	assert.Equal(t, 1, Clamp(3, 0))
	assert.Equal(t, 5, Clamp(9, 5))
	assert.Equal(t, 3, Clamp(3, 5))
}

func TestWindowFirstPageOfThree(t *testing.T) {
	items := Window(1, 3)

	assert.Equal(t, []int{1, 2, 3}, Pages(items))
	for _, item := range items {
		assert.False(t, item.Ellipsis)
	}
	assert.True(t, items[0].Active)
	assert.True(t, PrevDisabled(1))
	assert.False(t, NextDisabled(1, 3))
}

func TestWindowMiddlePage(t *testing.T) {
	lower, upper := Bounds(10, 20)
	assert.Equal(t, 6, lower)
	assert.Equal(t, 15, upper)

	items := Window(10, 20)

	require.Len(t, items, 14)
	assert.Equal(t, Item{Page: 1}, items[0])
	assert.True(t, items[1].Ellipsis)
	assert.Equal(t, 6, items[2].Page)
	assert.Equal(t, 15, items[11].Page)
	assert.True(t, items[12].Ellipsis)
	assert.Equal(t, Item{Page: 20}, items[13])
	assert.Equal(t, []int{1, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 20}, Pages(items))
}

func TestWindowNoEllipsisForAdjacentEdges(t *testing.T) {
	// lower bound 2: page 1 is adjacent, no gap marker
	items := Window(6, 12)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, Pages(items))
	for _, item := range items {
		assert.False(t, item.Ellipsis)
	}
}

func TestWindowLastPage(t *testing.T) {
	items := Window(20, 20)
	assert.Equal(t, []int{1, 16, 17, 18, 19, 20}, Pages(items))
	assert.True(t, items[1].Ellipsis)
	assert.True(t, NextDisabled(20, 20))
}

func TestWindowEmpty(t *testing.T) {
	assert.Nil(t, Window(1, 0))
	assert.True(t, PrevDisabled(1))
	assert.True(t, NextDisabled(1, 0))
}

func TestWindowIsStrictlyIncreasing(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for current := 1; current <= max(total, 1); current++ {
			pages := Pages(Window(current, total))
			for i := 1; i < len(pages); i++ {
				assert.Less(t, pages[i-1], pages[i], "current=%d total=%d", current, total)
			}
			if total > 0 {
				assert.Contains(t, pages, current)
				assert.LessOrEqual(t, len(pages), windowSize+2)
			}
		}
	}
}
