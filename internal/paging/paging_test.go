package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Normalize(0, 0, 20)
	assert.Equal(t, Page{Number: 1, Limit: 20}, p)

	p = Normalize(-3, -1, 25)
	assert.Equal(t, Page{Number: 1, Limit: 25}, p)

	p = Normalize(4, 10, 20)
	assert.Equal(t, Page{Number: 4, Limit: 10}, p)
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Limit: 25}.Offset())
	assert.Equal(t, 50, Page{Number: 3, Limit: 25}.Offset())
}

func TestSlice_ConcatenationCoversEverything(t *testing.T) {
	items := make([]int, 103)
	for i := range items {
		items[i] = i
	}

	// La concaténation de toutes les pages redonne la liste, sans trou
	// ni doublon
	var rebuilt []int
	limit := 10
	for page := 1; page <= TotalPages(len(items), limit); page++ {
		rebuilt = append(rebuilt, Slice(items, Page{Number: page, Limit: limit})...)
	}
	assert.Equal(t, items, rebuilt)
}

func TestSlice_BeyondEndIsEmpty(t *testing.T) {
	items := []string{"a", "b", "c"}

	got := Slice(items, Page{Number: 5, Limit: 25})
	assert.Empty(t, got)

	// Dernière page partielle
	got = Slice(items, Page{Number: 2, Limit: 2})
	assert.Equal(t, []string{"c"}, got)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 25))
	assert.Equal(t, 1, TotalPages(1, 25))
	assert.Equal(t, 1, TotalPages(25, 25))
	assert.Equal(t, 2, TotalPages(26, 25))
	assert.Equal(t, 5, TotalPages(103, 25))
}
