package hsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuckets_SevenOrderedBuckets(t *testing.T) {
	buckets := Buckets()
	require.Len(t, buckets, 7)

	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7-9"}, func() []string {
		ids := make([]string, 0, len(buckets))
		for _, b := range buckets {
			ids = append(ids, b.ID)
		}
		return ids
	}())

	// Les 9 niveaux sont couverts une seule fois
	seen := make(map[int]bool)
	for _, b := range buckets {
		for _, l := range b.Levels {
			assert.False(t, seen[l], "level %d appears twice", l)
			seen[l] = true
		}
	}
	assert.Len(t, seen, 9)
}

func TestParseBucket(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
		levels  []int
	}{
		{name: "single level", id: "3", levels: []int{3}},
		{name: "combined bucket", id: "7-9", levels: []int{7, 8, 9}},
		{name: "bare level 7 rejected", id: "7", wantErr: true},
		{name: "bare level 9 rejected", id: "9", wantErr: true},
		{name: "zero", id: "0", wantErr: true},
		{name: "out of range", id: "10", wantErr: true},
		{name: "garbage", id: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBucket(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, b.ID)
			assert.Equal(t, tt.levels, b.Levels)
		})
	}
}

func TestBucketForLevel(t *testing.T) {
	for level := 1; level <= 6; level++ {
		b, err := BucketForLevel(level)
		require.NoError(t, err)
		assert.Equal(t, []int{level}, b.Levels)
	}
	for level := 7; level <= 9; level++ {
		b, err := BucketForLevel(level)
		require.NoError(t, err)
		assert.Equal(t, CombinedBucketID, b.ID)
	}

	_, err := BucketForLevel(0)
	assert.Error(t, err)
	_, err = BucketForLevel(10)
	assert.Error(t, err)
}

func TestValidLevel(t *testing.T) {
	assert.False(t, ValidLevel(0))
	assert.True(t, ValidLevel(1))
	assert.True(t, ValidLevel(9))
	assert.False(t, ValidLevel(10))
}
