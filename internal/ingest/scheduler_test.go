package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	scheduler := NewRoundRobinScheduler()

	tests := []struct {
		name    string
		lines   int
		workers int
		want    [][]int
	}{
		{"even split", 4, 2, [][]int{{0, 2}, {1, 3}}},
		{"uneven split", 5, 3, [][]int{{0, 3}, {1, 4}, {2}}},
		{"more workers than lines", 2, 8, [][]int{{0}, {1}}},
		{"zero workers means one", 3, 0, [][]int{{0, 1, 2}}},
		{"no lines", 0, 4, [][]int{nil, nil, nil, nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scheduler.Schedule(tt.lines, tt.workers))
		})
	}
}

func TestRoundRobinScheduler_CoversEveryLineOnce(t *testing.T) {
	seen := make(map[int]int)
	for _, batch := range NewRoundRobinScheduler().Schedule(101, 7) {
		for _, i := range batch {
			seen[i]++
		}
	}
	assert.Len(t, seen, 101)
	for i, n := range seen {
		assert.Equal(t, 1, n, "line %d", i)
	}
}
