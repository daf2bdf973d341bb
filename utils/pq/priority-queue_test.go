package pq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityQueue(t *testing.T) {
	q := Empty(func(a, b int) bool { return a < b })
	for _, x := range []int{5, 3, 8, 3, 1, 5} {
		q.Add(x)
	}
	assert.Equal(t, 4, q.Len(), "duplicates are only queued once")

	var order []int
	for !q.IsEmpty() {
		order = append(order, q.GetNext())
	}
	assert.Equal(t, []int{1, 3, 5, 8}, order)

	q.Add(3)
	assert.Equal(t, 3, q.GetNext(), "popped elements may be queued again")
}
