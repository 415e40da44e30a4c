package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func generateRandomInteger(min int, max int) int {
	return min + rand.Intn(max-min)
}

func TestPriorityQueue(t *testing.T) {
	pq := NewMinHeap[int32]()
	if pq == nil {
		t.Errorf("PriorityQueue is nil")
	}

	for i := 0; i < 10000; i++ {
		item := PriorityQueueNode[int32]{Rank: float64(generateRandomInteger(1, 10000)), Item: int32(i)}
		pq.Insert(item)

		if (i+1)%100 == 0 {
			item.Rank = float64(generateRandomInteger(0, int(item.Rank)))
			err := pq.DecreaseKey(item)
			if err != nil {
				t.Errorf("Error decrease key")
			}
		}
	}

	prevItem, err := pq.ExtractMin()
	if err != nil {
		t.Errorf("Error extract min")
	}
	for i := 1; i < 10000; i++ {
		item, err := pq.ExtractMin()
		if err != nil {
			t.Errorf("Error extract min")
		}

		if prevItem.Rank > item.Rank {
			t.Errorf("PriorityQueue is not sorted")
		}
		prevItem = item
	}

	_, err = pq.ExtractMin()
	assert.ErrorIs(t, err, ErrEmptyHeap)
}

func TestPriorityQueueTieBreak(t *testing.T) {
	pq := NewMinHeapWithTieBreak(func(a, b DirectedRoad) bool {
		return a.Less(b)
	})

	pq.Insert(PriorityQueueNode[DirectedRoad]{Rank: 5, Item: NewDirectedRoad(7, BACKWARD)})
	pq.Insert(PriorityQueueNode[DirectedRoad]{Rank: 5, Item: NewDirectedRoad(3, BACKWARD)})
	pq.Insert(PriorityQueueNode[DirectedRoad]{Rank: 5, Item: NewDirectedRoad(3, FORWARD)})
	pq.Insert(PriorityQueueNode[DirectedRoad]{Rank: 1, Item: NewDirectedRoad(9, FORWARD)})

	expected := []DirectedRoad{
		NewDirectedRoad(9, FORWARD),
		NewDirectedRoad(3, FORWARD),
		NewDirectedRoad(3, BACKWARD),
		NewDirectedRoad(7, BACKWARD),
	}
	for _, want := range expected {
		got, err := pq.ExtractMin()
		assert.NoError(t, err)
		assert.Equal(t, want, got.Item)
	}
}

func TestPriorityQueueDecreaseKeyMissing(t *testing.T) {
	pq := NewMinHeap[int32]()
	pq.Insert(PriorityQueueNode[int32]{Rank: 10, Item: 1})

	assert.ErrorIs(t, pq.DecreaseKey(PriorityQueueNode[int32]{Rank: 1, Item: 2}), ErrItemNotFound)

	assert.NoError(t, pq.DecreaseKey(PriorityQueueNode[int32]{Rank: 2, Item: 1}))
	min, err := pq.GetMin()
	assert.NoError(t, err)
	assert.Equal(t, 2.0, min.Rank)
}
