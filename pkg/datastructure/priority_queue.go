package datastructure

import "errors"

var (
	ErrEmptyHeap    = errors.New("heap is empty")
	ErrItemNotFound = errors.New("item not found in heap")
)

type PriorityQueueNode[T comparable] struct {
	Rank float64
	Item T
}

// MinHeap binary heap priorityqueue. pos keeps the heap index of every item so DecreaseKey is O(logN).
type MinHeap[T comparable] struct {
	heap     []PriorityQueueNode[T]
	pos      map[T]int
	tieBreak func(a, b T) bool
}

func NewMinHeap[T comparable]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
		pos:  make(map[T]int),
	}
}

// NewMinHeapWithTieBreak orders items with equal rank by less, so extraction order is deterministic.
func NewMinHeapWithTieBreak[T comparable](less func(a, b T) bool) *MinHeap[T] {
	h := NewMinHeap[T]()
	h.tieBreak = less
	return h
}

func (h *MinHeap[T]) less(i, j int) bool {
	if h.heap[i].Rank != h.heap[j].Rank {
		return h.heap[i].Rank < h.heap[j].Rank
	}
	if h.tieBreak != nil {
		return h.tieBreak(h.heap[i].Item, h.heap[j].Item)
	}
	return false
}

// parent get index dari parent
func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

func (h *MinHeap[T]) leftChild(index int) int {
	return 2*index + 1
}

func (h *MinHeap[T]) rightChild(index int) int {
	return 2*index + 2
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i].Item] = i
	h.pos[h.heap[j].Item] = j
}

// heapifyUp swap with the parent while the parent is larger. O(logN) tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(index, h.parent(index)) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown swap with the smallest child while a child is smaller. O(logN).
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		smallest := index
		left := h.leftChild(index)
		right := h.rightChild(index)
		if left < len(h.heap) && h.less(left, smallest) {
			smallest = left
		}
		if right < len(h.heap) && h.less(right, smallest) {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

// Insert adds item to the heap. Inserting an item that is already queued updates its rank instead.
func (h *MinHeap[T]) Insert(item PriorityQueueNode[T]) {
	if idx, ok := h.pos[item.Item]; ok {
		old := h.heap[idx].Rank
		h.heap[idx].Rank = item.Rank
		if item.Rank < old {
			h.heapifyUp(idx)
		} else {
			h.heapifyDown(idx)
		}
		return
	}
	h.heap = append(h.heap, item)
	h.pos[item.Item] = len(h.heap) - 1
	h.heapifyUp(len(h.heap) - 1)
}

func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrEmptyHeap
	}
	return h.heap[0], nil
}

func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrEmptyHeap
	}
	root := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	delete(h.pos, root.Item)
	h.heapifyDown(0)
	return root, nil
}

// DecreaseKey lowers the rank of a queued item.
func (h *MinHeap[T]) DecreaseKey(item PriorityQueueNode[T]) error {
	idx, ok := h.pos[item.Item]
	if !ok {
		return ErrItemNotFound
	}
	if item.Rank > h.heap[idx].Rank {
		return nil
	}
	h.heap[idx].Rank = item.Rank
	h.heapifyUp(idx)
	return nil
}
