package metavar

import "container/heap"

// freeSet is a cofinite set of non-negative integer ids: every id at
// or above next is implicitly free, plus whatever smaller ids have
// been explicitly released back into released. Allocate always hands
// out the least free id, in O(log n) where n is the number of
// currently-released ids (normally zero or close to it — ids are
// released only when a metavariable becomes dead, which is rare
// compared to allocation).
type freeSet struct {
	next     int
	released intHeap
}

func newFreeSet() *freeSet {
	return &freeSet{}
}

// Allocate returns the least free id and marks it used.
func (s *freeSet) Allocate() int {
	if len(s.released) > 0 {
		return heap.Pop(&s.released).(int)
	}
	id := s.next
	s.next++
	return id
}

// Release returns id to the free set, making it eligible for reuse by
// a later Allocate. Releasing an id that was never allocated, or
// releasing it twice, corrupts the set; callers (the Registry) must
// only release ids they are certain they previously allocated exactly
// once.
func (s *freeSet) Release(id int) {
	heap.Push(&s.released, id)
}

type intHeap []int

func (h intHeap) Len() int            { return len(h) }
func (h intHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *intHeap) Push(x any)         { *h = append(*h, x.(int)) }
func (h *intHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
