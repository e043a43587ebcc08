package recompose

import (
	"container/heap"
	"sync"

	"github.com/codeyousef/summon-sub017/compose"
)

// invalidationItem is one entry of the ancestor-first priority queue
// (spec §4.3 "scopes re-compose in ancestor-first order").
//
// Grounded on the teacher's pkg/core/update_queue.go
// (updatePriorityQueue/heap.Interface over *ComponentManager), adapted
// from component-priority ordering to pure ancestor-depth ordering —
// this module has no notion of update priority, only tree order.
type invalidationItem struct {
	scope *compose.Scope
	depth int
	index int
}

type invalidationHeap []*invalidationItem

func (h invalidationHeap) Len() int            { return len(h) }
func (h invalidationHeap) Less(i, j int) bool  { return h[i].depth < h[j].depth }
func (h invalidationHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *invalidationHeap) Push(x interface{}) {
	item := x.(*invalidationItem)
	item.index = len(*h)
	*h = append(*h, item)
}
func (h *invalidationHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// invalidationQueue deduplicates scopes (a scope invalidated twice
// before its tick only recomposes once) while preserving ancestor-first
// drain order.
type invalidationQueue struct {
	mu      sync.Mutex
	h       invalidationHeap
	present map[*compose.Scope]*invalidationItem
}

func newInvalidationQueue() *invalidationQueue {
	q := &invalidationQueue{present: make(map[*compose.Scope]*invalidationItem)}
	heap.Init(&q.h)
	return q
}

// enqueue adds scope if not already pending.
func (q *invalidationQueue) enqueue(scope *compose.Scope) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.present[scope]; ok {
		return
	}
	item := &invalidationItem{scope: scope, depth: scope.Depth()}
	q.present[scope] = item
	heap.Push(&q.h, item)
}

// dequeue pops the shallowest (most-ancestor) pending scope, or returns
// (nil, false) if the queue is empty.
func (q *invalidationQueue) dequeue() (*compose.Scope, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.h.Len() == 0 {
		return nil, false
	}
	item := heap.Pop(&q.h).(*invalidationItem)
	delete(q.present, item.scope)
	return item.scope, true
}

// len reports the number of distinct pending scopes.
func (q *invalidationQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.h.Len()
}
