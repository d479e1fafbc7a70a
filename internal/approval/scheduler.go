package approval

import (
	"container/heap"
	"sync"
	"time"
)

// expiryScheduler is a single time-ordered queue of (expiry, request id)
// pairs polled by one loop, instead of one runtime timer per outstanding
// request. Entries for requests that already left pending fire as no-ops.
type expiryScheduler struct {
	mu   sync.Mutex
	h    expiryHeap
	wake chan struct{}
}

type expiryEntry struct {
	at time.Time
	id string
}

func newExpiryScheduler() *expiryScheduler {
	return &expiryScheduler{
		wake: make(chan struct{}, 1),
	}
}

// schedule queues an expiry and wakes the loop so a nearer deadline is
// picked up immediately.
func (s *expiryScheduler) schedule(id string, at time.Time) {
	s.mu.Lock()
	heap.Push(&s.h, expiryEntry{at: at, id: id})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// next returns the earliest deadline, if any.
func (s *expiryScheduler) next() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.h) == 0 {
		return time.Time{}, false
	}
	return s.h[0].at, true
}

// due pops every entry whose deadline has passed.
func (s *expiryScheduler) due(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for len(s.h) > 0 && !s.h[0].at.After(now) {
		entry := heap.Pop(&s.h).(expiryEntry)
		ids = append(ids, entry.id)
	}
	return ids
}

// clear drops all queued expiries in one operation.
func (s *expiryScheduler) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.h = s.h[:0]
}

type expiryHeap []expiryEntry

func (h expiryHeap) Len() int           { return len(h) }
func (h expiryHeap) Less(i, j int) bool { return h[i].at.Before(h[j].at) }
func (h expiryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *expiryHeap) Push(x any)        { *h = append(*h, x.(expiryEntry)) }
func (h *expiryHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}
