package monitor

import "sync"

// retryQueue is a bounded FIFO of transaction hashes awaiting processing.
// When full, the oldest entry is evicted to admit the newest; eviction is
// best-effort backpressure, not a failure. Attempt counts survive
// re-enqueueing so the retry bound holds per hash.
type retryQueue struct {
	mu       sync.Mutex
	hashes   []string
	attempts map[string]int
	capacity int
	evicted  uint64
}

func newRetryQueue(capacity int) *retryQueue {
	return &retryQueue{
		hashes:   make([]string, 0, capacity),
		attempts: make(map[string]int),
		capacity: capacity,
	}
}

// push appends a hash, evicting the oldest entry if the queue is full.
func (q *retryQueue) push(hash string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.hashes) >= q.capacity {
		oldest := q.hashes[0]
		q.hashes = q.hashes[1:]
		delete(q.attempts, oldest)
		q.evicted++
	}
	q.hashes = append(q.hashes, hash)
}

// pop removes and returns the oldest hash.
func (q *retryQueue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.hashes) == 0 {
		return "", false
	}
	hash := q.hashes[0]
	q.hashes = q.hashes[1:]
	return hash, true
}

// fail records a failed attempt and reports how many attempts the hash has
// accumulated.
func (q *retryQueue) fail(hash string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.attempts[hash]++
	return q.attempts[hash]
}

// forget clears the attempt counter after a hash is processed or dropped.
func (q *retryQueue) forget(hash string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.attempts, hash)
}

// drain discards all queued hashes without processing them.
func (q *retryQueue) drain() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.hashes = q.hashes[:0]
	q.attempts = make(map[string]int)
}

func (q *retryQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.hashes)
}

func (q *retryQueue) evictedCount() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.evicted
}
