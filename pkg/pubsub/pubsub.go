package pubsub

import "sync"

const subscriberBuffer = 32

// Broker fans one typed event stream out to any number of subscribers.
// Publishing never blocks: a subscriber that has fallen behind by more than
// its channel buffer misses the event.
type Broker[T any] struct {
	mu      sync.Mutex
	subs    map[int]chan T
	nextID  int
	closed  bool
	dropped uint64
}

func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs: make(map[int]chan T),
	}
}

// Subscribe returns a receive channel and an unsubscribe function. The
// channel is closed when the subscription is cancelled or the broker closes.
func (b *Broker[T]) Subscribe() (<-chan T, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan T, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *Broker[T]) Publish(event T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.dropped++
		}
	}
}

// Dropped reports how many events were lost to full subscriber buffers.
func (b *Broker[T]) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Close drops all subscriptions and closes their channels. Subsequent
// publishes are no-ops.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
