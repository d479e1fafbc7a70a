package monitor

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"txgate/internal/chain"
	"txgate/pkg/pubsub"
)

const workerYield = 5 * time.Millisecond
const workerIdleDelay = 50 * time.Millisecond

type Config struct {
	PollInterval     time.Duration
	QueueCapacity    int
	MaxRetryAttempts int
	HistoryCap       int
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Second
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = 100
	}
	if c.MaxRetryAttempts <= 0 {
		c.MaxRetryAttempts = 3
	}
	if c.HistoryCap <= 0 {
		c.HistoryCap = 2048
	}
	return c
}

// Monitor turns the raw chain event stream into classified transaction
// records and publishes them on typed topics. Processing is best-effort: a
// hash that keeps failing is retried up to the configured bound and then
// dropped with a log entry only.
type Monitor struct {
	logs       *zap.SugaredLogger
	source     ChainSource
	classifier *Classifier
	cfg        Config

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	watched   map[string]struct{}
	records   map[string]*TransactionRecord
	order     []string
	lastBlock uint64
	cursorSet bool

	wg      sync.WaitGroup
	queue   *retryQueue
	dropped atomic.Uint64

	pending   *pubsub.Broker[TransactionRecord]
	confirmed *pubsub.Broker[TransactionRecord]
	state     *pubsub.Broker[State]

	now func() time.Time
}

func NewMonitor(logger *zap.SugaredLogger, source ChainSource, classifier *Classifier, cfg Config) *Monitor {
	cfg = cfg.withDefaults()
	return &Monitor{
		logs:       logger,
		source:     source,
		classifier: classifier,
		cfg:        cfg,
		watched:    make(map[string]struct{}),
		records:    make(map[string]*TransactionRecord),
		queue:      newRetryQueue(cfg.QueueCapacity),
		pending:    pubsub.NewBroker[TransactionRecord](),
		confirmed:  pubsub.NewBroker[TransactionRecord](),
		state:      pubsub.NewBroker[State](),
		now:        time.Now,
	}
}

// SubscribePending delivers each newly observed, classified record.
func (m *Monitor) SubscribePending() (<-chan TransactionRecord, func()) {
	return m.pending.Subscribe()
}

// SubscribeConfirmed delivers records once their hash appears in a processed
// block.
func (m *Monitor) SubscribeConfirmed() (<-chan TransactionRecord, func()) {
	return m.confirmed.Subscribe()
}

// SubscribeState delivers monitoring lifecycle transitions.
func (m *Monitor) SubscribeState() (<-chan State, func()) {
	return m.state.Subscribe()
}

// Start begins observation. It prefers a push subscription for new heads and
// falls back to polling the latest height. Calling Start while running is a
// no-op.
func (m *Monitor) Start(ctx context.Context, watchedAddresses ...string) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.running = true
	for _, addr := range watchedAddresses {
		m.watched[strings.ToLower(addr)] = struct{}{}
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.mu.Unlock()

	if latest, err := m.source.Latest(runCtx); err == nil {
		m.mu.Lock()
		m.lastBlock = latest
		m.cursorSet = true
		m.mu.Unlock()
	} else {
		// Leave the cursor unset; walkTo anchors it to the first notified
		// height instead of walking from genesis.
		m.logs.Errorw("failed to fetch latest block on start", "error", err)
	}

	heights, err := m.source.SubscribeHeads(runCtx)
	if err != nil {
		m.logs.Infow("head subscription unavailable, polling",
			"interval", m.cfg.PollInterval,
			"error", err)
		m.wg.Add(1)
		go m.pollLoop(runCtx)
	} else {
		m.wg.Add(1)
		go m.headLoop(runCtx, heights)
	}

	m.wg.Add(1)
	go m.worker(runCtx)

	m.state.Publish(StateStarted)
	m.logs.Infow("monitoring started", "watched", len(watchedAddresses))
	return nil
}

// Stop cancels the subscription or polling, drains the retry queue without
// processing it, and is safe to call repeatedly.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
	m.queue.drain()

	m.mu.Lock()
	m.running = false
	m.mu.Unlock()

	m.state.Publish(StateStopped)
	m.logs.Infow("monitoring stopped")
}

// Observe enqueues a transaction hash for processing.
func (m *Monitor) Observe(hash string) {
	m.queue.push(hash)
}

func (m *Monitor) AddWatchedAddress(address string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watched[strings.ToLower(address)] = struct{}{}
}

func (m *Monitor) RemoveWatchedAddress(address string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.watched, strings.ToLower(address))
}

// Record returns a copy of the record for the hash, if observed.
func (m *Monitor) Record(hash string) (TransactionRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[hash]
	if !ok {
		return TransactionRecord{}, false
	}
	return *rec, true
}

// Records returns copies of all retained records in observation order.
func (m *Monitor) Records() []TransactionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TransactionRecord, 0, len(m.order))
	for _, hash := range m.order {
		if rec, ok := m.records[hash]; ok {
			out = append(out, *rec)
		}
	}
	return out
}

// DroppedCount reports hashes abandoned after exhausting their retries.
func (m *Monitor) DroppedCount() uint64 {
	return m.dropped.Load()
}

// EvictedCount reports hashes evicted from a full retry queue.
func (m *Monitor) EvictedCount() uint64 {
	return m.queue.evictedCount()
}

// QueueDepth reports the number of hashes awaiting processing.
func (m *Monitor) QueueDepth() int {
	return m.queue.len()
}

// EventDropCount reports events lost to full subscriber buffers across the
// monitor's topics. A dropped pending event means that transaction never
// reached a downstream consumer.
func (m *Monitor) EventDropCount() uint64 {
	return m.pending.Dropped() + m.confirmed.Dropped() + m.state.Dropped()
}

func (m *Monitor) pollLoop(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			latest, err := m.source.Latest(ctx)
			if err != nil {
				m.logs.Errorw("failed to fetch latest block", "error", err)
				continue
			}
			m.walkTo(ctx, latest)
		}
	}
}

func (m *Monitor) headLoop(ctx context.Context, heights <-chan uint64) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case height, ok := <-heights:
			if !ok {
				// Subscription dropped; degrade to polling.
				m.wg.Add(1)
				go m.pollLoop(ctx)
				return
			}
			m.walkTo(ctx, height)
		}
	}
}

// walkTo processes every block between the last processed height and the
// given one. A failed block fetch leaves the cursor so the range is walked
// again on the next notification. An unset cursor anchors to the notified
// height, so observation starts there rather than at block 1.
func (m *Monitor) walkTo(ctx context.Context, height uint64) {
	m.mu.Lock()
	if !m.cursorSet {
		if height > 0 {
			m.lastBlock = height - 1
		}
		m.cursorSet = true
	}
	from := m.lastBlock + 1
	m.mu.Unlock()

	for number := from; number <= height; number++ {
		block, err := m.source.BlockByNumber(ctx, number)
		if err != nil {
			m.logs.Errorw("failed to fetch block", "number", number, "error", err)
			return
		}
		m.handleBlock(block)

		m.mu.Lock()
		m.lastBlock = number
		m.mu.Unlock()
	}
}

// handleBlock confirms known pending records found in the block and ingests
// relevant transactions seen for the first time.
func (m *Monitor) handleBlock(block *chain.Block) {
	for _, obs := range block.Transactions {
		m.mu.Lock()
		rec, known := m.records[obs.Hash]
		relevant := m.relevantLocked(obs)
		m.mu.Unlock()

		if !known {
			if !relevant {
				continue
			}
			rec = m.ingest(obs)
		}
		m.confirm(rec.Hash)
	}
}

func (m *Monitor) worker(ctx context.Context) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		hash, ok := m.queue.pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(workerIdleDelay):
			}
			continue
		}

		if err := m.process(ctx, hash); err != nil {
			attempts := m.queue.fail(hash)
			if attempts >= m.cfg.MaxRetryAttempts {
				m.queue.forget(hash)
				m.dropped.Add(1)
				m.logs.Errorw("dropping transaction after retries",
					"hash", hash,
					"attempts", attempts,
					"error", err)
			} else {
				m.queue.push(hash)
			}
		} else {
			m.queue.forget(hash)
		}

		// Yield so the worker never starves other work.
		time.Sleep(workerYield)
	}
}

func (m *Monitor) process(ctx context.Context, hash string) error {
	m.mu.Lock()
	_, known := m.records[hash]
	m.mu.Unlock()
	if known {
		return nil
	}

	obs, _, err := m.source.TransactionByHash(ctx, hash)
	if err != nil {
		return err
	}

	m.mu.Lock()
	relevant := m.relevantLocked(obs)
	m.mu.Unlock()
	if !relevant {
		return nil
	}

	m.ingest(obs)
	return nil
}

// ingest creates, classifies, stores and publishes a new pending record.
func (m *Monitor) ingest(obs chain.Observation) *TransactionRecord {
	record := &TransactionRecord{
		Hash:       obs.Hash,
		From:       obs.From,
		To:         obs.To,
		Value:      obs.Value,
		Payload:    obs.Payload,
		GasPrice:   obs.GasPrice,
		GasLimit:   obs.GasLimit,
		Nonce:      obs.Nonce,
		ChainID:    obs.ChainID,
		Status:     StatusPending,
		ObservedAt: m.now(),
	}
	m.classifier.Classify(record)

	m.mu.Lock()
	if existing, ok := m.records[record.Hash]; ok {
		m.mu.Unlock()
		return existing
	}
	m.records[record.Hash] = record
	m.order = append(m.order, record.Hash)
	for len(m.order) > m.cfg.HistoryCap {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.records, oldest)
	}
	m.mu.Unlock()

	m.logs.Infow("transaction observed",
		"hash", record.Hash,
		"kind", record.Kind,
		"from", record.From,
		"to", record.To)
	m.pending.Publish(*record)
	return record
}

func (m *Monitor) confirm(hash string) {
	m.mu.Lock()
	rec, ok := m.records[hash]
	if !ok || rec.Status != StatusPending {
		m.mu.Unlock()
		return
	}
	rec.Status = StatusConfirmed
	copied := *rec
	m.mu.Unlock()

	m.logs.Infow("transaction confirmed", "hash", hash)
	m.confirmed.Publish(copied)
}

func (m *Monitor) relevantLocked(obs chain.Observation) bool {
	if len(m.watched) == 0 {
		return true
	}
	if _, ok := m.watched[strings.ToLower(obs.From)]; ok {
		return true
	}
	if _, ok := m.watched[strings.ToLower(obs.To)]; ok {
		return true
	}
	return false
}
