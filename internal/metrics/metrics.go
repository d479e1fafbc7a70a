package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates pipeline metrics on a private registry. It is fed by
// the composition layer from the components' event topics, so the core
// components stay free of metrics plumbing.
type Collector struct {
	registry *prometheus.Registry

	transactionsObserved  prometheus.Counter
	transactionsConfirmed prometheus.Counter
	transactionsByKind    *prometheus.CounterVec
	retryDrops            prometheus.Counter
	queueEvictions        prometheus.Counter
	eventDrops            prometheus.Counter
	approvalOutcomes      *prometheus.CounterVec
	evaluationDuration    prometheus.Histogram
	pendingRequests       prometheus.Gauge
	queueDepth            prometheus.Gauge

	mu             sync.Mutex
	lastRetryDrops uint64
	lastEvictions  uint64
	lastEventDrops uint64
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		transactionsObserved: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "txgate_transactions_observed_total",
			Help: "Transactions observed and classified by the monitor",
		}),
		transactionsConfirmed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "txgate_transactions_confirmed_total",
			Help: "Transactions seen included in a block",
		}),
		transactionsByKind: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "txgate_transactions_by_kind_total",
			Help: "Observed transactions by classified kind",
		}, []string{"kind"}),
		retryDrops: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "txgate_retry_drops_total",
			Help: "Hashes dropped after exhausting processing retries",
		}),
		queueEvictions: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "txgate_queue_evictions_total",
			Help: "Hashes evicted from a full retry queue",
		}),
		eventDrops: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "txgate_event_drops_total",
			Help: "Events lost to full subscriber buffers",
		}),
		approvalOutcomes: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "txgate_approval_outcomes_total",
			Help: "Approval requests by terminal status",
		}, []string{"status"}),
		evaluationDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "txgate_rule_evaluation_duration_seconds",
			Help:    "Time taken to evaluate a transaction against the active rule set",
			Buckets: prometheus.DefBuckets,
		}),
		pendingRequests: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "txgate_pending_requests",
			Help: "Approval requests awaiting a decision",
		}),
		queueDepth: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "txgate_retry_queue_depth",
			Help: "Hashes waiting in the monitor retry queue",
		}),
	}
}

func (c *Collector) ObserveTransaction(kind string) {
	c.transactionsObserved.Inc()
	c.transactionsByKind.WithLabelValues(kind).Inc()
}

func (c *Collector) ObserveConfirmation() {
	c.transactionsConfirmed.Inc()
}

func (c *Collector) ObserveEvaluation(duration time.Duration) {
	c.evaluationDuration.Observe(duration.Seconds())
}

func (c *Collector) ObserveOutcome(status string) {
	c.approvalOutcomes.WithLabelValues(status).Inc()
}

// SyncRetryDrops advances the counter to the monitor's running total.
func (c *Collector) SyncRetryDrops(total uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if total > c.lastRetryDrops {
		c.retryDrops.Add(float64(total - c.lastRetryDrops))
		c.lastRetryDrops = total
	}
}

// SyncQueueEvictions advances the counter to the monitor's running total.
func (c *Collector) SyncQueueEvictions(total uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if total > c.lastEvictions {
		c.queueEvictions.Add(float64(total - c.lastEvictions))
		c.lastEvictions = total
	}
}

// SyncEventDrops advances the counter to the components' running total.
func (c *Collector) SyncEventDrops(total uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if total > c.lastEventDrops {
		c.eventDrops.Add(float64(total - c.lastEventDrops))
		c.lastEventDrops = total
	}
}

func (c *Collector) SetPendingRequests(count int) {
	c.pendingRequests.Set(float64(count))
}

func (c *Collector) SetQueueDepth(depth int) {
	c.queueDepth.Set(float64(depth))
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
