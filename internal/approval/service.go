package approval

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"txgate/internal/chain"
	"txgate/internal/monitor"
	"txgate/pkg/pubsub"
)

type Config struct {
	RequestTimeout time.Duration
	AutoApprove    bool
	PurgeAge       time.Duration
}

func (c Config) withDefaults() Config {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 5 * time.Minute
	}
	if c.PurgeAge <= 0 {
		c.PurgeAge = 24 * time.Hour
	}
	return c
}

// Service owns the per-transaction approval lifecycle. Every state
// transition (manual decision, expiry, purge) goes through the same lock,
// so the "is it still pending" check and the write are atomic and a request
// makes at most one terminal transition. Execution dispatch happens outside
// the lock, after the decision is already observable.
type Service struct {
	logs        *zap.SugaredLogger
	evaluator   Evaluator
	broadcaster Broadcaster

	mu          sync.Mutex
	requests    map[string]*Request
	autoApprove bool
	timeout     time.Duration
	purgeAge    time.Duration

	sched   *expiryScheduler
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	requested    *pubsub.Broker[Request]
	approved     *pubsub.Broker[Request]
	autoApproved *pubsub.Broker[Request]
	rejected     *pubsub.Broker[Request]
	expired      *pubsub.Broker[Request]
	sent         *pubsub.Broker[Sent]
	failed       *pubsub.Broker[Failure]

	now func() time.Time
}

func NewService(logger *zap.SugaredLogger, evaluator Evaluator, broadcaster Broadcaster, cfg Config) *Service {
	cfg = cfg.withDefaults()
	return &Service{
		logs:         logger,
		evaluator:    evaluator,
		broadcaster:  broadcaster,
		requests:     make(map[string]*Request),
		autoApprove:  cfg.AutoApprove,
		timeout:      cfg.RequestTimeout,
		purgeAge:     cfg.PurgeAge,
		sched:        newExpiryScheduler(),
		requested:    pubsub.NewBroker[Request](),
		approved:     pubsub.NewBroker[Request](),
		autoApproved: pubsub.NewBroker[Request](),
		rejected:     pubsub.NewBroker[Request](),
		expired:      pubsub.NewBroker[Request](),
		sent:         pubsub.NewBroker[Sent](),
		failed:       pubsub.NewBroker[Failure](),
		now:          time.Now,
	}
}

func (s *Service) SubscribeRequested() (<-chan Request, func())    { return s.requested.Subscribe() }
func (s *Service) SubscribeApproved() (<-chan Request, func())     { return s.approved.Subscribe() }
func (s *Service) SubscribeAutoApproved() (<-chan Request, func()) { return s.autoApproved.Subscribe() }
func (s *Service) SubscribeRejected() (<-chan Request, func())     { return s.rejected.Subscribe() }
func (s *Service) SubscribeExpired() (<-chan Request, func())      { return s.expired.Subscribe() }
func (s *Service) SubscribeSent() (<-chan Sent, func())            { return s.sent.Subscribe() }
func (s *Service) SubscribeFailed() (<-chan Failure, func())       { return s.failed.Subscribe() }

// Start runs the expiry loop. Idempotent.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.expiryLoop(runCtx)
	return nil
}

// Stop cancels the expiry loop and drops all queued expiries so no timers
// fire after shutdown. Safe to call repeatedly.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.sched.clear()

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// RequestApproval evaluates the record and opens a request. With
// auto-approve enabled and an approving evaluation the request is created
// directly in auto_approved and executed before returning; any broadcast
// error is returned alongside the request, the decision stands either way.
func (s *Service) RequestApproval(ctx context.Context, record monitor.TransactionRecord) (Request, error) {
	evaluation := s.evaluator.Evaluate(record, "")

	s.mu.Lock()
	now := s.now()
	request := &Request{
		ID:         uuid.NewString(),
		Record:     record,
		Evaluation: evaluation,
		CreatedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(s.timeout),
	}

	if s.autoApprove && evaluation.Approved {
		request.Status = StatusAutoApproved
		s.requests[request.ID] = request
		copied := *request
		s.mu.Unlock()

		s.logs.Infow("transaction auto-approved",
			"request", copied.ID,
			"hash", record.Hash)
		s.autoApproved.Publish(copied)
		return copied, s.execute(ctx, copied)
	}

	request.Status = StatusPending
	s.requests[request.ID] = request
	copied := *request
	s.mu.Unlock()

	s.sched.schedule(copied.ID, copied.ExpiresAt)
	s.logs.Infow("approval requested",
		"request", copied.ID,
		"hash", record.Hash,
		"approvedByRules", evaluation.Approved,
		"expiresAt", copied.ExpiresAt)
	s.requested.Publish(copied)
	return copied, nil
}

// Approve confirms a pending request. The returned bool reports whether the
// decision was applied; a broadcast failure is returned separately and does
// not revert the approval.
func (s *Service) Approve(ctx context.Context, requestID, comment string) (bool, error) {
	copied, ok := s.transition(requestID, StatusApproved, comment)
	if !ok {
		return false, nil
	}

	s.logs.Infow("transaction approved", "request", requestID, "comment", comment)
	s.approved.Publish(copied)
	return true, s.execute(ctx, copied)
}

// Reject declines a pending request. No execution occurs.
func (s *Service) Reject(requestID, comment string) bool {
	copied, ok := s.transition(requestID, StatusRejected, comment)
	if !ok {
		return false
	}

	s.logs.Infow("transaction rejected", "request", requestID, "comment", comment)
	s.rejected.Publish(copied)
	return true
}

// SetAutoApprove takes effect for requests created after the call.
func (s *Service) SetAutoApprove(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoApprove = enabled
}

// SetRequestTimeout takes effect for requests created after the call;
// in-flight requests keep their existing deadline.
func (s *Service) SetRequestTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeout = timeout
}

// Request returns a copy of the request with the given id.
func (s *Service) Request(requestID string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[requestID]
	if !ok {
		return Request{}, false
	}
	return *request, true
}

// Requests returns copies of all requests.
func (s *Service) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, 0, len(s.requests))
	for _, request := range s.requests {
		out = append(out, *request)
	}
	return out
}

// Pending returns the requests still awaiting a decision.
func (s *Service) Pending() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Request
	for _, request := range s.requests {
		if request.Status == StatusPending {
			out = append(out, *request)
		}
	}
	return out
}

// History returns terminal requests ordered by most recent update. A limit
// of zero or less returns all of them.
func (s *Service) History(limit int) []Request {
	s.mu.Lock()
	var out []Request
	for _, request := range s.requests {
		if request.Status.Terminal() {
			out = append(out, *request)
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Purge removes terminal requests whose last update is older than the given
// age, or the configured default when age is zero or less. It returns how
// many were removed.
func (s *Service) Purge(age time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if age <= 0 {
		age = s.purgeAge
	}
	cutoff := s.now().Add(-age)

	removed := 0
	for id, request := range s.requests {
		if request.Status.Terminal() && request.UpdatedAt.Before(cutoff) {
			delete(s.requests, id)
			removed++
		}
	}
	if removed > 0 {
		s.logs.Infow("purged terminal approval requests", "count", removed)
	}
	return removed
}

// transition applies a terminal status to a request that is still pending.
// The check and the write share the lock, so a manual decision racing the
// expiry timer yields exactly one terminal transition.
func (s *Service) transition(requestID string, status Status, comment string) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[requestID]
	if !ok || request.Status != StatusPending {
		return Request{}, false
	}
	request.Status = status
	request.Comment = comment
	request.UpdatedAt = s.now()
	return *request, true
}

// execute builds a minimal transaction from the stored record and submits it
// through the wallet collaborator. Failure is reported on the failed topic
// and returned; the approval decision is unaffected.
func (s *Service) execute(ctx context.Context, request Request) error {
	submission := chain.Submission{
		To:       request.Record.To,
		Value:    request.Record.Value,
		Payload:  request.Record.Payload,
		GasLimit: request.Record.GasLimit,
		Nonce:    request.Record.Nonce,
	}

	hash, err := s.broadcaster.Broadcast(ctx, submission)
	if err != nil {
		s.logs.Errorw("transaction broadcast failed",
			"request", request.ID,
			"error", err)
		s.failed.Publish(Failure{Request: request, Err: err})
		return err
	}

	s.logs.Infow("transaction sent", "request", request.ID, "hash", hash)
	s.sent.Publish(Sent{Request: request, Hash: hash})
	return nil
}

func (s *Service) expiryLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		var timerC <-chan time.Time
		var timer *time.Timer
		if next, ok := s.sched.next(); ok {
			wait := time.Until(next)
			if wait < 0 {
				wait = 0
			}
			timer = time.NewTimer(wait)
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-s.sched.wake:
			// Re-arm against the possibly nearer deadline.
		case <-timerC:
			for _, id := range s.sched.due(s.now()) {
				s.expire(id)
			}
		}
		if timer != nil {
			timer.Stop()
		}
	}
}

// expire is a no-op when the request already left pending: the timer lost
// the race against a manual decision.
func (s *Service) expire(requestID string) {
	copied, ok := s.transition(requestID, StatusExpired, "")
	if !ok {
		return
	}

	s.logs.Infow("approval request expired", "request", requestID)
	s.expired.Publish(copied)
}
