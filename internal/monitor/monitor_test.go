package monitor_test

import (
	"context"
	"errors"
	"math/big"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"txgate/internal/chain"
	"txgate/internal/monitor"
	"txgate/internal/monitor/fake"
)

var _ = Describe("Monitor", func() {
	var (
		source   *fake.ChainSource
		registry *fake.ABIRegistry
		mon      *monitor.Monitor
		ctx      context.Context
		cancel   context.CancelFunc
	)

	observation := func(hash, from, to string) chain.Observation {
		return chain.Observation{
			Hash:     hash,
			From:     from,
			To:       to,
			Value:    big.NewInt(1_000_000_000_000_000_000),
			GasPrice: big.NewInt(2_000_000_000),
			GasLimit: 21000,
			ChainID:  big.NewInt(1),
		}
	}

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		source = new(fake.ChainSource)
		// Head subscription unavailable by default so observation is driven
		// only by Observe calls; the poll interval keeps the fallback idle.
		source.SubscribeHeadsReturns(nil, errors.New("notifications not supported"))

		registry = new(fake.ABIRegistry)
		classifier := monitor.NewClassifier(zap.NewNop().Sugar(), registry)
		mon = monitor.NewMonitor(zap.NewNop().Sugar(), source, classifier, monitor.Config{
			PollInterval: time.Hour,
		})
	})

	AfterEach(func() {
		mon.Stop()
		cancel()
	})

	Describe("lifecycle", func() {
		It("publishes state transitions and is idempotent", func() {
			states, unsubscribe := mon.SubscribeState()
			defer unsubscribe()

			Expect(mon.Start(ctx)).To(Succeed())
			Expect(mon.Start(ctx)).To(Succeed())
			Expect(source.SubscribeHeadsCallCount()).To(Equal(1))

			Eventually(states).Should(Receive(Equal(monitor.StateStarted)))

			mon.Stop()
			mon.Stop()
			Eventually(states).Should(Receive(Equal(monitor.StateStopped)))
		})

		It("drains queued hashes on stop", func() {
			Expect(mon.Start(ctx)).To(Succeed())
			mon.Stop()

			mon.Observe("0x1")
			Expect(mon.QueueDepth()).To(Equal(1))

			Expect(mon.Start(ctx)).To(Succeed())
			mon.Stop()
			Expect(mon.QueueDepth()).To(Equal(0))
		})
	})

	Describe("observing transactions", func() {
		It("fetches, classifies and publishes an observed hash", func() {
			source.TransactionByHashReturns(observation("0xaaa", "0xf1", "0xf2"), true, nil)

			pending, unsubscribe := mon.SubscribePending()
			defer unsubscribe()

			Expect(mon.Start(ctx)).To(Succeed())
			mon.Observe("0xaaa")

			var record monitor.TransactionRecord
			Eventually(pending).Should(Receive(&record))
			Expect(record.Hash).To(Equal("0xaaa"))
			Expect(record.Kind).To(Equal(monitor.KindTransfer))
			Expect(record.Status).To(Equal(monitor.StatusPending))

			stored, ok := mon.Record("0xaaa")
			Expect(ok).To(BeTrue())
			Expect(stored.Status).To(Equal(monitor.StatusPending))
		})

		It("observes the same hash only once", func() {
			source.TransactionByHashReturns(observation("0xaaa", "0xf1", "0xf2"), true, nil)

			pending, unsubscribe := mon.SubscribePending()
			defer unsubscribe()

			Expect(mon.Start(ctx)).To(Succeed())
			mon.Observe("0xaaa")
			Eventually(pending).Should(Receive())

			mon.Observe("0xaaa")
			Consistently(pending, 200*time.Millisecond).ShouldNot(Receive())
			Expect(mon.Records()).To(HaveLen(1))
		})

		It("drops a hash after exhausting its retries", func() {
			source.TransactionByHashReturns(chain.Observation{}, false, errors.New("node unavailable"))

			Expect(mon.Start(ctx)).To(Succeed())
			mon.Observe("0xdead")

			Eventually(mon.DroppedCount).Should(Equal(uint64(1)))
			Consistently(mon.DroppedCount, 200*time.Millisecond).Should(Equal(uint64(1)))
			Expect(source.TransactionByHashCallCount()).To(Equal(3))

			_, ok := mon.Record("0xdead")
			Expect(ok).To(BeFalse())
		})

		It("evicts the oldest queued hash when the queue is full", func() {
			mon = monitor.NewMonitor(zap.NewNop().Sugar(), source,
				monitor.NewClassifier(zap.NewNop().Sugar(), registry),
				monitor.Config{PollInterval: time.Hour, QueueCapacity: 2})

			mon.Observe("0x1")
			mon.Observe("0x2")
			mon.Observe("0x3")

			Expect(mon.QueueDepth()).To(Equal(2))
			Expect(mon.EvictedCount()).To(Equal(uint64(1)))
		})

		It("processes queued hashes in order, skipping evicted ones", func() {
			mon = monitor.NewMonitor(zap.NewNop().Sugar(), source,
				monitor.NewClassifier(zap.NewNop().Sugar(), registry),
				monitor.Config{PollInterval: time.Hour, QueueCapacity: 2})
			source.TransactionByHashStub = func(_ context.Context, hash string) (chain.Observation, bool, error) {
				return observation(hash, "0xf1", "0xf2"), true, nil
			}

			mon.Observe("0x1")
			mon.Observe("0x2")
			mon.Observe("0x3")

			Expect(mon.Start(ctx)).To(Succeed())

			Eventually(func() int { return len(mon.Records()) }).Should(Equal(2))
			_, first := source.TransactionByHashArgsForCall(0)
			Expect(first).To(Equal("0x2"))
			_, second := source.TransactionByHashArgsForCall(1)
			Expect(second).To(Equal("0x3"))

			_, ok := mon.Record("0x1")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("watched addresses", func() {
		BeforeEach(func() {
			Expect(mon.Start(ctx, "0xWatchedSender")).To(Succeed())
		})

		It("ignores transactions that touch no watched address", func() {
			source.TransactionByHashReturns(observation("0xaaa", "0xother", "0xanother"), true, nil)

			mon.Observe("0xaaa")

			Consistently(func() bool {
				_, ok := mon.Record("0xaaa")
				return ok
			}, 200*time.Millisecond).Should(BeFalse())
		})

		It("matches watched addresses case-insensitively", func() {
			source.TransactionByHashReturns(observation("0xbbb", "0xWATCHEDSENDER", "0xf2"), true, nil)

			mon.Observe("0xbbb")

			Eventually(func() bool {
				_, ok := mon.Record("0xbbb")
				return ok
			}).Should(BeTrue())
		})

		It("admits all transactions once the watch list empties", func() {
			mon.RemoveWatchedAddress("0xWatchedSender")
			source.TransactionByHashReturns(observation("0xccc", "0xother", "0xanother"), true, nil)

			mon.Observe("0xccc")

			Eventually(func() bool {
				_, ok := mon.Record("0xccc")
				return ok
			}).Should(BeTrue())
		})
	})

	Describe("block processing", func() {
		var heights chan uint64

		BeforeEach(func() {
			heights = make(chan uint64)
			source.SubscribeHeadsReturns(heights, nil)
			source.LatestReturns(0, nil)
		})

		It("confirms a pending record found in a block", func() {
			obs := observation("0xaaa", "0xf1", "0xf2")
			source.TransactionByHashReturns(obs, true, nil)
			source.BlockByNumberReturns(&chain.Block{Number: 1, Transactions: []chain.Observation{obs}}, nil)

			pending, cancelPending := mon.SubscribePending()
			defer cancelPending()
			confirmed, cancelConfirmed := mon.SubscribeConfirmed()
			defer cancelConfirmed()

			Expect(mon.Start(ctx)).To(Succeed())
			mon.Observe("0xaaa")
			Eventually(pending).Should(Receive())

			heights <- 1

			var record monitor.TransactionRecord
			Eventually(confirmed).Should(Receive(&record))
			Expect(record.Hash).To(Equal("0xaaa"))
			Expect(record.Status).To(Equal(monitor.StatusConfirmed))
		})

		It("ingests and confirms a relevant transaction first seen in a block", func() {
			obs := observation("0xbbb", "0xf1", "0xf2")
			source.BlockByNumberReturns(&chain.Block{Number: 1, Transactions: []chain.Observation{obs}}, nil)

			pending, cancelPending := mon.SubscribePending()
			defer cancelPending()
			confirmed, cancelConfirmed := mon.SubscribeConfirmed()
			defer cancelConfirmed()

			Expect(mon.Start(ctx)).To(Succeed())
			heights <- 1

			Eventually(pending).Should(Receive())
			Eventually(confirmed).Should(Receive())
		})

		It("anchors the walk at the first notified height when the startup lookup failed", func() {
			source.LatestReturns(0, errors.New("node unavailable"))
			obs := observation("0xddd", "0xf1", "0xf2")
			source.BlockByNumberReturns(&chain.Block{Number: 1000, Transactions: []chain.Observation{obs}}, nil)

			confirmed, cancelConfirmed := mon.SubscribeConfirmed()
			defer cancelConfirmed()

			Expect(mon.Start(ctx)).To(Succeed())
			heights <- 1000

			Eventually(confirmed).Should(Receive())
			Expect(source.BlockByNumberCallCount()).To(Equal(1))
			_, number := source.BlockByNumberArgsForCall(0)
			Expect(number).To(Equal(uint64(1000)))
		})

		It("retries the whole range when a block fetch fails", func() {
			obs := observation("0xccc", "0xf1", "0xf2")
			source.BlockByNumberReturnsOnCall(0, nil, errors.New("block not ready"))
			source.BlockByNumberReturns(&chain.Block{Number: 1, Transactions: []chain.Observation{obs}}, nil)

			confirmed, cancelConfirmed := mon.SubscribeConfirmed()
			defer cancelConfirmed()

			Expect(mon.Start(ctx)).To(Succeed())
			heights <- 1
			heights <- 1

			Eventually(confirmed).Should(Receive())
			Expect(source.BlockByNumberCallCount()).To(Equal(2))
		})
	})
})
