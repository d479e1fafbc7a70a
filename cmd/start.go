package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"txgate/internal/approval"
	"txgate/internal/chain"
	"txgate/internal/config"
	"txgate/internal/metrics"
	"txgate/internal/monitor"
	"txgate/internal/rules"
	"txgate/pkg/log"
)

func Start() error {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	logger := log.NewZapLogger("txgate", zapcore.InfoLevel)

	cfg, err := config.NewApp()
	if err != nil {
		logger.Errorw("failed to create config", "error", err)
		return err
	}

	client, err := ethclient.Dial(cfg.NodeURL)
	if err != nil {
		logger.Errorw("node connection failed", "error", err)
		return err
	}

	registry := chain.NewRegistry()
	source := chain.NewNodeSource(logger, client)
	classifier := monitor.NewClassifier(logger, registry)

	mon := monitor.NewMonitor(logger, source, classifier, monitor.Config{
		PollInterval:     cfg.PollInterval,
		QueueCapacity:    cfg.QueueCapacity,
		MaxRetryAttempts: cfg.MaxRetryAttempts,
	})

	engine := rules.NewEngine(logger)
	if cfg.RuleFile != "" {
		spec, err := rules.LoadFile(cfg.RuleFile)
		if err != nil {
			logger.Errorw("failed to load rule file", "path", cfg.RuleFile, "error", err)
			return err
		}
		set, err := engine.Import(spec)
		if err != nil {
			logger.Errorw("failed to import rule set", "path", cfg.RuleFile, "error", err)
			return err
		}
		engine.SetActive(set.ID)
		logger.Infow("rule set loaded", "name", set.Name, "rules", len(set.Rules))
	}

	// The wallet collaborator supplies the signer; without one configured,
	// approved transactions surface a broadcast failure event instead of
	// being sent.
	broadcaster := chain.NewNodeBroadcaster(logger, client, nil, nil)

	service := approval.NewService(logger, engine, broadcaster, approval.Config{
		RequestTimeout: cfg.RequestTimeout,
		AutoApprove:    cfg.AutoApprove,
	})

	collector := metrics.NewCollector()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wirePipeline(ctx, mon, service, collector)

	if err := service.Start(ctx); err != nil {
		return err
	}
	if err := mon.Start(ctx, cfg.WatchedAddresses...); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.MetricsPort),
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe()
	}()
	logger.Infow("metrics endpoint up", "port", cfg.MetricsPort)

	return run(ctx, cancel, server, mon, service, errChan)
}

// wirePipeline connects the monitor's pending stream to the approval
// service and feeds the metrics collector from both components' topics. The
// components themselves never call each other.
func wirePipeline(ctx context.Context, mon *monitor.Monitor, service *approval.Service, collector *metrics.Collector) {
	pending, _ := mon.SubscribePending()
	confirmed, _ := mon.SubscribeConfirmed()
	requested, _ := service.SubscribeRequested()
	approved, _ := service.SubscribeApproved()
	autoApproved, _ := service.SubscribeAutoApproved()
	rejected, _ := service.SubscribeRejected()
	expired, _ := service.SubscribeExpired()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case record, ok := <-pending:
				if !ok {
					return
				}
				collector.ObserveTransaction(string(record.Kind))
				if _, err := service.RequestApproval(ctx, record); err != nil {
					// Broadcast failures are already reported on the
					// failed topic; nothing more to do here.
					continue
				}
			}
		}
	}()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-confirmed:
				if !ok {
					return
				}
				collector.ObserveConfirmation()
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collector.SyncRetryDrops(mon.DroppedCount())
				collector.SyncQueueEvictions(mon.EvictedCount())
				collector.SyncEventDrops(mon.EventDropCount())
				collector.SetQueueDepth(mon.QueueDepth())
				collector.SetPendingRequests(len(service.Pending()))
			case request, ok := <-requested:
				if !ok {
					return
				}
				collector.ObserveEvaluation(request.Evaluation.Duration)
			case request, ok := <-autoApproved:
				if !ok {
					return
				}
				collector.ObserveEvaluation(request.Evaluation.Duration)
				collector.ObserveOutcome(string(request.Status))
			case request, ok := <-approved:
				if !ok {
					return
				}
				collector.ObserveOutcome(string(request.Status))
			case request, ok := <-rejected:
				if !ok {
					return
				}
				collector.ObserveOutcome(string(request.Status))
			case request, ok := <-expired:
				if !ok {
					return
				}
				collector.ObserveOutcome(string(request.Status))
			}
		}
	}()
}

func run(ctx context.Context, cancel context.CancelFunc, server *http.Server, mon *monitor.Monitor, service *approval.Service, errChan <-chan error) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var err error
	select {
	case <-sig:
	case err = <-errChan:
	}

	cancel()
	mon.Stop()
	service.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if sdErr := server.Shutdown(shutdownCtx); sdErr != nil && err == nil {
		return fmt.Errorf("server shutdown: %w", sdErr)
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
