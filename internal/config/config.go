package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var errEnvVarNotFound error = errors.New("environment variable not found")

const (
	ethNodeEnvKey        = "ETH_NODE_URL"
	metricsPortEnvKey    = "METRICS_PORT"
	pollIntervalEnvKey   = "POLL_INTERVAL"
	queueCapacityEnvKey  = "QUEUE_CAPACITY"
	maxRetriesEnvKey     = "MAX_RETRY_ATTEMPTS"
	requestTimeoutEnvKey = "REQUEST_TIMEOUT"
	autoApproveEnvKey    = "AUTO_APPROVE"
	ruleFileEnvKey       = "RULE_FILE"
	watchedEnvKey        = "WATCHED_ADDRESSES"
)

type App struct {
	NodeURL          string
	MetricsPort      string
	PollInterval     time.Duration
	QueueCapacity    int
	MaxRetryAttempts int
	RequestTimeout   time.Duration
	AutoApprove      bool
	RuleFile         string
	WatchedAddresses []string
}

func NewApp() (App, error) {
	nodeURL, ok := os.LookupEnv(ethNodeEnvKey)
	if !ok {
		return App{}, fmt.Errorf("%w: %s", errEnvVarNotFound, ethNodeEnvKey)
	}

	pollInterval, err := durationOr(pollIntervalEnvKey, 5*time.Second)
	if err != nil {
		return App{}, err
	}
	queueCapacity, err := intOr(queueCapacityEnvKey, 100)
	if err != nil {
		return App{}, err
	}
	maxRetries, err := intOr(maxRetriesEnvKey, 3)
	if err != nil {
		return App{}, err
	}
	requestTimeout, err := durationOr(requestTimeoutEnvKey, 5*time.Minute)
	if err != nil {
		return App{}, err
	}
	autoApprove, err := boolOr(autoApproveEnvKey, false)
	if err != nil {
		return App{}, err
	}

	return App{
		NodeURL:          nodeURL,
		MetricsPort:      stringOr(metricsPortEnvKey, "9090"),
		PollInterval:     pollInterval,
		QueueCapacity:    queueCapacity,
		MaxRetryAttempts: maxRetries,
		RequestTimeout:   requestTimeout,
		AutoApprove:      autoApprove,
		RuleFile:         stringOr(ruleFileEnvKey, ""),
		WatchedAddresses: listOr(watchedEnvKey),
	}, nil
}

func stringOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func listOr(key string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func intOr(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, nil
}

func boolOr(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, nil
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, nil
}
