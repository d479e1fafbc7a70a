package approval

import (
	"context"

	"txgate/internal/chain"
	"txgate/internal/monitor"
	"txgate/internal/rules"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o fake -fake-name Evaluator . Evaluator
type Evaluator interface {
	Evaluate(record monitor.TransactionRecord, ruleSetID string) rules.Evaluation
}

//counterfeiter:generate -o fake -fake-name Broadcaster . Broadcaster
type Broadcaster interface {
	Broadcast(ctx context.Context, submission chain.Submission) (string, error)
}
