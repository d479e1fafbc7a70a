package monitor

import (
	"strings"

	"go.uber.org/zap"
)

// Classifier assigns a semantic kind to an observed transaction from its
// payload and recipient. Classification is best-effort: decode failures
// degrade to contract_interaction and never abort processing.
type Classifier struct {
	logs     *zap.SugaredLogger
	registry ABIRegistry
}

func NewClassifier(logger *zap.SugaredLogger, registry ABIRegistry) *Classifier {
	return &Classifier{
		logs:     logger,
		registry: registry,
	}
}

// Classify sets the record's kind and, when the recipient's interface is
// registered and the payload decodes, its decoded call.
func (c *Classifier) Classify(record *TransactionRecord) Kind {
	if len(record.Payload) == 0 {
		record.Kind = KindTransfer
		return record.Kind
	}

	if record.To != "" && c.registry.Known(record.To) {
		decoded, err := c.registry.Decode(record.To, record.Payload)
		if err != nil {
			c.logs.Debugw("payload decode failed",
				"hash", record.Hash,
				"to", record.To,
				"error", err)
			record.Kind = KindContractInteraction
			return record.Kind
		}
		record.Decoded = decoded
		record.Kind = kindFromMethod(decoded.Method)
		return record.Kind
	}

	record.Kind = KindContractInteraction
	return record.Kind
}

// kindFromMethod maps a decoded method name to a kind with substring
// heuristics. Unstake is checked before stake so "unstake" never reads as a
// staking call.
func kindFromMethod(method string) Kind {
	name := strings.ToLower(method)

	switch {
	case strings.Contains(name, "swap"):
		return KindSwap
	case strings.Contains(name, "transfer"):
		return KindTransfer
	case strings.Contains(name, "approve"):
		return KindApproval
	case strings.Contains(name, "mint"):
		return KindMint
	case strings.Contains(name, "burn"):
		return KindBurn
	case strings.Contains(name, "unstake"), strings.Contains(name, "withdraw"):
		return KindUnstake
	case strings.Contains(name, "stake"):
		return KindStake
	case strings.Contains(name, "claim"), strings.Contains(name, "reward"):
		return KindClaim
	default:
		return KindContractInteraction
	}
}
