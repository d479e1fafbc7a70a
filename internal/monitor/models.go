package monitor

import (
	"math/big"
	"time"

	"txgate/internal/chain"
)

// Kind is the best-effort semantic classification of a transaction. It is
// assigned once when the record is first observed and never revised.
type Kind string

const (
	KindTransfer            Kind = "transfer"
	KindSwap                Kind = "swap"
	KindApproval            Kind = "approval"
	KindMint                Kind = "mint"
	KindBurn                Kind = "burn"
	KindStake               Kind = "stake"
	KindUnstake             Kind = "unstake"
	KindClaim               Kind = "claim"
	KindContractInteraction Kind = "contract_interaction"
	KindUnknown             Kind = "unknown"
)

// Status is the lifecycle state of an observed transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// State is published on the monitor's lifecycle topic.
type State string

const (
	StateStarted State = "started"
	StateStopped State = "stopped"
)

// TransactionRecord is one observed transaction with its classification.
// Records are owned and mutated only by the monitor.
type TransactionRecord struct {
	Hash       string
	From       string
	To         string // empty for contract creation
	Value      *big.Int
	Payload    []byte
	GasPrice   *big.Int
	GasLimit   uint64
	Nonce      uint64
	ChainID    *big.Int
	Kind       Kind
	Decoded    *chain.DecodedCall
	Status     Status
	ObservedAt time.Time
}
