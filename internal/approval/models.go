package approval

import (
	"time"

	"txgate/internal/monitor"
	"txgate/internal/rules"
)

// Status is the lifecycle state of an approval request. All states other
// than pending are terminal; a request makes at most one terminal
// transition.
type Status string

const (
	StatusPending      Status = "pending"
	StatusApproved     Status = "approved"
	StatusAutoApproved Status = "auto_approved"
	StatusRejected     Status = "rejected"
	StatusExpired      Status = "expired"
)

func (s Status) Terminal() bool {
	return s != StatusPending
}

// Request tracks one transaction's path from detection to a terminal
// decision. Owned exclusively by the approval service.
type Request struct {
	ID         string
	Record     monitor.TransactionRecord
	Evaluation rules.Evaluation
	Status     Status
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ExpiresAt  time.Time
}

// Sent reports a successful broadcast of an approved transaction.
type Sent struct {
	Request Request
	Hash    string
}

// Failure reports a failed broadcast, decoupled from the approval decision
// which remains valid.
type Failure struct {
	Request Request
	Err     error
}
