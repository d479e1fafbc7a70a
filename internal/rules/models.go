package rules

import (
	"time"

	"txgate/internal/monitor"
)

// ConditionKind selects which transaction attribute a condition inspects.
type ConditionKind string

const (
	KindTransactionKind    ConditionKind = "transaction_kind"
	KindTokenAddress       ConditionKind = "token_address"
	KindDestinationAddress ConditionKind = "destination_address"
	KindValueThreshold     ConditionKind = "value_threshold"
	KindGasThreshold       ConditionKind = "gas_threshold"
	KindCustomPredicate    ConditionKind = "custom_predicate"
)

// Operator is the comparison applied by a condition.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpIn          Operator = "in"
	OpNotIn       Operator = "not_in"
)

// Predicate is a caller-supplied check invoked for custom_predicate
// conditions. It is attached out-of-band and never serialized.
type Predicate func(record monitor.TransactionRecord) (bool, error)

type valueKind int

const (
	valueNone valueKind = iota
	valueString
	valueNumber
	valueList
	valuePredicate
)

// Value is the operator-appropriate comparison operand of a condition: a
// scalar, a list of scalars, or an opaque predicate.
type Value struct {
	kind valueKind
	str  string
	num  float64
	list []string
	pred Predicate
}

func StringValue(s string) Value {
	return Value{kind: valueString, str: s}
}

func NumberValue(n float64) Value {
	return Value{kind: valueNumber, num: n}
}

func ListValue(items ...string) Value {
	return Value{kind: valueList, list: items}
}

func PredicateValue(p Predicate) Value {
	return Value{kind: valuePredicate, pred: p}
}

// Scalar returns the string operand; a number is not a scalar here.
func (v Value) Scalar() (string, bool) {
	return v.str, v.kind == valueString
}

func (v Value) Number() (float64, bool) {
	return v.num, v.kind == valueNumber
}

// List returns the operand as a list; a scalar degrades to a one-element
// list so in/not_in accept either form.
func (v Value) List() ([]string, bool) {
	switch v.kind {
	case valueList:
		return v.list, true
	case valueString:
		return []string{v.str}, true
	default:
		return nil, false
	}
}

func (v Value) Predicate() (Predicate, bool) {
	return v.pred, v.kind == valuePredicate
}

// Condition is one typed comparison against a transaction attribute.
type Condition struct {
	Kind     ConditionKind
	Operator Operator
	Value    Value
	Enabled  bool
}

// Rule matches a transaction iff all of its enabled conditions match.
// Matching denies approval; rules encode a denylist.
type Rule struct {
	ID          string
	Name        string
	Description string
	Conditions  []Condition
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RuleSet is a named, ordered collection of rules. At most one set is active
// at a time.
type RuleSet struct {
	ID          string
	Name        string
	Description string
	Rules       []Rule
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RuleMatch is one rule's outcome within an evaluation.
type RuleMatch struct {
	RuleID   string
	RuleName string
	Matched  bool
	Detail   string
}

// Evaluation is the verdict for one transaction against one rule set.
// Approved holds iff no rule matched.
type Evaluation struct {
	TransactionHash string
	Approved        bool
	Matches         []RuleMatch
	Duration        time.Duration
}
