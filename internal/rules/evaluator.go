package rules

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"

	"txgate/internal/monitor"
)

// evalCondition compares one transaction attribute against one condition.
// Unsupported kinds or operators evaluate to a non-match with a descriptive
// detail, never an error: a malformed condition fails safe toward
// default-allow for its rule.
func evalCondition(cond Condition, record monitor.TransactionRecord) (bool, string) {
	switch cond.Kind {
	case KindTransactionKind:
		return evalKind(cond, record)
	case KindTokenAddress:
		return evalAddress(cond, tokenAddress(record))
	case KindDestinationAddress:
		return evalAddress(cond, record.To)
	case KindValueThreshold:
		return evalNumeric(cond, weiToEther(record.Value))
	case KindGasThreshold:
		return evalNumeric(cond, gasCostGwei(record.GasPrice, record.GasLimit))
	case KindCustomPredicate:
		return evalPredicate(cond, record)
	default:
		return false, fmt.Sprintf("unsupported condition kind %q", cond.Kind)
	}
}

func evalKind(cond Condition, record monitor.TransactionRecord) (bool, string) {
	actual := string(record.Kind)

	switch cond.Operator {
	case OpEquals:
		expected, ok := cond.Value.Scalar()
		if !ok {
			return false, "transaction_kind equals requires a scalar operand"
		}
		return actual == expected, fmt.Sprintf("kind %q equals %q", actual, expected)
	case OpNotEquals:
		expected, ok := cond.Value.Scalar()
		if !ok {
			return false, "transaction_kind not_equals requires a scalar operand"
		}
		return actual != expected, fmt.Sprintf("kind %q not_equals %q", actual, expected)
	case OpIn, OpNotIn:
		list, ok := cond.Value.List()
		if !ok {
			return false, fmt.Sprintf("transaction_kind %s requires a scalar or list operand", cond.Operator)
		}
		found := contains(list, actual)
		if cond.Operator == OpNotIn {
			found = !found
		}
		return found, fmt.Sprintf("kind %q %s %v", actual, cond.Operator, list)
	default:
		return false, fmt.Sprintf("operator %q not supported for transaction_kind", cond.Operator)
	}
}

func evalAddress(cond Condition, address string) (bool, string) {
	actual := strings.ToLower(address)

	switch cond.Operator {
	case OpEquals, OpNotEquals:
		expected, ok := cond.Value.Scalar()
		if !ok {
			return false, fmt.Sprintf("%s %s requires a scalar operand", cond.Kind, cond.Operator)
		}
		matched := actual == strings.ToLower(expected)
		if cond.Operator == OpNotEquals {
			matched = !matched
		}
		return matched, fmt.Sprintf("address %q %s %q", actual, cond.Operator, expected)
	case OpContains, OpNotContains:
		expected, ok := cond.Value.Scalar()
		if !ok {
			return false, fmt.Sprintf("%s %s requires a scalar operand", cond.Kind, cond.Operator)
		}
		matched := strings.Contains(actual, strings.ToLower(expected))
		if cond.Operator == OpNotContains {
			matched = !matched
		}
		return matched, fmt.Sprintf("address %q %s %q", actual, cond.Operator, expected)
	case OpIn, OpNotIn:
		list, ok := cond.Value.List()
		if !ok {
			return false, fmt.Sprintf("%s %s requires a scalar or list operand", cond.Kind, cond.Operator)
		}
		found := false
		for _, item := range list {
			if actual == strings.ToLower(item) {
				found = true
				break
			}
		}
		if cond.Operator == OpNotIn {
			found = !found
		}
		return found, fmt.Sprintf("address %q %s %v", actual, cond.Operator, list)
	default:
		return false, fmt.Sprintf("operator %q not supported for %s", cond.Operator, cond.Kind)
	}
}

func evalNumeric(cond Condition, actual float64) (bool, string) {
	target, ok := cond.Value.Number()
	if !ok {
		return false, fmt.Sprintf("%s requires a numeric operand", cond.Kind)
	}

	var matched bool
	switch cond.Operator {
	case OpEquals:
		matched = actual == target
	case OpNotEquals:
		matched = actual != target
	case OpGreaterThan:
		matched = actual > target
	case OpLessThan:
		matched = actual < target
	default:
		return false, fmt.Sprintf("operator %q not supported for %s", cond.Operator, cond.Kind)
	}
	return matched, fmt.Sprintf("%s: %g %s %g", cond.Kind, actual, cond.Operator, target)
}

// evalPredicate invokes the caller-supplied check. Errors and panics become
// a non-match with the message in the detail, so one misbehaving predicate
// never aborts evaluation of the remaining rules.
func evalPredicate(cond Condition, record monitor.TransactionRecord) (matched bool, detail string) {
	pred, ok := cond.Value.Predicate()
	if !ok || pred == nil {
		return false, "custom_predicate has no predicate attached"
	}

	defer func() {
		if r := recover(); r != nil {
			matched = false
			detail = fmt.Sprintf("custom predicate panicked: %v", r)
		}
	}()

	result, err := pred(record)
	if err != nil {
		return false, fmt.Sprintf("custom predicate failed: %s", err)
	}
	return result, fmt.Sprintf("custom predicate returned %t", result)
}

// tokenAddress resolves the address a token condition compares against. For
// swaps with a decoded multi-hop path it is the first and last path entries
// comma-joined, modelling "does this swap touch token X" rather than "is the
// router address X".
func tokenAddress(record monitor.TransactionRecord) string {
	if record.Kind != monitor.KindSwap || record.Decoded == nil {
		return record.To
	}
	for _, arg := range record.Decoded.Args {
		path, ok := arg.([]common.Address)
		if !ok || len(path) == 0 {
			continue
		}
		first := path[0].Hex()
		last := path[len(path)-1].Hex()
		return first + "," + last
	}
	return record.To
}

func weiToEther(value *big.Int) float64 {
	if value == nil {
		return 0
	}
	ether, _ := new(big.Float).Quo(
		new(big.Float).SetInt(value),
		big.NewFloat(params.Ether),
	).Float64()
	return ether
}

// gasCostGwei estimates the gas cost as gas price in gwei times the gas
// limit.
func gasCostGwei(gasPrice *big.Int, gasLimit uint64) float64 {
	if gasPrice == nil {
		return 0
	}
	priceGwei, _ := new(big.Float).Quo(
		new(big.Float).SetInt(gasPrice),
		big.NewFloat(params.GWei),
	).Float64()
	return priceGwei * float64(gasLimit)
}

func contains(list []string, item string) bool {
	for _, candidate := range list {
		if candidate == item {
			return true
		}
	}
	return false
}
