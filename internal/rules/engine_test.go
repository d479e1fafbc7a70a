package rules_test

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"txgate/internal/chain"
	"txgate/internal/monitor"
	"txgate/internal/rules"
)

// ether converts a human-scale amount to wei.
func ether(amount float64) *big.Int {
	wei, _ := new(big.Float).Mul(big.NewFloat(amount), big.NewFloat(1e18)).Int(nil)
	return wei
}

func gwei(amount int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(amount), big.NewInt(1e9))
}

var _ = Describe("Engine", func() {
	var (
		engine *rules.Engine
		record monitor.TransactionRecord
	)

	BeforeEach(func() {
		engine = rules.NewEngine(zap.NewNop().Sugar())

		record = monitor.TransactionRecord{
			Hash:     "0x1111",
			From:     "0xAAAA",
			To:       "0xBBBB",
			Value:    ether(2.0),
			GasPrice: gwei(10),
			GasLimit: 21000,
			Kind:     monitor.KindTransfer,
			Status:   monitor.StatusPending,
		}
	})

	Describe("rule set management", func() {
		It("creates inactive rule sets", func() {
			set := engine.CreateRuleSet("limits", "spending limits")
			Expect(set.ID).NotTo(BeEmpty())
			Expect(set.Active).To(BeFalse())

			fetched, ok := engine.RuleSet(set.ID)
			Expect(ok).To(BeTrue())
			Expect(fetched.Name).To(Equal("limits"))
		})

		It("activates one set at a time", func() {
			first := engine.CreateRuleSet("first", "")
			second := engine.CreateRuleSet("second", "")

			Expect(engine.SetActive(first.ID)).To(BeTrue())
			Expect(engine.SetActive(second.ID)).To(BeTrue())

			active, ok := engine.ActiveRuleSet()
			Expect(ok).To(BeTrue())
			Expect(active.ID).To(Equal(second.ID))

			previous, _ := engine.RuleSet(first.ID)
			Expect(previous.Active).To(BeFalse())
		})

		It("rejects activating an unknown id", func() {
			Expect(engine.SetActive("nope")).To(BeFalse())
		})

		It("returns no rule for an unknown set id", func() {
			_, ok := engine.AddRule("nope", "r", "", nil)
			Expect(ok).To(BeFalse())
		})

		It("removes and toggles rules", func() {
			set := engine.CreateRuleSet("limits", "")
			rule, ok := engine.AddRule(set.ID, "r1", "", nil)
			Expect(ok).To(BeTrue())

			Expect(engine.SetRuleEnabled(set.ID, rule.ID, false)).To(BeTrue())
			fetched, _ := engine.RuleSet(set.ID)
			Expect(fetched.Rules[0].Enabled).To(BeFalse())

			Expect(engine.RemoveRule(set.ID, rule.ID)).To(BeTrue())
			Expect(engine.RemoveRule(set.ID, rule.ID)).To(BeFalse())
		})
	})

	Describe("Evaluate", func() {
		When("no rule set is active", func() {
			It("approves by default with an empty match list", func() {
				evaluation := engine.Evaluate(record, "")
				Expect(evaluation.Approved).To(BeTrue())
				Expect(evaluation.Matches).To(BeEmpty())
			})
		})

		When("the rule set id is unknown", func() {
			It("approves by default", func() {
				evaluation := engine.Evaluate(record, "nope")
				Expect(evaluation.Approved).To(BeTrue())
				Expect(evaluation.Matches).To(BeEmpty())
			})
		})

		When("the active set has no enabled rules", func() {
			It("approves", func() {
				set := engine.CreateRuleSet("empty", "")
				rule, _ := engine.AddRule(set.ID, "dormant", "", []rules.Condition{{
					Kind:     rules.KindTransactionKind,
					Operator: rules.OpEquals,
					Value:    rules.StringValue("transfer"),
					Enabled:  true,
				}})
				engine.SetRuleEnabled(set.ID, rule.ID, false)
				engine.SetActive(set.ID)

				evaluation := engine.Evaluate(record, "")
				Expect(evaluation.Approved).To(BeTrue())
				Expect(evaluation.Matches).To(BeEmpty())
			})
		})

		When("a rule's conditions all match", func() {
			BeforeEach(func() {
				set := engine.CreateRuleSet("deny big swaps", "")
				engine.AddRule(set.ID, "small swaps", "", []rules.Condition{
					{
						Kind:     rules.KindTransactionKind,
						Operator: rules.OpEquals,
						Value:    rules.StringValue("swap"),
						Enabled:  true,
					},
					{
						Kind:     rules.KindValueThreshold,
						Operator: rules.OpLessThan,
						Value:    rules.NumberValue(0.5),
						Enabled:  true,
					},
				})
				engine.SetActive(set.ID)
			})

			It("denies a matching swap", func() {
				record.Kind = monitor.KindSwap
				record.Value = ether(0.3)

				evaluation := engine.Evaluate(record, "")
				Expect(evaluation.Approved).To(BeFalse())
				Expect(evaluation.Matches).To(HaveLen(1))
				Expect(evaluation.Matches[0].Matched).To(BeTrue())
				Expect(evaluation.Matches[0].RuleName).To(Equal("small swaps"))
				Expect(evaluation.Duration).To(BeNumerically(">=", 0))
			})

			It("approves a transfer of the same value", func() {
				record.Kind = monitor.KindTransfer
				record.Value = ether(0.3)

				evaluation := engine.Evaluate(record, "")
				Expect(evaluation.Approved).To(BeTrue())
				Expect(evaluation.Matches).To(HaveLen(1))
				Expect(evaluation.Matches[0].Matched).To(BeFalse())
			})
		})

		When("conditions use destination and value thresholds", func() {
			BeforeEach(func() {
				set := engine.CreateRuleSet("deny", "")
				engine.AddRule(set.ID, "large to bbbb", "", []rules.Condition{
					{
						Kind:     rules.KindDestinationAddress,
						Operator: rules.OpEquals,
						Value:    rules.StringValue("0xbbbb"),
						Enabled:  true,
					},
					{
						Kind:     rules.KindValueThreshold,
						Operator: rules.OpGreaterThan,
						Value:    rules.NumberValue(1.0),
						Enabled:  true,
					},
				})
				engine.SetActive(set.ID)
			})

			It("compares addresses case-insensitively", func() {
				evaluation := engine.Evaluate(record, "")
				Expect(evaluation.Approved).To(BeFalse())
			})

			It("approves below the threshold", func() {
				record.Value = ether(0.9)
				evaluation := engine.Evaluate(record, "")
				Expect(evaluation.Approved).To(BeTrue())
			})
		})

		When("a gas threshold condition is set", func() {
			It("compares gas price in gwei times gas limit", func() {
				set := engine.CreateRuleSet("gas", "")
				engine.AddRule(set.ID, "expensive", "", []rules.Condition{{
					Kind:     rules.KindGasThreshold,
					Operator: rules.OpGreaterThan,
					Value:    rules.NumberValue(200000),
					Enabled:  true,
				}})
				engine.SetActive(set.ID)

				// 10 gwei * 21000 = 210000
				evaluation := engine.Evaluate(record, "")
				Expect(evaluation.Approved).To(BeFalse())
			})
		})

		When("a transaction_kind condition uses in with a list", func() {
			It("matches membership", func() {
				set := engine.CreateRuleSet("kinds", "")
				engine.AddRule(set.ID, "risky kinds", "", []rules.Condition{{
					Kind:     rules.KindTransactionKind,
					Operator: rules.OpIn,
					Value:    rules.ListValue("swap", "approval"),
					Enabled:  true,
				}})
				engine.SetActive(set.ID)

				record.Kind = monitor.KindApproval
				Expect(engine.Evaluate(record, "").Approved).To(BeFalse())

				record.Kind = monitor.KindTransfer
				Expect(engine.Evaluate(record, "").Approved).To(BeTrue())
			})

			It("accepts a scalar operand for in", func() {
				set := engine.CreateRuleSet("kinds", "")
				engine.AddRule(set.ID, "swaps", "", []rules.Condition{{
					Kind:     rules.KindTransactionKind,
					Operator: rules.OpIn,
					Value:    rules.StringValue("swap"),
					Enabled:  true,
				}})
				engine.SetActive(set.ID)

				record.Kind = monitor.KindSwap
				Expect(engine.Evaluate(record, "").Approved).To(BeFalse())
			})
		})

		When("a swap has a decoded multi-hop path", func() {
			// The token address compared for swaps is the first and last
			// path entries comma-joined, not the router address.
			It("matches tokens touched by the swap", func() {
				tokenIn := common.HexToAddress("0x1000000000000000000000000000000000000001")
				tokenMid := common.HexToAddress("0x1000000000000000000000000000000000000002")
				tokenOut := common.HexToAddress("0x1000000000000000000000000000000000000003")

				record.Kind = monitor.KindSwap
				record.Decoded = &chain.DecodedCall{
					Method: "swapExactTokensForTokens",
					Args: []any{
						big.NewInt(1),
						big.NewInt(1),
						[]common.Address{tokenIn, tokenMid, tokenOut},
					},
				}

				set := engine.CreateRuleSet("tokens", "")
				engine.AddRule(set.ID, "touches token out", "", []rules.Condition{{
					Kind:     rules.KindTokenAddress,
					Operator: rules.OpContains,
					Value:    rules.StringValue(tokenOut.Hex()),
					Enabled:  true,
				}})
				engine.SetActive(set.ID)

				Expect(engine.Evaluate(record, "").Approved).To(BeFalse())

				// An intermediate hop is not part of the comparison.
				engine2 := rules.NewEngine(zap.NewNop().Sugar())
				set2 := engine2.CreateRuleSet("tokens", "")
				engine2.AddRule(set2.ID, "touches mid hop", "", []rules.Condition{{
					Kind:     rules.KindTokenAddress,
					Operator: rules.OpContains,
					Value:    rules.StringValue(tokenMid.Hex()),
					Enabled:  true,
				}})
				engine2.SetActive(set2.ID)

				Expect(engine2.Evaluate(record, "").Approved).To(BeTrue())
			})
		})

		When("a custom predicate is attached", func() {
			It("denies when the predicate reports a match", func() {
				set := engine.CreateRuleSet("custom", "")
				engine.AddRule(set.ID, "nonce zero", "", []rules.Condition{{
					Kind:     rules.KindCustomPredicate,
					Operator: rules.OpEquals,
					Value: rules.PredicateValue(func(rec monitor.TransactionRecord) (bool, error) {
						return rec.Nonce == 0, nil
					}),
					Enabled: true,
				}})
				engine.SetActive(set.ID)

				Expect(engine.Evaluate(record, "").Approved).To(BeFalse())
			})

			It("treats a predicate error as a non-match with the message in the detail", func() {
				set := engine.CreateRuleSet("custom", "")
				engine.AddRule(set.ID, "broken", "", []rules.Condition{{
					Kind:     rules.KindCustomPredicate,
					Operator: rules.OpEquals,
					Value: rules.PredicateValue(func(monitor.TransactionRecord) (bool, error) {
						return false, errors.New("lookup unavailable")
					}),
					Enabled: true,
				}})
				engine.SetActive(set.ID)

				evaluation := engine.Evaluate(record, "")
				Expect(evaluation.Approved).To(BeTrue())
				Expect(evaluation.Matches[0].Detail).To(ContainSubstring("lookup unavailable"))
			})

			It("survives a panicking predicate and keeps evaluating other rules", func() {
				set := engine.CreateRuleSet("custom", "")
				engine.AddRule(set.ID, "panics", "", []rules.Condition{{
					Kind:     rules.KindCustomPredicate,
					Operator: rules.OpEquals,
					Value: rules.PredicateValue(func(monitor.TransactionRecord) (bool, error) {
						panic("boom")
					}),
					Enabled: true,
				}})
				engine.AddRule(set.ID, "all transfers", "", []rules.Condition{{
					Kind:     rules.KindTransactionKind,
					Operator: rules.OpEquals,
					Value:    rules.StringValue("transfer"),
					Enabled:  true,
				}})
				engine.SetActive(set.ID)

				evaluation := engine.Evaluate(record, "")
				Expect(evaluation.Approved).To(BeFalse())
				Expect(evaluation.Matches).To(HaveLen(2))
				Expect(evaluation.Matches[0].Matched).To(BeFalse())
				Expect(evaluation.Matches[0].Detail).To(ContainSubstring("boom"))
				Expect(evaluation.Matches[1].Matched).To(BeTrue())
			})
		})

		When("a condition kind or operator is unsupported", func() {
			It("evaluates to a non-match with a descriptive detail", func() {
				set := engine.CreateRuleSet("odd", "")
				engine.AddRule(set.ID, "odd", "", []rules.Condition{{
					Kind:     rules.ConditionKind("moon_phase"),
					Operator: rules.OpEquals,
					Value:    rules.StringValue("full"),
					Enabled:  true,
				}})
				engine.SetActive(set.ID)

				evaluation := engine.Evaluate(record, "")
				Expect(evaluation.Approved).To(BeTrue())
				Expect(evaluation.Matches[0].Detail).To(ContainSubstring("unsupported condition kind"))
			})

			It("rejects a numeric operator on transaction_kind", func() {
				set := engine.CreateRuleSet("odd", "")
				engine.AddRule(set.ID, "odd", "", []rules.Condition{{
					Kind:     rules.KindTransactionKind,
					Operator: rules.OpGreaterThan,
					Value:    rules.StringValue("swap"),
					Enabled:  true,
				}})
				engine.SetActive(set.ID)

				evaluation := engine.Evaluate(record, "")
				Expect(evaluation.Approved).To(BeTrue())
				Expect(evaluation.Matches[0].Detail).To(ContainSubstring("not supported"))
			})
		})

		When("a disabled condition is present", func() {
			It("is skipped in the conjunction", func() {
				set := engine.CreateRuleSet("partial", "")
				engine.AddRule(set.ID, "transfers", "", []rules.Condition{
					{
						Kind:     rules.KindTransactionKind,
						Operator: rules.OpEquals,
						Value:    rules.StringValue("transfer"),
						Enabled:  true,
					},
					{
						Kind:     rules.KindValueThreshold,
						Operator: rules.OpGreaterThan,
						Value:    rules.NumberValue(100),
						Enabled:  false,
					},
				})
				engine.SetActive(set.ID)

				Expect(engine.Evaluate(record, "").Approved).To(BeFalse())
			})
		})
	})
})
