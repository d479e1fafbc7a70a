package rules

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"txgate/internal/monitor"
)

// Engine owns rule sets and evaluates transactions against the active one.
// Absence degrades to default-allow: an unknown rule set id, no active set,
// or a set without enabled rules approves every transaction. The engine is
// synchronous and does no I/O.
type Engine struct {
	logs *zap.SugaredLogger

	mu       sync.RWMutex
	sets     map[string]*RuleSet
	activeID string

	now func() time.Time
}

func NewEngine(logger *zap.SugaredLogger) *Engine {
	return &Engine{
		logs: logger,
		sets: make(map[string]*RuleSet),
		now:  time.Now,
	}
}

// CreateRuleSet allocates a new empty, inactive rule set.
func (e *Engine) CreateRuleSet(name, description string) RuleSet {
	now := e.now()
	set := &RuleSet{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	e.mu.Lock()
	e.sets[set.ID] = set
	e.mu.Unlock()

	e.logs.Infow("rule set created", "id", set.ID, "name", name)
	return *set
}

// RuleSet returns a copy of the set with the given id.
func (e *Engine) RuleSet(id string) (RuleSet, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	set, ok := e.sets[id]
	if !ok {
		return RuleSet{}, false
	}
	return copySet(set), true
}

// RuleSets returns copies of all sets ordered by creation time.
func (e *Engine) RuleSets() []RuleSet {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]RuleSet, 0, len(e.sets))
	for _, set := range e.sets {
		out = append(out, copySet(set))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// ActiveRuleSet returns a copy of the currently active set, if any.
func (e *Engine) ActiveRuleSet() (RuleSet, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	set, ok := e.sets[e.activeID]
	if !ok {
		return RuleSet{}, false
	}
	return copySet(set), true
}

// SetActive activates the given set, deactivating the previous one. It
// reports false for an unknown id.
func (e *Engine) SetActive(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.sets[id]
	if !ok {
		return false
	}
	if previous, ok := e.sets[e.activeID]; ok {
		previous.Active = false
		previous.UpdatedAt = e.now()
	}
	set.Active = true
	set.UpdatedAt = e.now()
	e.activeID = id

	e.logs.Infow("rule set activated", "id", id, "name", set.Name)
	return true
}

// AddRule appends a new enabled rule to the set. It reports false for an
// unknown set id.
func (e *Engine) AddRule(setID, name, description string, conditions []Condition) (Rule, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.sets[setID]
	if !ok {
		return Rule{}, false
	}

	now := e.now()
	rule := Rule{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Conditions:  conditions,
		Enabled:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	set.Rules = append(set.Rules, rule)
	set.UpdatedAt = now

	e.logs.Infow("rule added", "ruleSet", setID, "rule", rule.ID, "name", name)
	return rule, true
}

// RemoveRule deletes a rule from the set, preserving rule order.
func (e *Engine) RemoveRule(setID, ruleID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.sets[setID]
	if !ok {
		return false
	}
	for i, rule := range set.Rules {
		if rule.ID == ruleID {
			set.Rules = append(set.Rules[:i], set.Rules[i+1:]...)
			set.UpdatedAt = e.now()
			return true
		}
	}
	return false
}

// SetRuleEnabled toggles a rule without removing it.
func (e *Engine) SetRuleEnabled(setID, ruleID string, enabled bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	set, ok := e.sets[setID]
	if !ok {
		return false
	}
	for i := range set.Rules {
		if set.Rules[i].ID == ruleID {
			set.Rules[i].Enabled = enabled
			set.Rules[i].UpdatedAt = e.now()
			set.UpdatedAt = e.now()
			return true
		}
	}
	return false
}

// Evaluate checks the transaction against the given rule set, or the active
// one when setID is empty. A transaction is approved iff no enabled rule has
// all of its enabled conditions matching.
func (e *Engine) Evaluate(record monitor.TransactionRecord, setID string) Evaluation {
	start := e.now()

	e.mu.RLock()
	if setID == "" {
		setID = e.activeID
	}
	set, ok := e.sets[setID]
	var rulesCopy []Rule
	if ok {
		rulesCopy = append(rulesCopy, set.Rules...)
	}
	e.mu.RUnlock()

	evaluation := Evaluation{
		TransactionHash: record.Hash,
		Approved:        true,
	}

	if !ok {
		evaluation.Duration = e.now().Sub(start)
		return evaluation
	}

	for _, rule := range rulesCopy {
		if !rule.Enabled {
			continue
		}

		matched := true
		var details []string
		for _, cond := range rule.Conditions {
			if !cond.Enabled {
				continue
			}
			condMatched, detail := evalCondition(cond, record)
			details = append(details, detail)
			if !condMatched {
				matched = false
			}
		}

		evaluation.Matches = append(evaluation.Matches, RuleMatch{
			RuleID:   rule.ID,
			RuleName: rule.Name,
			Matched:  matched,
			Detail:   strings.Join(details, "; "),
		})
		if matched {
			evaluation.Approved = false
		}
	}

	evaluation.Duration = e.now().Sub(start)
	if !evaluation.Approved {
		e.logs.Infow("transaction denied by rules",
			"hash", record.Hash,
			"ruleSet", setID)
	}
	return evaluation
}

func copySet(set *RuleSet) RuleSet {
	copied := *set
	copied.Rules = append([]Rule(nil), set.Rules...)
	return copied
}
