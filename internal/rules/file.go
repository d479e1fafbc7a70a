package rules

import (
	"fmt"
	"os"

	"github.com/jellydator/validation"
	"gopkg.in/yaml.v3"
)

// Declarative rule-set files carry the same condition schema the engine
// consumes, so any authoring collaborator emitting it (a human or a
// translator) can feed the engine. Custom predicates are not serializable
// and are attached through the API instead.

type ConditionSpec struct {
	Kind     string `yaml:"kind"`
	Operator string `yaml:"operator"`
	Value    any    `yaml:"value"`
}

type RuleSpec struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Conditions  []ConditionSpec `yaml:"conditions"`
}

type RuleSetSpec struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Rules       []RuleSpec `yaml:"rules"`
}

func (s ConditionSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Kind,
			validation.Required,
			validation.In(
				string(KindTransactionKind),
				string(KindTokenAddress),
				string(KindDestinationAddress),
				string(KindValueThreshold),
				string(KindGasThreshold),
			).Error("unknown or non-serializable condition kind"),
		),
		validation.Field(&s.Operator,
			validation.Required,
			validation.In(
				string(OpEquals),
				string(OpNotEquals),
				string(OpContains),
				string(OpNotContains),
				string(OpGreaterThan),
				string(OpLessThan),
				string(OpIn),
				string(OpNotIn),
			),
		),
		validation.Field(&s.Value, validation.Required),
	)
}

func (s RuleSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Conditions, validation.Required),
	)
}

func (s RuleSetSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Rules, validation.Required),
	)
}

// LoadFile reads and validates a declarative rule-set file.
func LoadFile(path string) (RuleSetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSetSpec{}, fmt.Errorf("read rule file: %w", err)
	}

	var spec RuleSetSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return RuleSetSpec{}, fmt.Errorf("parse rule file: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return RuleSetSpec{}, fmt.Errorf("validate rule file: %w", err)
	}
	return spec, nil
}

// Import builds a rule set from a declarative spec through the engine's
// regular CRUD surface. The new set is created inactive.
func (e *Engine) Import(spec RuleSetSpec) (RuleSet, error) {
	if err := spec.Validate(); err != nil {
		return RuleSet{}, fmt.Errorf("validate rule set spec: %w", err)
	}

	set := e.CreateRuleSet(spec.Name, spec.Description)
	for _, ruleSpec := range spec.Rules {
		if err := ruleSpec.Validate(); err != nil {
			return RuleSet{}, fmt.Errorf("validate rule %q: %w", ruleSpec.Name, err)
		}

		conditions := make([]Condition, 0, len(ruleSpec.Conditions))
		for _, condSpec := range ruleSpec.Conditions {
			cond, err := condSpec.toCondition()
			if err != nil {
				return RuleSet{}, fmt.Errorf("rule %q: %w", ruleSpec.Name, err)
			}
			conditions = append(conditions, cond)
		}
		e.AddRule(set.ID, ruleSpec.Name, ruleSpec.Description, conditions)
	}

	imported, _ := e.RuleSet(set.ID)
	return imported, nil
}

func (s ConditionSpec) toCondition() (Condition, error) {
	if err := s.Validate(); err != nil {
		return Condition{}, fmt.Errorf("validate condition: %w", err)
	}

	value, err := specValue(s.Value)
	if err != nil {
		return Condition{}, fmt.Errorf("condition %s %s: %w", s.Kind, s.Operator, err)
	}

	return Condition{
		Kind:     ConditionKind(s.Kind),
		Operator: Operator(s.Operator),
		Value:    value,
		Enabled:  true,
	}, nil
}

func specValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		return StringValue(v), nil
	case float64:
		return NumberValue(v), nil
	case int:
		return NumberValue(float64(v)), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return Value{}, fmt.Errorf("list operand must hold strings, got %T", item)
			}
			items = append(items, s)
		}
		return ListValue(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported operand type %T", raw)
	}
}
