// Package policy evaluates merchant guard rules against an outgoing Adyen
// request before it is sent.
package policy

import (
	"fmt"
	"sort"

	"github.com/Knetic/govaluate"
)

// Rule blocks a request when Expression evaluates to true. Rules are checked
// in ascending Priority; ties keep their configured order.
//
// Expressions see the parameters action, amount (minor units), currency and
// merchant_account, e.g. "action == 'refund' && amount > 50000".
type Rule struct {
	ID         string `json:"id"`
	Expression string `json:"expression"`
	Priority   int    `json:"priority"`
}

// Decision is the outcome of an evaluation.
type Decision struct {
	Allowed bool
	// RuleID names the rule that blocked the request.
	RuleID string
}

// Params is the data a rule is evaluated against.
type Params struct {
	Action          string
	Amount          int64
	Currency        string
	MerchantAccount string
}

func (p Params) toMap() map[string]interface{} {
	return map[string]interface{}{
		"action":           p.Action,
		"amount":           float64(p.Amount),
		"currency":         p.Currency,
		"merchant_account": p.MerchantAccount,
	}
}

type compiledRule struct {
	Rule
	expr *govaluate.EvaluableExpression
}

// Enforcer holds compiled rules. It is safe for concurrent use.
type Enforcer struct {
	rules []compiledRule
}

// NewEnforcer compiles rules. An empty rule set allows everything.
func NewEnforcer(rules []Rule) (*Enforcer, error) {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	e := &Enforcer{rules: make([]compiledRule, 0, len(sorted))}
	for _, r := range sorted {
		if r.Expression == "" {
			return nil, fmt.Errorf("policy rule ID '%s' has an empty expression", r.ID)
		}
		expr, err := govaluate.NewEvaluableExpression(r.Expression)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule ID '%s': %w", r.ID, err)
		}
		e.rules = append(e.rules, compiledRule{Rule: r, expr: expr})
	}
	return e, nil
}

// Evaluate returns the decision for params. The first matching rule blocks.
func (e *Enforcer) Evaluate(params Params) (Decision, error) {
	if e == nil || len(e.rules) == 0 {
		return Decision{Allowed: true}, nil
	}
	values := params.toMap()
	for _, r := range e.rules {
		out, err := r.expr.Evaluate(values)
		if err != nil {
			return Decision{}, fmt.Errorf("failed to evaluate rule ID '%s': %w", r.ID, err)
		}
		matched, ok := out.(bool)
		if !ok {
			return Decision{}, fmt.Errorf("rule ID '%s' did not evaluate to a boolean (got %T)", r.ID, out)
		}
		if matched {
			return Decision{Allowed: false, RuleID: r.ID}, nil
		}
	}
	return Decision{Allowed: true}, nil
}
