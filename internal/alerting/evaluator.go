package alerting

import (
	"github.com/shopspring/decimal"

	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

// AlertKind classifies a budget's state.
type AlertKind string

const (
	AlertNone        AlertKind = "NONE"
	AlertApproaching AlertKind = "APPROACHING"
	AlertExceeded    AlertKind = "EXCEEDED"
)

// DefaultApproachingRatio is the share of the limit above which a budget is
// considered close to running out.
var DefaultApproachingRatio = decimal.RequireFromString("0.9")

// AlertDecision is the outcome of evaluating one budget. Message is empty for AlertNone.
type AlertDecision struct {
	Kind      AlertKind       `json:"kind"`
	Message   string          `json:"message,omitempty"`
	Spending  decimal.Decimal `json:"spending"`
	Remaining decimal.Decimal `json:"remaining"`
}

// Evaluator decides whether a budget warrants an alert. It has no side
// effects, so the inline and bulk paths reach the same decision.
type Evaluator struct {
	ApproachingRatio decimal.Decimal
	Messages         Messages
}

// NewEvaluator returns an Evaluator using ratio, or DefaultApproachingRatio when ratio is zero.
func NewEvaluator(ratio decimal.Decimal, messages Messages) Evaluator {
	if ratio.IsZero() {
		ratio = DefaultApproachingRatio
	}
	return Evaluator{ApproachingRatio: ratio, Messages: messages}
}

// Evaluate compares spending with the budget's limit.
//
// Spending at or over the limit is exceeded. Spending strictly above
// limit*ratio is approaching, so spending exactly on the threshold is none.
func (e Evaluator) Evaluate(budget *models.Budget, spending decimal.Decimal) AlertDecision {
	remaining := budget.LimitAmount.Sub(spending)
	decision := AlertDecision{Kind: AlertNone, Spending: spending, Remaining: remaining}

	if !remaining.IsPositive() {
		decision.Kind = AlertExceeded
		decision.Message = e.Messages.BudgetExceeded(budget.Category, budget.LimitAmount, spending)
		return decision
	}

	threshold := budget.LimitAmount.Mul(e.ApproachingRatio)
	if spending.GreaterThan(threshold) {
		decision.Kind = AlertApproaching
		decision.Message = e.Messages.BudgetApproaching(budget.Category, remaining)
	}
	return decision
}
