package alerting

import (
	"fmt"

	"github.com/rohitdhavare/my-expenses-tracker/internal/logger"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

// CheckResult summarises an on-demand check over all of a user's budgets.
type CheckResult struct {
	BudgetsChecked   int    `json:"budgets_checked"`
	AlertsCreated    int    `json:"alerts_created"`
	AlertsSuppressed int    `json:"alerts_suppressed"`
	Message          string `json:"message"`
}

// BudgetChecker runs budgets through the Evaluator and hands any alert to the Sink.
type BudgetChecker struct {
	users      UserFinder
	budgets    BudgetFinder
	aggregator *SpendAggregator
	evaluator  Evaluator
	sink       *Sink
}

// NewBudgetChecker creates a BudgetChecker.
func NewBudgetChecker(users UserFinder, budgets BudgetFinder, aggregator *SpendAggregator, evaluator Evaluator, sink *Sink) *BudgetChecker {
	return &BudgetChecker{
		users:      users,
		budgets:    budgets,
		aggregator: aggregator,
		evaluator:  evaluator,
		sink:       sink,
	}
}

// Check evaluates a single budget against its current spending. The
// notification is nil when no alert was due or the sink suppressed it.
func (c *BudgetChecker) Check(budget *models.Budget) (AlertDecision, *models.Notification, error) {
	spending, err := c.aggregator.TotalSpending(budget.UserID, budget.Category, budget.StartDate, budget.EndDate)
	if err != nil {
		return AlertDecision{}, nil, fmt.Errorf("aggregate spending for budget %s: %w", budget.ID, err)
	}

	decision := c.evaluator.Evaluate(budget, spending)
	if decision.Kind == AlertNone {
		return decision, nil, nil
	}

	n, err := c.sink.Create(budget.UserID, decision.Message)
	if err != nil {
		return decision, nil, err
	}
	return decision, n, nil
}

// CheckExpense evaluates the budget covering the expense's category and
// date, if any. It must run after the expense is committed so the
// aggregate includes it.
func (c *BudgetChecker) CheckExpense(expense *models.Expense) (*models.Notification, error) {
	budget, err := c.budgets.FindActiveBudget(expense.UserID, expense.Category, expense.Date)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, nil
	}

	_, n, err := c.Check(budget)
	return n, err
}

// CheckUser evaluates every budget the user owns, active or not.
func (c *BudgetChecker) CheckUser(userID string) (*CheckResult, error) {
	if _, err := c.users.GetUserByID(userID); err != nil {
		return nil, err
	}

	budgets, err := c.budgets.FindByOwner(userID)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{}
	for i := range budgets {
		result.BudgetsChecked++

		decision, n, err := c.Check(&budgets[i])
		if err != nil {
			return nil, err
		}
		switch {
		case n != nil:
			result.AlertsCreated++
		case decision.Kind != AlertNone:
			result.AlertsSuppressed++
		}
	}

	result.Message = fmt.Sprintf("%d budget alert(s) created", result.AlertsCreated)
	logger.Get().Infow("Budget alert check finished",
		"user_id", userID,
		"budgets_checked", result.BudgetsChecked,
		"alerts_created", result.AlertsCreated,
		"alerts_suppressed", result.AlertsSuppressed,
	)
	return result, nil
}
