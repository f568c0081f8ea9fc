package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/rohitdhavare/my-expenses-tracker/internal/alerting"
	"github.com/rohitdhavare/my-expenses-tracker/internal/clock"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

// stack wires the services the way cmd/api does, over a test database.
type stack struct {
	users         UserServicer
	notifications NotificationServicer
	budgets       BudgetServicer
	expenses      ExpenseServicer
	bills         RecurringBillServicer
	sink          *alerting.Sink
	checker       *alerting.BudgetChecker
}

func newStack(db *gorm.DB, clk clock.Clock) *stack {
	messages := alerting.Messages{CurrencySymbol: alerting.DefaultCurrencySymbol}

	users := NewUserService(db)
	notifications := NewNotificationService(db)
	dedup := alerting.NewDeduplicator(notifications, clk, alerting.DefaultDedupWindow)
	sink := alerting.NewSink(users, notifications, dedup, clk, nil)

	aggregator := alerting.NewSpendAggregator(NewExpenseFinder(db))
	evaluator := alerting.NewEvaluator(alerting.DefaultApproachingRatio, messages)
	budgets := NewBudgetService(db, aggregator, evaluator)
	checker := alerting.NewBudgetChecker(users, budgets, aggregator, evaluator, sink)

	return &stack{
		users:         users,
		notifications: notifications,
		budgets:       budgets,
		expenses:      NewExpenseService(db, clk, checker),
		bills:         NewRecurringBillService(db, clk, sink, messages),
		sink:          sink,
		checker:       checker,
	}
}

// failingAlerter stands in for a budget check that errors or panics.
type failingAlerter struct {
	err   error
	panic bool
	calls int
}

func (a *failingAlerter) CheckExpense(*models.Expense) (*models.Notification, error) {
	a.calls++
	if a.panic {
		panic("alerting exploded")
	}
	return nil, a.err
}

// failingNotifier stands in for a sink that cannot write.
type failingNotifier struct {
	err error
}

func (n failingNotifier) Create(string, string) (*models.Notification, error) {
	return nil, n.err
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}
