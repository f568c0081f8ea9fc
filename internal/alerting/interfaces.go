// Package alerting decides when a user should be told about their budgets
// and recurring bills, and writes those notifications through a single
// deduplicating sink.
//
// Budget alerts are evaluated inline after an expense is saved and in bulk on
// demand. Bill reminders come from a per-minute sweep over every bill.
package alerting

import (
	"context"
	"time"

	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

// ExpenseFinder reads a user's expenses.
type ExpenseFinder interface {
	FindByOwner(userID string) ([]models.Expense, error)
}

// BudgetFinder reads budgets. FindActiveBudget returns nil without error when
// no budget for the category covers the date.
type BudgetFinder interface {
	FindByOwner(userID string) ([]models.Budget, error)
	FindActiveBudget(userID, category string, on time.Time) (*models.Budget, error)
}

// BillFinder lists every recurring bill regardless of owner.
type BillFinder interface {
	GetAllBills() ([]models.RecurringBill, error)
}

// UserFinder resolves a user id. An unknown id must return an error.
type UserFinder interface {
	GetUserByID(id string) (*models.User, error)
}

// NotificationStore is the persistence the sink and deduplicator need.
type NotificationStore interface {
	Insert(n *models.Notification) error
	// HasMessageSince reports whether the user has a notification with
	// exactly this message created strictly after since.
	HasMessageSince(userID, message string, since time.Time) (bool, error)
	// ListCreatedSince returns the user's notifications created at or after since.
	ListCreatedSince(userID string, since time.Time) ([]models.Notification, error)
}

// Publisher fans a persisted notification out to other systems.
type Publisher interface {
	PublishNotification(ctx context.Context, n *models.Notification) error
}
