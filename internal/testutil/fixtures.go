package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Money parses a decimal literal, panicking on malformed input.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Date parses a YYYY-MM-DD literal into its stored form.
func Date(s string) time.Time {
	d, err := calendar.Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DatePtr is Date returning a pointer.
func DatePtr(s string) *time.Time {
	d := Date(s)
	return &d
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// CreateTestUser creates a user with a unique username and email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	user := &models.User{
		Username: fmt.Sprintf("user%d", n),
		Email:    fmt.Sprintf("user%d@test.com", n),
		FullName: fmt.Sprintf("Test User %d", n),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestBudget creates a budget for category over [start, end].
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, category, limit string, start, end time.Time) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:      userID,
		Category:    category,
		LimitAmount: Money(limit),
		StartDate:   calendar.Civil(start),
		EndDate:     calendar.Civil(end),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestExpense creates a personal expense.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, category, amount string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:        userID,
		Title:         fmt.Sprintf("Expense %d", nextID()),
		Category:      category,
		Amount:        Money(amount),
		Date:          calendar.Civil(date),
		PaymentMethod: "CASH",
		ExpenseType:   models.ExpenseTypePersonal,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestRecurringBill creates a monthly bill of 100.00 with default
// reminder settings.
func CreateTestRecurringBill(t *testing.T, db *gorm.DB, userID, name string, nextDueDate *time.Time) *models.RecurringBill {
	t.Helper()

	bill := &models.RecurringBill{
		UserID:      userID,
		Name:        name,
		Amount:      Money("100.00"),
		Frequency:   models.BillFrequencyMonthly,
		NextDueDate: nextDueDate,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test recurring bill: %v", err)
	}
	return bill
}

// CreateTestNotification creates an unread notification stamped createdAt.
func CreateTestNotification(t *testing.T, db *gorm.DB, userID, message string, createdAt time.Time) *models.Notification {
	t.Helper()

	n := &models.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: createdAt.UTC(),
	}
	if err := db.Create(n).Error; err != nil {
		t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}

// FixedClock is a clock whose time only changes when a test says so.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock returns a FixedClock reading now.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the clock's current time.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to now.
func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
