package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rohitdhavare/my-expenses-tracker/internal/alerting"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
	"github.com/rohitdhavare/my-expenses-tracker/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, fullName string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// BudgetInput carries the fields of a new budget.
type BudgetInput struct {
	Category    string
	LimitAmount decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
}

// BudgetUpdate carries budget fields to change. Nil fields are left as they are.
type BudgetUpdate struct {
	Category    *string
	LimitAmount *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
}

// BudgetSpending reports spending against a budget over its whole range.
type BudgetSpending struct {
	BudgetID   string             `json:"budget_id"`
	Category   string             `json:"category"`
	Limit      decimal.Decimal    `json:"limit"`
	Spent      decimal.Decimal    `json:"spent"`
	Remaining  decimal.Decimal    `json:"remaining"`
	Percentage float64            `json:"percentage"`
	Status     alerting.AlertKind `json:"status"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID string, in BudgetInput) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	FindByOwner(userID string) ([]models.Budget, error)
	FindActiveBudget(userID, category string, on time.Time) (*models.Budget, error)
	GetBudgetByID(budgetID string) (*models.Budget, error)
	UpdateBudget(budgetID string, in BudgetUpdate) (*models.Budget, error)
	DeleteBudget(budgetID string) error
	GetBudgetSpending(budgetID string) (*BudgetSpending, error)
	GetCategorySpending(userID, category string, start, end time.Time) (decimal.Decimal, error)
}

// ExpenseInput carries the writable fields of an expense. A nil Date means today.
type ExpenseInput struct {
	Title         string
	Description   string
	Category      string
	Amount        decimal.Decimal
	Date          *time.Time
	PaymentMethod string
	ExpenseType   models.ExpenseType
	Pinned        bool
}

// ExpenseFinder is the read side of expenses needed for spend aggregation.
type ExpenseFinder interface {
	FindByOwner(userID string) ([]models.Expense, error)
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	ExpenseFinder
	CreateExpense(userID string, in ExpenseInput) (*models.Expense, error)
	GetUserExpenses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(id string) (*models.Expense, error)
	UpdateExpense(id string, in ExpenseInput) (*models.Expense, error)
	DeleteExpense(id string) error
	TogglePin(id string) (*models.Expense, error)
}

// RecurringBillInput carries the fields of a new recurring bill. Nil
// reminder settings stay unset and resolve to defaults when read.
type RecurringBillInput struct {
	Name               string
	Amount             decimal.Decimal
	Category           string
	Description        string
	Frequency          models.BillFrequency
	DayOfMonthDue      int
	NextDueDate        *time.Time
	ReminderDaysBefore *int
	ReminderHour       *int
	ReminderMinute     *int
}

// RecurringBillUpdate carries bill fields to change. Nil fields are left as they are.
type RecurringBillUpdate struct {
	Name               *string
	Amount             *decimal.Decimal
	Category           *string
	Description        *string
	Frequency          *models.BillFrequency
	DayOfMonthDue      *int
	NextDueDate        *time.Time
	ReminderDaysBefore *int
	ReminderHour       *int
	ReminderMinute     *int
}

// RecurringBillServicer defines the contract for recurring bill business logic.
type RecurringBillServicer interface {
	CreateBill(userID string, in RecurringBillInput) (*models.RecurringBill, error)
	GetUserBills(userID string) ([]models.RecurringBill, error)
	GetAllBills() ([]models.RecurringBill, error)
	GetBillByID(id string) (*models.RecurringBill, error)
	UpdateBill(id string, in RecurringBillUpdate) (*models.RecurringBill, error)
	DeleteBill(id string) error
	MarkPaid(id string) (*models.RecurringBill, error)
	MarkUnpaid(id string) (*models.RecurringBill, error)
}

// NotificationServicer defines the contract for reading and managing
// notifications. Creation goes through the alerting sink.
type NotificationServicer interface {
	alerting.NotificationStore
	GetUserNotifications(userID string) ([]models.Notification, error)
	GetUnreadNotifications(userID string) ([]models.Notification, error)
	MarkRead(id string) error
	MarkUnread(id string) error
	MarkAllRead(userID string) (int64, error)
	DeleteNotification(id string) error
	DeleteAllNotifications(userID string) (int64, error)
}

// ExpenseAlerter runs the budget check for a newly saved expense.
type ExpenseAlerter interface {
	CheckExpense(expense *models.Expense) (*models.Notification, error)
}

// NotificationCreator is the write path for alert notifications.
type NotificationCreator interface {
	Create(userID, message string) (*models.Notification, error)
}
