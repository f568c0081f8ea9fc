package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
	"github.com/rohitdhavare/my-expenses-tracker/internal/clock"
	apperrors "github.com/rohitdhavare/my-expenses-tracker/internal/errors"
	"github.com/rohitdhavare/my-expenses-tracker/internal/logger"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
	"github.com/rohitdhavare/my-expenses-tracker/internal/pagination"
)

// expenseQueries holds the read paths shared by the expense service and the
// standalone finder used for spend aggregation.
type expenseQueries struct {
	db *gorm.DB
}

// NewExpenseFinder returns the read side of expenses on its own, for
// components that must exist before the expense service is built.
func NewExpenseFinder(db *gorm.DB) ExpenseFinder {
	return &expenseQueries{db: db}
}

// FindByOwner returns all of the user's expenses.
func (q *expenseQueries) FindByOwner(userID string) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := q.db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// expenseService handles expense-related business logic.
type expenseService struct {
	expenseQueries
	clock   clock.Clock
	alerter ExpenseAlerter
}

// NewExpenseService creates a new ExpenseServicer. alerter may be nil, in
// which case no budget check runs after a create.
func NewExpenseService(db *gorm.DB, clk clock.Clock, alerter ExpenseAlerter) ExpenseServicer {
	return &expenseService{
		expenseQueries: expenseQueries{db: db},
		clock:          clk,
		alerter:        alerter,
	}
}

// CreateExpense saves an expense and then checks the budget it falls under.
// The budget check never affects the result.
func (s *expenseService) CreateExpense(userID string, in ExpenseInput) (*models.Expense, error) {
	if err := ensureUser(s.db, userID); err != nil {
		return nil, err
	}

	expense := &models.Expense{UserID: userID}
	if err := s.apply(expense, in); err != nil {
		return nil, err
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.checkBudget(expense)
	return expense, nil
}

func (s *expenseService) apply(e *models.Expense, in ExpenseInput) error {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	date := calendar.Civil(s.clock.Now())
	if in.Date != nil {
		date = calendar.Civil(*in.Date)
	}

	expenseType := in.ExpenseType
	if expenseType == "" {
		expenseType = models.ExpenseTypePersonal
	}

	e.Title = in.Title
	e.Description = in.Description
	e.Category = category
	e.Amount = in.Amount
	e.Date = date
	e.PaymentMethod = in.PaymentMethod
	e.ExpenseType = expenseType
	e.Pinned = in.Pinned
	return nil
}

// checkBudget runs the post-save budget alert. Errors and panics are logged
// and swallowed.
func (s *expenseService) checkBudget(expense *models.Expense) {
	if s.alerter == nil {
		return
	}

	log := logger.Get()
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("Budget alert check panicked",
				"expense_id", expense.ID, "user_id", expense.UserID, "error", fmt.Sprint(r))
		}
	}()

	if _, err := s.alerter.CheckExpense(expense); err != nil {
		log.Errorw("Budget alert check failed",
			"expense_id", expense.ID, "user_id", expense.UserID, "error", err)
	}
}

// GetUserExpenses returns the user's expenses, newest first.
func (s *expenseService) GetUserExpenses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Order("date DESC, created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID returns an expense by ID.
func (s *expenseService) GetExpenseByID(id string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ?", id).First(&expense).Error; err != nil {
		return nil, notFoundOr(err, apperrors.ErrExpenseNotFound)
	}
	return &expense, nil
}

// UpdateExpense replaces the expense's writable fields. The owner never changes.
func (s *expenseService) UpdateExpense(id string, in ExpenseInput) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(id)
	if err != nil {
		return nil, err
	}

	if in.Date == nil {
		in.Date = &expense.Date
	}
	if err := s.apply(expense, in); err != nil {
		return nil, err
	}

	if err := s.db.Model(expense).
		Select("title", "description", "category", "amount", "date", "payment_method", "expense_type", "pinned").
		Updates(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense soft-deletes an expense.
func (s *expenseService) DeleteExpense(id string) error {
	expense, err := s.GetExpenseByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// TogglePin flips the expense's pinned flag.
func (s *expenseService) TogglePin(id string) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(id)
	if err != nil {
		return nil, err
	}

	expense.Pinned = !expense.Pinned
	if err := s.db.Model(expense).Update("pinned", expense.Pinned).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}
