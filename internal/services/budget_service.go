package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rohitdhavare/my-expenses-tracker/internal/alerting"
	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
	apperrors "github.com/rohitdhavare/my-expenses-tracker/internal/errors"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
	"github.com/rohitdhavare/my-expenses-tracker/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db         *gorm.DB
	aggregator *alerting.SpendAggregator
	evaluator  alerting.Evaluator
}

// NewBudgetService creates a new BudgetServicer. The aggregator and
// evaluator back the spending report.
func NewBudgetService(db *gorm.DB, aggregator *alerting.SpendAggregator, evaluator alerting.Evaluator) BudgetServicer {
	return &budgetService{db: db, aggregator: aggregator, evaluator: evaluator}
}

// CreateBudget creates a new budget for a category.
func (s *budgetService) CreateBudget(userID string, in BudgetInput) (*models.Budget, error) {
	if err := ensureUser(s.db, userID); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:      userID,
		Category:    strings.TrimSpace(in.Category),
		LimitAmount: in.LimitAmount,
		StartDate:   calendar.Civil(in.StartDate),
		EndDate:     calendar.Civil(in.EndDate),
	}
	if err := validateBudget(budget); err != nil {
		return nil, err
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

func validateBudget(b *models.Budget) error {
	if b.Category == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if b.LimitAmount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "limit_amount must not be negative")
	}
	if calendar.Before(b.EndDate, b.StartDate) {
		return apperrors.ErrInvalidDateRange
	}
	return nil
}

// GetUserBudgets returns a paginated list of the user's budgets, newest range first.
func (s *budgetService) GetUserBudgets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Order("start_date DESC").Scopes(pagination.Paginate(page)).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// FindByOwner returns every budget the user owns.
func (s *budgetService) FindByOwner(userID string) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Order("start_date").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// FindActiveBudget returns the user's budget for category whose range
// contains on, or nil if there is none. When ranges overlap the most
// recently created budget wins.
func (s *budgetService) FindActiveBudget(userID, category string, on time.Time) (*models.Budget, error) {
	var candidates []models.Budget
	if err := s.db.Where("user_id = ? AND category = ?", userID, category).
		Order("created_at DESC").
		Find(&candidates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range candidates {
		if calendar.Within(on, candidates[i].StartDate, candidates[i].EndDate) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// GetBudgetByID returns a budget by ID.
func (s *budgetService) GetBudgetByID(budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ?", budgetID).First(&budget).Error; err != nil {
		return nil, notFoundOr(err, apperrors.ErrBudgetNotFound)
	}
	return &budget, nil
}

// UpdateBudget updates an existing budget's fields.
func (s *budgetService) UpdateBudget(budgetID string, in BudgetUpdate) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	if in.Category != nil {
		budget.Category = strings.TrimSpace(*in.Category)
	}
	if in.LimitAmount != nil {
		budget.LimitAmount = *in.LimitAmount
	}
	if in.StartDate != nil {
		budget.StartDate = calendar.Civil(*in.StartDate)
	}
	if in.EndDate != nil {
		budget.EndDate = calendar.Civil(*in.EndDate)
	}
	if err := validateBudget(budget); err != nil {
		return nil, err
	}

	if err := s.db.Model(budget).Select("category", "limit_amount", "start_date", "end_date").Updates(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// DeleteBudget soft-deletes a budget.
func (s *budgetService) DeleteBudget(budgetID string) error {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetSpending reports spending against the budget over its whole
// range, with the alert state the evaluator would assign.
func (s *budgetService) GetBudgetSpending(budgetID string) (*BudgetSpending, error) {
	budget, err := s.GetBudgetByID(budgetID)
	if err != nil {
		return nil, err
	}

	spent, err := s.aggregator.TotalSpending(budget.UserID, budget.Category, budget.StartDate, budget.EndDate)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	decision := s.evaluator.Evaluate(budget, spent)

	var percentage float64
	if budget.LimitAmount.IsPositive() {
		percentage = spent.Div(budget.LimitAmount).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	return &BudgetSpending{
		BudgetID:   budget.ID,
		Category:   budget.Category,
		Limit:      budget.LimitAmount,
		Spent:      spent,
		Remaining:  decision.Remaining,
		Percentage: percentage,
		Status:     decision.Kind,
	}, nil
}

// GetCategorySpending totals the user's spending in category over [start, end].
func (s *budgetService) GetCategorySpending(userID, category string, start, end time.Time) (decimal.Decimal, error) {
	if calendar.Before(end, start) {
		return decimal.Zero, apperrors.ErrInvalidDateRange
	}
	if err := ensureUser(s.db, userID); err != nil {
		return decimal.Zero, err
	}

	total, err := s.aggregator.TotalSpending(userID, category, start, end)
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
