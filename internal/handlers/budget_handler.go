package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rohitdhavare/my-expenses-tracker/internal/alerting"
	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
	"github.com/rohitdhavare/my-expenses-tracker/internal/clock"
	apperrors "github.com/rohitdhavare/my-expenses-tracker/internal/errors"
	"github.com/rohitdhavare/my-expenses-tracker/internal/pagination"
	"github.com/rohitdhavare/my-expenses-tracker/internal/services"
)

// BudgetAlertChecker runs the on-demand budget check for a user.
type BudgetAlertChecker interface {
	CheckUser(userID string) (*alerting.CheckResult, error)
}

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	checker       BudgetAlertChecker
	clock         clock.Clock
}

// NewBudgetHandler creates a new BudgetHandler. clk decides what "today" is
// when a lookup omits the date.
func NewBudgetHandler(budgetService services.BudgetServicer, checker BudgetAlertChecker, clk clock.Clock) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, checker: checker, clock: clk}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	UserID      string           `json:"user_id" binding:"required,uuid"`
	Category    string           `json:"category" binding:"required,min=1,max=100"`
	LimitAmount *decimal.Decimal `json:"limit_amount" binding:"required,money" swaggertype:"string" example:"1000.00"`
	StartDate   string           `json:"start_date" binding:"required,civil_date" example:"2024-01-01"`
	EndDate     string           `json:"end_date" binding:"required,civil_date" example:"2024-01-31"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
type UpdateBudgetRequest struct {
	Category    *string          `json:"category" binding:"omitempty,min=1,max=100"`
	LimitAmount *decimal.Decimal `json:"limit_amount" binding:"omitempty,money" swaggertype:"string"`
	StartDate   string           `json:"start_date" binding:"omitempty,civil_date"`
	EndDate     string           `json:"end_date" binding:"omitempty,civil_date"`
}

// SpendingResponse reports a user's spending in a category over a date range.
type SpendingResponse struct {
	UserID    string          `json:"user_id"`
	Category  string          `json:"category"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a spending limit for a category over an inclusive date range
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input or date range"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	start, err := requireDate(req.StartDate, "start_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := requireDate(req.EndDate, "end_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(req.UserID, services.BudgetInput{
		Category:    req.Category,
		LimitAmount: *req.LimitAmount,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetUserBudgets handles listing a user's budgets.
// @Summary     Get budgets
// @Description Get a paginated list of the user's budgets, latest start date first
// @Tags        budgets
// @Produce     json
// @Param       userId    path  string true  "User ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Budget] "Paginated budgets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{userId}/budgets [get]
func (h *BudgetHandler) GetUserBudgets(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.budgetService.GetUserBudgets(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetActiveBudget handles finding the budget covering a category on a date.
// @Summary     Get active budget
// @Description Get the user's budget for a category whose range contains the date (default today)
// @Tags        budgets
// @Produce     json
// @Param       userId   path  string true  "User ID"
// @Param       category query string true  "Category"
// @Param       date     query string false "Date (YYYY-MM-DD)"
// @Success     200 {object} models.Budget "Active budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "No active budget"
// @Router      /users/{userId}/budgets/active [get]
func (h *BudgetHandler) GetActiveBudget(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category := c.Query("category")
	if category == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required"))
		return
	}

	on, err := parseDate(c.Query("date"), "date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if on == nil {
		today := calendar.Civil(h.clock.Now())
		on = &today
	}

	budget, err := h.budgetService.FindActiveBudget(userID, category, *on)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if budget == nil {
		respondWithError(c, apperrors.ErrBudgetNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// GetCategorySpending handles totalling a user's spending in a category.
// @Summary     Get category spending
// @Description Sum the user's expenses in a category over an inclusive date range
// @Tags        budgets
// @Produce     json
// @Param       userId   path  string true "User ID"
// @Param       category query string true "Category"
// @Param       start    query string true "Start date (YYYY-MM-DD)"
// @Param       end      query string true "End date (YYYY-MM-DD)"
// @Success     200 {object} SpendingResponse "Total spending"
// @Failure     400 {object} ErrorResponse "Invalid input or date range"
// @Router      /users/{userId}/spending [get]
func (h *BudgetHandler) GetCategorySpending(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category := c.Query("category")
	if category == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required"))
		return
	}
	start, err := requireDate(c.Query("start"), "start")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := requireDate(c.Query("end"), "end")
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.budgetService.GetCategorySpending(userID, category, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SpendingResponse{
		UserID:    userID,
		Category:  category,
		StartDate: start.Format(calendar.DateLayout),
		EndDate:   end.Format(calendar.DateLayout),
		Total:     total,
	})
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Tags        budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} models.Budget "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles updating an existing budget.
// @Summary     Update budget
// @Description Change the supplied fields of a budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       id      path string              true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Fields to change"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or date range"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.UpdateBudget(budgetID, services.BudgetUpdate{
		Category:    req.Category,
		LimitAmount: req.LimitAmount,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Tags        budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Budget deleted successfully"})
}

// GetBudgetSpending handles reporting spending against a budget.
// @Summary     Get budget spending
// @Description Get spent, remaining, percentage used and alert status for a budget
// @Tags        budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} services.BudgetSpending "Budget spending"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Router      /budgets/{id}/spending [get]
func (h *BudgetHandler) GetBudgetSpending(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	spending, err := h.budgetService.GetBudgetSpending(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"spending": spending})
}

// CheckAlerts handles the on-demand budget check for a user.
// @Summary     Check budget alerts
// @Description Evaluate every budget of the user and create any due alerts
// @Tags        budgets
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {object} alerting.CheckResult "Check summary"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/{userId}/budgets/check-alerts [post]
func (h *BudgetHandler) CheckAlerts(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.checker.CheckUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
