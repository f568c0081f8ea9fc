package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/rohitdhavare/my-expenses-tracker/internal/errors"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
	"github.com/rohitdhavare/my-expenses-tracker/internal/pagination"
	"github.com/rohitdhavare/my-expenses-tracker/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest holds the writable fields of an expense.
type ExpenseRequest struct {
	Title         string             `json:"title" binding:"max=200"`
	Description   string             `json:"description" binding:"max=1000"`
	Category      string             `json:"category" binding:"required,min=1,max=100"`
	Amount        *decimal.Decimal   `json:"amount" binding:"required,money" swaggertype:"string" example:"250.00"`
	Date          string             `json:"date" binding:"omitempty,civil_date" example:"2024-01-15"`
	PaymentMethod string             `json:"payment_method" binding:"max=50"`
	ExpenseType   models.ExpenseType `json:"expense_type" binding:"omitempty,expense_type"`
	Pinned        bool               `json:"pinned"`
}

// CreateExpenseRequest represents the request payload for recording an expense.
type CreateExpenseRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	ExpenseRequest
}

func (r ExpenseRequest) input() (services.ExpenseInput, error) {
	date, err := parseDate(r.Date, "date")
	if err != nil {
		return services.ExpenseInput{}, err
	}
	return services.ExpenseInput{
		Title:         r.Title,
		Description:   r.Description,
		Category:      r.Category,
		Amount:        *r.Amount,
		Date:          date,
		PaymentMethod: r.PaymentMethod,
		ExpenseType:   r.ExpenseType,
		Pinned:        r.Pinned,
	}, nil
}

// CreateExpense handles recording a new expense. The budget covering the
// expense is checked afterwards and may produce an alert.
// @Summary     Create an expense
// @Description Record an expense; the date defaults to today
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req CreateExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	in, err := req.input()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(req.UserID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetUserExpenses handles listing a user's expenses.
// @Summary     Get expenses
// @Description Get a paginated list of the user's expenses, newest first
// @Tags        expenses
// @Produce     json
// @Param       userId    path  string true  "User ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /users/{userId}/expenses [get]
func (h *ExpenseHandler) GetUserExpenses(c *gin.Context) {
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

	result, err := h.expenseService.GetUserExpenses(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpense handles retrieving a specific expense.
// @Summary     Get expense by ID
// @Tags        expenses
// @Produce     json
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense details"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles replacing an expense's fields. The owner never changes.
// @Summary     Update expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id      path string         true "Expense ID"
// @Param       request body ExpenseRequest true "Expense details"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	in, err := req.input()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(expenseID, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense.
// @Summary     Delete expense
// @Tags        expenses
// @Produce     json
// @Param       id path string true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted successfully"})
}

// TogglePin handles flipping an expense's pinned flag.
// @Summary     Toggle expense pin
// @Tags        expenses
// @Produce     json
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id}/toggle-pin [post]
func (h *ExpenseHandler) TogglePin(c *gin.Context) {
	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.TogglePin(expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}
