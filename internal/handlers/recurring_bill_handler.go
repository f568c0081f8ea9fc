package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
	"github.com/rohitdhavare/my-expenses-tracker/internal/services"
)

// RecurringBillHandler handles recurring bill requests.
type RecurringBillHandler struct {
	billService services.RecurringBillServicer
}

// NewRecurringBillHandler creates a new RecurringBillHandler.
func NewRecurringBillHandler(billService services.RecurringBillServicer) *RecurringBillHandler {
	return &RecurringBillHandler{billService: billService}
}

// CreateRecurringBillRequest represents the request payload for creating a bill.
// Reminder settings that are left out fall back to 2 days before at 09:00.
type CreateRecurringBillRequest struct {
	UserID             string               `json:"user_id" binding:"required,uuid"`
	Name               string               `json:"name" binding:"required,min=1,max=100"`
	Amount             *decimal.Decimal     `json:"amount" binding:"required,money" swaggertype:"string" example:"1500.00"`
	Category           string               `json:"category" binding:"max=100"`
	Description        string               `json:"description" binding:"max=1000"`
	Frequency          models.BillFrequency `json:"frequency" binding:"omitempty,bill_frequency"`
	DayOfMonthDue      int                  `json:"day_of_month_due" binding:"min=0,max=31"`
	NextDueDate        string               `json:"next_due_date" binding:"omitempty,civil_date" example:"2024-01-20"`
	ReminderDaysBefore *int                 `json:"reminder_days_before"`
	ReminderHour       *int                 `json:"reminder_hour"`
	ReminderMinute     *int                 `json:"reminder_minute"`
}

// UpdateRecurringBillRequest represents the request payload for updating a
// bill. Omitted fields are left unchanged.
type UpdateRecurringBillRequest struct {
	Name               *string               `json:"name" binding:"omitempty,min=1,max=100"`
	Amount             *decimal.Decimal      `json:"amount" binding:"omitempty,money" swaggertype:"string"`
	Category           *string               `json:"category" binding:"omitempty,max=100"`
	Description        *string               `json:"description" binding:"omitempty,max=1000"`
	Frequency          *models.BillFrequency `json:"frequency" binding:"omitempty,bill_frequency"`
	DayOfMonthDue      *int                  `json:"day_of_month_due" binding:"omitempty,min=0,max=31"`
	NextDueDate        string                `json:"next_due_date" binding:"omitempty,civil_date"`
	ReminderDaysBefore *int                  `json:"reminder_days_before"`
	ReminderHour       *int                  `json:"reminder_hour"`
	ReminderMinute     *int                  `json:"reminder_minute"`
}

// CreateBill handles the creation of a recurring bill.
// @Summary     Create a recurring bill
// @Tags        recurring-bills
// @Accept      json
// @Produce     json
// @Param       request body CreateRecurringBillRequest true "Bill details"
// @Success     201 {object} models.RecurringBill "Bill created"
// @Failure     400 {object} ErrorResponse "Invalid input or reminder settings"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /recurring-bills [post]
func (h *RecurringBillHandler) CreateBill(c *gin.Context) {
	var req CreateRecurringBillRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	due, err := parseDate(req.NextDueDate, "next_due_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.CreateBill(req.UserID, services.RecurringBillInput{
		Name:               req.Name,
		Amount:             *req.Amount,
		Category:           req.Category,
		Description:        req.Description,
		Frequency:          req.Frequency,
		DayOfMonthDue:      req.DayOfMonthDue,
		NextDueDate:        due,
		ReminderDaysBefore: req.ReminderDaysBefore,
		ReminderHour:       req.ReminderHour,
		ReminderMinute:     req.ReminderMinute,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recurring_bill": bill})
}

// GetUserBills handles listing a user's recurring bills.
// @Summary     Get a user's recurring bills
// @Tags        recurring-bills
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {array} models.RecurringBill "Bills ordered by next due date"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Router      /users/{userId}/recurring-bills [get]
func (h *RecurringBillHandler) GetUserBills(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bills, err := h.billService.GetUserBills(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_bills": bills})
}

// GetAllBills handles listing every recurring bill.
// @Summary     Get all recurring bills
// @Tags        recurring-bills
// @Produce     json
// @Success     200 {array} models.RecurringBill "All bills"
// @Router      /recurring-bills [get]
func (h *RecurringBillHandler) GetAllBills(c *gin.Context) {
	bills, err := h.billService.GetAllBills()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_bills": bills})
}

// GetBill handles retrieving a specific bill.
// @Summary     Get recurring bill by ID
// @Tags        recurring-bills
// @Produce     json
// @Param       id path string true "Bill ID"
// @Success     200 {object} models.RecurringBill "Bill details"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /recurring-bills/{id} [get]
func (h *RecurringBillHandler) GetBill(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.GetBillByID(billID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_bill": bill})
}

// UpdateBill handles changing a bill.
// @Summary     Update recurring bill
// @Tags        recurring-bills
// @Accept      json
// @Produce     json
// @Param       id      path string                     true "Bill ID"
// @Param       request body UpdateRecurringBillRequest true "Fields to change"
// @Success     200 {object} models.RecurringBill "Updated bill"
// @Failure     400 {object} ErrorResponse "Invalid input or reminder settings"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /recurring-bills/{id} [put]
func (h *RecurringBillHandler) UpdateBill(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRecurringBillRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	due, err := parseDate(req.NextDueDate, "next_due_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.UpdateBill(billID, services.RecurringBillUpdate{
		Name:               req.Name,
		Amount:             req.Amount,
		Category:           req.Category,
		Description:        req.Description,
		Frequency:          req.Frequency,
		DayOfMonthDue:      req.DayOfMonthDue,
		NextDueDate:        due,
		ReminderDaysBefore: req.ReminderDaysBefore,
		ReminderHour:       req.ReminderHour,
		ReminderMinute:     req.ReminderMinute,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_bill": bill})
}

// DeleteBill handles deleting a bill.
// @Summary     Delete recurring bill
// @Tags        recurring-bills
// @Produce     json
// @Param       id path string true "Bill ID"
// @Success     200 {object} MessageResponse "Bill deleted"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /recurring-bills/{id} [delete]
func (h *RecurringBillHandler) DeleteBill(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.billService.DeleteBill(billID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Recurring bill deleted successfully"})
}

// MarkPaid handles settling a bill's current cycle.
// @Summary     Mark bill paid
// @Tags        recurring-bills
// @Produce     json
// @Param       id path string true "Bill ID"
// @Success     200 {object} models.RecurringBill "Updated bill"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /recurring-bills/{id}/mark-paid [post]
func (h *RecurringBillHandler) MarkPaid(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.MarkPaid(billID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_bill": bill})
}

// MarkUnpaid handles reopening a bill. A bill that was paid and has a due
// date triggers a "Bill Alert" notification.
// @Summary     Mark bill unpaid
// @Tags        recurring-bills
// @Produce     json
// @Param       id path string true "Bill ID"
// @Success     200 {object} models.RecurringBill "Updated bill"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Router      /recurring-bills/{id}/mark-unpaid [post]
func (h *RecurringBillHandler) MarkUnpaid(c *gin.Context) {
	billID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.MarkUnpaid(billID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recurring_bill": bill})
}
