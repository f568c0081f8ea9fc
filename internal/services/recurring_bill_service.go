package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rohitdhavare/my-expenses-tracker/internal/alerting"
	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
	"github.com/rohitdhavare/my-expenses-tracker/internal/clock"
	apperrors "github.com/rohitdhavare/my-expenses-tracker/internal/errors"
	"github.com/rohitdhavare/my-expenses-tracker/internal/logger"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

// recurringBillService handles recurring bill business logic.
type recurringBillService struct {
	db       *gorm.DB
	clock    clock.Clock
	notifier NotificationCreator
	messages alerting.Messages
}

// NewRecurringBillService creates a new RecurringBillServicer. notifier
// receives the alert sent when a paid bill is reopened and may be nil.
func NewRecurringBillService(db *gorm.DB, clk clock.Clock, notifier NotificationCreator, messages alerting.Messages) RecurringBillServicer {
	return &recurringBillService{db: db, clock: clk, notifier: notifier, messages: messages}
}

// CreateBill creates a recurring bill. Reminder settings left nil are stored
// as NULL so later changes to the defaults apply to this bill too.
func (s *recurringBillService) CreateBill(userID string, in RecurringBillInput) (*models.RecurringBill, error) {
	if err := ensureUser(s.db, userID); err != nil {
		return nil, err
	}

	frequency := in.Frequency
	if frequency == "" {
		frequency = models.BillFrequencyMonthly
	}

	bill := &models.RecurringBill{
		UserID:             userID,
		Name:               strings.TrimSpace(in.Name),
		Amount:             in.Amount,
		Category:           in.Category,
		Description:        in.Description,
		Frequency:          frequency,
		DayOfMonthDue:      in.DayOfMonthDue,
		NextDueDate:        civilPtr(in.NextDueDate),
		ReminderDaysBefore: in.ReminderDaysBefore,
		ReminderHour:       in.ReminderHour,
		ReminderMinute:     in.ReminderMinute,
	}
	if err := validateBill(bill); err != nil {
		return nil, err
	}

	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

func validateBill(b *models.RecurringBill) error {
	if b.Name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if b.Amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	switch b.Frequency {
	case models.BillFrequencyDaily, models.BillFrequencyWeekly, models.BillFrequencyMonthly, models.BillFrequencyYearly:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown frequency %q", b.Frequency))
	}
	if b.DayOfMonthDue < 0 || b.DayOfMonthDue > 31 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "day_of_month_due must be between 1 and 31")
	}
	if v := b.ReminderDaysBefore; v != nil && *v < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidReminder, "reminder_days_before must not be negative")
	}
	if v := b.ReminderHour; v != nil && (*v < 0 || *v > 23) {
		return apperrors.WithMessage(apperrors.ErrInvalidReminder, "reminder_hour must be between 0 and 23")
	}
	if v := b.ReminderMinute; v != nil && (*v < 0 || *v > 59) {
		return apperrors.WithMessage(apperrors.ErrInvalidReminder, "reminder_minute must be between 0 and 59")
	}
	return nil
}

// GetUserBills returns the user's bills ordered by next due date.
func (s *recurringBillService) GetUserBills(userID string) ([]models.RecurringBill, error) {
	var bills []models.RecurringBill
	if err := s.db.Where("user_id = ?", userID).Order("next_due_date").Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bills, nil
}

// GetAllBills returns every bill of every user.
func (s *recurringBillService) GetAllBills() ([]models.RecurringBill, error) {
	var bills []models.RecurringBill
	if err := s.db.Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bills, nil
}

// GetBillByID returns a bill by ID.
func (s *recurringBillService) GetBillByID(id string) (*models.RecurringBill, error) {
	var bill models.RecurringBill
	if err := s.db.Where("id = ?", id).First(&bill).Error; err != nil {
		return nil, notFoundOr(err, apperrors.ErrRecurringBillNotFound)
	}
	return &bill, nil
}

// UpdateBill changes only the supplied fields.
func (s *recurringBillService) UpdateBill(id string, in RecurringBillUpdate) (*models.RecurringBill, error) {
	bill, err := s.GetBillByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		bill.Name = strings.TrimSpace(*in.Name)
	}
	if in.Amount != nil {
		bill.Amount = *in.Amount
	}
	if in.Category != nil {
		bill.Category = *in.Category
	}
	if in.Description != nil {
		bill.Description = *in.Description
	}
	if in.Frequency != nil {
		bill.Frequency = *in.Frequency
	}
	if in.DayOfMonthDue != nil {
		bill.DayOfMonthDue = *in.DayOfMonthDue
	}
	if in.NextDueDate != nil {
		bill.NextDueDate = civilPtr(in.NextDueDate)
	}
	if in.ReminderDaysBefore != nil {
		bill.ReminderDaysBefore = in.ReminderDaysBefore
	}
	if in.ReminderHour != nil {
		bill.ReminderHour = in.ReminderHour
	}
	if in.ReminderMinute != nil {
		bill.ReminderMinute = in.ReminderMinute
	}
	if err := validateBill(bill); err != nil {
		return nil, err
	}

	if err := s.db.Save(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// DeleteBill soft-deletes a bill.
func (s *recurringBillService) DeleteBill(id string) error {
	bill, err := s.GetBillByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(bill).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// MarkPaid settles the bill's current cycle as of today.
func (s *recurringBillService) MarkPaid(id string) (*models.RecurringBill, error) {
	bill, err := s.GetBillByID(id)
	if err != nil {
		return nil, err
	}

	today := calendar.Civil(s.clock.Now())
	bill.IsPaid = true
	bill.PaidDate = &today

	if err := s.db.Model(bill).Select("is_paid", "paid_date").Updates(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bill, nil
}

// MarkUnpaid reopens the bill. If it had been paid and has a due date, the
// owner is told how long they have left; failing to notify is logged and
// does not fail the update.
func (s *recurringBillService) MarkUnpaid(id string) (*models.RecurringBill, error) {
	bill, err := s.GetBillByID(id)
	if err != nil {
		return nil, err
	}

	wasPaid := bill.IsPaid
	bill.IsPaid = false
	bill.PaidDate = nil

	if err := s.db.Model(bill).Select("is_paid", "paid_date").Updates(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if wasPaid && bill.NextDueDate != nil {
		s.notifyReopened(bill)
	}
	return bill, nil
}

func (s *recurringBillService) notifyReopened(bill *models.RecurringBill) {
	if s.notifier == nil {
		return
	}

	name := bill.Name
	if name == "" {
		name = "Bill"
	}
	days := calendar.DaysBetween(s.clock.Now(), *bill.NextDueDate)
	message := s.messages.BillReopened(name, days, *bill.NextDueDate, bill.Amount)

	if _, err := s.notifier.Create(bill.UserID, message); err != nil {
		logger.Get().Errorw("Failed to send bill reopened alert",
			"bill_id", bill.ID, "user_id", bill.UserID, "error", err)
	}
}

func civilPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := calendar.Civil(*t)
	return &d
}
