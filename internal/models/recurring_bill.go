package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillFrequency is advisory; scheduling is driven by NextDueDate only.
type BillFrequency string

const (
	BillFrequencyDaily   BillFrequency = "DAILY"
	BillFrequencyWeekly  BillFrequency = "WEEKLY"
	BillFrequencyMonthly BillFrequency = "MONTHLY"
	BillFrequencyYearly  BillFrequency = "YEARLY"
)

// Reminder fallbacks applied when a bill leaves the setting unset.
const (
	DefaultReminderDaysBefore = 2
	DefaultReminderHour       = 9
	DefaultReminderMinute     = 0
)

// RecurringBill is a bill that falls due on a schedule. The reminder
// settings are nullable: an unset value resolves to its default when read and
// is never written back.
type RecurringBill struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string          `gorm:"not null" json:"name"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Frequency     BillFrequency   `gorm:"not null;default:'MONTHLY'" json:"frequency"`
	DayOfMonthDue int             `json:"day_of_month_due"`
	NextDueDate   *time.Time      `gorm:"type:date" json:"next_due_date,omitempty"`
	IsPaid        bool            `gorm:"not null;default:false" json:"is_paid"`
	PaidDate      *time.Time      `gorm:"type:date" json:"paid_date,omitempty"`

	ReminderDaysBefore *int `json:"reminder_days_before,omitempty"`
	ReminderHour       *int `json:"reminder_hour,omitempty"`
	ReminderMinute     *int `json:"reminder_minute,omitempty"`
}

// EffectiveReminderDaysBefore returns how many days ahead of the due date the reminder fires.
func (b *RecurringBill) EffectiveReminderDaysBefore() int {
	return valueOr(b.ReminderDaysBefore, DefaultReminderDaysBefore)
}

// EffectiveReminderHour returns the hour of day (0-23) the reminder fires.
func (b *RecurringBill) EffectiveReminderHour() int {
	return valueOr(b.ReminderHour, DefaultReminderHour)
}

// EffectiveReminderMinute returns the minute of hour (0-59) the reminder fires.
func (b *RecurringBill) EffectiveReminderMinute() int {
	return valueOr(b.ReminderMinute, DefaultReminderMinute)
}

// ReminderDate returns the calendar day the reminder is due on. ok is false
// when the bill has no due date.
func (b *RecurringBill) ReminderDate() (date time.Time, ok bool) {
	if b.NextDueDate == nil {
		return time.Time{}, false
	}
	return b.NextDueDate.AddDate(0, 0, -b.EffectiveReminderDaysBefore()), true
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
