package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseType classifies an expense
type ExpenseType string

const (
	ExpenseTypePersonal     ExpenseType = "PERSONAL"
	ExpenseTypeProfessional ExpenseType = "PROFESSIONAL"
)

// Expense is a single spend on one calendar day.
type Expense struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      string          `gorm:"not null" json:"category"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Date          time.Time       `gorm:"type:date;not null" json:"date"`
	PaymentMethod string          `json:"payment_method"`
	ExpenseType   ExpenseType     `gorm:"not null" json:"expense_type"`
	Pinned        bool            `json:"pinned"`
}
