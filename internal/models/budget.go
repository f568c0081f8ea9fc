package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget caps spending in one category over a closed date range.
// Spending against it is always derived from expenses, never stored.
type Budget struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index:idx_budgets_owner_category,priority:1" json:"user_id"`
	Category    string          `gorm:"not null;index:idx_budgets_owner_category,priority:2" json:"category"`
	LimitAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"limit_amount"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time       `gorm:"type:date;not null" json:"end_date"`
}
