package alerting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
)

// SpendAggregator totals what a user spent in a category over a date range.
// Every call re-reads the user's expenses; nothing is cached.
type SpendAggregator struct {
	expenses ExpenseFinder
}

// NewSpendAggregator creates a SpendAggregator reading from expenses.
func NewSpendAggregator(expenses ExpenseFinder) *SpendAggregator {
	return &SpendAggregator{expenses: expenses}
}

// TotalSpending sums the amounts of the user's expenses whose category equals
// category exactly (case-sensitive) and whose date falls in [start, end].
// It returns zero when nothing matches.
func (a *SpendAggregator) TotalSpending(userID, category string, start, end time.Time) (decimal.Decimal, error) {
	expenses, err := a.expenses.FindByOwner(userID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range expenses {
		e := &expenses[i]
		if e.Category != category || !calendar.Within(e.Date, start, end) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total, nil
}
