package alerting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
)

// DefaultCurrencySymbol prefixes every amount unless configured otherwise.
const DefaultCurrencySymbol = "₹"

// Messages renders alert text. Amounts are always shown to two places.
type Messages struct {
	CurrencySymbol string
}

func (m Messages) money(d decimal.Decimal) string {
	return m.CurrencySymbol + d.StringFixed(2)
}

// BudgetExceeded is sent once spending reaches the limit.
func (m Messages) BudgetExceeded(category string, limit, spending decimal.Decimal) string {
	return fmt.Sprintf("🚨 Budget Alert: You have exceeded your %s budget of %s! Current spending: %s",
		category, m.money(limit), m.money(spending))
}

// BudgetApproaching is sent when spending is above the threshold but under the limit.
func (m Messages) BudgetApproaching(category string, remaining decimal.Decimal) string {
	return fmt.Sprintf("⚠️ Budget Alert: You have only %s left in your %s budget!",
		m.money(remaining), category)
}

// BillReminder is the scheduled advance notice for a bill.
func (m Messages) BillReminder(name string, amount decimal.Decimal, daysBefore int) string {
	return fmt.Sprintf("Reminder: Your '%s' bill of %s is due in %d day(s).",
		name, m.money(amount), daysBefore)
}

// BillReopened is sent when a paid bill is marked unpaid again.
func (m Messages) BillReopened(name string, daysUntilDue int, due time.Time, amount decimal.Decimal) string {
	return fmt.Sprintf("Bill Alert: %s is now due in %d days (Due: %s). Amount: %s",
		name, daysUntilDue, due.Format(calendar.DateLayout), m.money(amount))
}
