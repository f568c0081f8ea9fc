package handlers

import (
	"github.com/gin-gonic/gin"
)

// Router groups the API handlers so cmd/api and the integration tests mount
// the same routes.
type Router struct {
	Users          *UserHandler
	Expenses       *ExpenseHandler
	Budgets        *BudgetHandler
	RecurringBills *RecurringBillHandler
	Notifications  *NotificationHandler
}

// Register mounts every route under v1. Users are addressed by ID in the
// path; there is no authentication layer.
func (r *Router) Register(v1 *gin.RouterGroup) {
	users := v1.Group("/users")
	users.POST("", r.Users.CreateUser)
	users.GET("/:userId", r.Users.GetUser)
	users.GET("/:userId/expenses", r.Expenses.GetUserExpenses)
	users.GET("/:userId/budgets", r.Budgets.GetUserBudgets)
	users.GET("/:userId/budgets/active", r.Budgets.GetActiveBudget)
	users.POST("/:userId/budgets/check-alerts", r.Budgets.CheckAlerts)
	users.GET("/:userId/spending", r.Budgets.GetCategorySpending)
	users.GET("/:userId/recurring-bills", r.RecurringBills.GetUserBills)
	users.GET("/:userId/notifications", r.Notifications.GetUserNotifications)
	users.GET("/:userId/notifications/unread", r.Notifications.GetUnreadNotifications)
	users.POST("/:userId/notifications/mark-all-read", r.Notifications.MarkAllRead)
	users.DELETE("/:userId/notifications", r.Notifications.DeleteAllNotifications)

	expenses := v1.Group("/expenses")
	expenses.POST("", r.Expenses.CreateExpense)
	expenses.GET("/:id", r.Expenses.GetExpense)
	expenses.PUT("/:id", r.Expenses.UpdateExpense)
	expenses.DELETE("/:id", r.Expenses.DeleteExpense)
	expenses.POST("/:id/toggle-pin", r.Expenses.TogglePin)

	budgets := v1.Group("/budgets")
	budgets.POST("", r.Budgets.CreateBudget)
	budgets.GET("/:id", r.Budgets.GetBudget)
	budgets.PUT("/:id", r.Budgets.UpdateBudget)
	budgets.DELETE("/:id", r.Budgets.DeleteBudget)
	budgets.GET("/:id/spending", r.Budgets.GetBudgetSpending)

	bills := v1.Group("/recurring-bills")
	bills.POST("", r.RecurringBills.CreateBill)
	bills.GET("", r.RecurringBills.GetAllBills)
	bills.GET("/:id", r.RecurringBills.GetBill)
	bills.PUT("/:id", r.RecurringBills.UpdateBill)
	bills.DELETE("/:id", r.RecurringBills.DeleteBill)
	bills.POST("/:id/mark-paid", r.RecurringBills.MarkPaid)
	bills.POST("/:id/mark-unpaid", r.RecurringBills.MarkUnpaid)

	notifications := v1.Group("/notifications")
	notifications.POST("/:id/mark-read", r.Notifications.MarkRead)
	notifications.POST("/:id/mark-unread", r.Notifications.MarkUnread)
	notifications.DELETE("/:id", r.Notifications.DeleteNotification)
}
