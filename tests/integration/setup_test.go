package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rohitdhavare/my-expenses-tracker/internal/alerting"
	"github.com/rohitdhavare/my-expenses-tracker/internal/handlers"
	"github.com/rohitdhavare/my-expenses-tracker/internal/logger"
	"github.com/rohitdhavare/my-expenses-tracker/internal/middleware"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
	"github.com/rohitdhavare/my-expenses-tracker/internal/services"
	"github.com/rohitdhavare/my-expenses-tracker/internal/testutil"
	"github.com/rohitdhavare/my-expenses-tracker/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB        *gorm.DB
	Router    *gin.Engine
	Clock     *testutil.FixedClock
	Scheduler *alerting.BillReminderScheduler
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integration%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Budget{},
		&models.Expense{},
		&models.RecurringBill{},
		&models.Notification{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite and a clock fixed at now.
func setupApp(t *testing.T, now time.Time) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	clk := testutil.NewFixedClock(now)
	messages := alerting.Messages{CurrencySymbol: alerting.DefaultCurrencySymbol}

	// Services
	userService := services.NewUserService(db)
	notificationService := services.NewNotificationService(db)
	dedup := alerting.NewDeduplicator(notificationService, clk, alerting.DefaultDedupWindow)
	sink := alerting.NewSink(userService, notificationService, dedup, clk, nil)

	aggregator := alerting.NewSpendAggregator(services.NewExpenseFinder(db))
	evaluator := alerting.NewEvaluator(alerting.DefaultApproachingRatio, messages)
	budgetService := services.NewBudgetService(db, aggregator, evaluator)
	checker := alerting.NewBudgetChecker(userService, budgetService, aggregator, evaluator, sink)

	expenseService := services.NewExpenseService(db, clk, checker)
	billService := services.NewRecurringBillService(db, clk, sink, messages)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	routes := &handlers.Router{
		Users:          handlers.NewUserHandler(userService),
		Expenses:       handlers.NewExpenseHandler(expenseService),
		Budgets:        handlers.NewBudgetHandler(budgetService, checker, clk),
		RecurringBills: handlers.NewRecurringBillHandler(billService),
		Notifications:  handlers.NewNotificationHandler(notificationService),
	}
	routes.Register(router.Group("/api/v1"))

	return &testApp{
		DB:        db,
		Router:    router,
		Clock:     clk,
		Scheduler: alerting.NewBillReminderScheduler(billService, dedup, sink, clk, messages),
	}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// mustStatus fails the test unless rec has the wanted status.
func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// createUser creates a user and returns its ID.
func (app *testApp) createUser(t *testing.T, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":"%s@test.com","full_name":"Test User"}`, username, username)
	rec := app.request("POST", "/api/v1/users", body)
	mustStatus(t, rec, http.StatusCreated)
	return parseJSON(t, rec)["user"].(map[string]interface{})["id"].(string)
}

// createBudget creates a budget and returns its ID.
func (app *testApp) createBudget(t *testing.T, userID, category, limit, start, end string) string {
	t.Helper()
	body := fmt.Sprintf(`{"user_id":%q,"category":%q,"limit_amount":%q,"start_date":%q,"end_date":%q}`,
		userID, category, limit, start, end)
	rec := app.request("POST", "/api/v1/budgets", body)
	mustStatus(t, rec, http.StatusCreated)
	return parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(string)
}

// createExpense records an expense through the API.
func (app *testApp) createExpense(t *testing.T, userID, category, amount, date string) {
	t.Helper()
	body := fmt.Sprintf(`{"user_id":%q,"title":"Spend","category":%q,"amount":%q,"date":%q}`,
		userID, category, amount, date)
	mustStatus(t, app.request("POST", "/api/v1/expenses", body), http.StatusCreated)
}

// notifications returns the messages of the user's notifications, newest first.
func (app *testApp) notifications(t *testing.T, userID string) []string {
	t.Helper()
	rec := app.request("GET", "/api/v1/users/"+userID+"/notifications", "")
	mustStatus(t, rec, http.StatusOK)

	var messages []string
	for _, n := range parseJSON(t, rec)["notifications"].([]interface{}) {
		messages = append(messages, n.(map[string]interface{})["message"].(string))
	}
	return messages
}
