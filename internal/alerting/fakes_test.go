package alerting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

var errUserNotFound = errors.New("user not found")

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

type fakeExpenses struct {
	byOwner map[string][]models.Expense
	err     error
}

func (f *fakeExpenses) FindByOwner(userID string) ([]models.Expense, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byOwner[userID], nil
}

type fakeBudgets struct {
	budgets []models.Budget
}

func (f *fakeBudgets) FindByOwner(userID string) ([]models.Budget, error) {
	var out []models.Budget
	for _, b := range f.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBudgets) FindActiveBudget(userID, category string, on time.Time) (*models.Budget, error) {
	for i := range f.budgets {
		b := &f.budgets[i]
		if b.UserID == userID && b.Category == category && calendar.Within(on, b.StartDate, b.EndDate) {
			return b, nil
		}
	}
	return nil, nil
}

type fakeBills struct {
	bills []models.RecurringBill
	err   error
}

func (f *fakeBills) GetAllBills() ([]models.RecurringBill, error) {
	return f.bills, f.err
}

type fakeUsers map[string]bool

func (f fakeUsers) GetUserByID(id string) (*models.User, error) {
	if !f[id] {
		return nil, errUserNotFound
	}
	u := &models.User{Username: id}
	u.ID = id
	return u, nil
}

type fakeStore struct {
	mu            sync.Mutex
	notifications []models.Notification
	insertErr     error
}

func (f *fakeStore) Insert(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	n.ID = fmt.Sprintf("n-%d", len(f.notifications)+1)
	n.MessageHash = models.HashMessage(n.Message)
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeStore) HasMessageSince(userID, message string, since time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.UserID == userID && n.Message == message && n.CreatedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListCreatedSince(userID string, since time.Time) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID && !n.CreatedAt.Before(since) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeStore) forUser(userID string) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (f *fakeStore) containing(substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.notifications {
		if strings.Contains(n.Message, substr) {
			count++
		}
	}
	return count
}

type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) PublishNotification(_ context.Context, n *models.Notification) error {
	f.published = append(f.published, n.ID)
	return f.err
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	d, err := calendar.Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func intPtr(v int) *int { return &v }

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

// env wires the alerting components over in-memory fakes.
type env struct {
	clock     *stubClock
	users     fakeUsers
	expenses  *fakeExpenses
	budgets   *fakeBudgets
	bills     *fakeBills
	store     *fakeStore
	publisher *fakePublisher
	dedup     *Deduplicator
	sink      *Sink
	checker   *BudgetChecker
	scheduler *BillReminderScheduler
}

func newEnv(now time.Time, userIDs ...string) *env {
	e := &env{
		clock:     &stubClock{now: now},
		users:     fakeUsers{},
		expenses:  &fakeExpenses{byOwner: map[string][]models.Expense{}},
		budgets:   &fakeBudgets{},
		bills:     &fakeBills{},
		store:     &fakeStore{},
		publisher: &fakePublisher{},
	}
	for _, id := range userIDs {
		e.users[id] = true
	}

	messages := Messages{CurrencySymbol: DefaultCurrencySymbol}
	e.dedup = NewDeduplicator(e.store, e.clock, DefaultDedupWindow)
	e.sink = NewSink(e.users, e.store, e.dedup, e.clock, e.publisher)
	e.checker = NewBudgetChecker(e.users, e.budgets, NewSpendAggregator(e.expenses),
		NewEvaluator(DefaultApproachingRatio, messages), e.sink)
	e.scheduler = NewBillReminderScheduler(e.bills, e.dedup, e.sink, e.clock, messages)
	return e
}

func (e *env) addExpense(userID, category, amount, day string) {
	exp := models.Expense{UserID: userID, Category: category, Amount: money(amount), Date: date(day)}
	exp.ID = fmt.Sprintf("e-%d", len(e.expenses.byOwner[userID])+1)
	e.expenses.byOwner[userID] = append(e.expenses.byOwner[userID], exp)
}
