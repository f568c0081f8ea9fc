package alerting

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalSpending(t *testing.T) {
	e := newEnv(date("2024-01-15"), "u1", "u2")
	e.addExpense("u1", "Food", "400.00", "2024-01-01")
	e.addExpense("u1", "Food", "350.50", "2024-01-31")
	e.addExpense("u1", "Food", "99.99", "2023-12-31")
	e.addExpense("u1", "Food", "10.00", "2024-02-01")
	e.addExpense("u1", "food", "75.00", "2024-01-10")
	e.addExpense("u1", "Travel", "500.00", "2024-01-10")
	e.addExpense("u2", "Food", "123.00", "2024-01-10")

	agg := NewSpendAggregator(e.expenses)

	t.Run("sums exact category within closed range", func(t *testing.T) {
		total, err := agg.TotalSpending("u1", "Food", date("2024-01-01"), date("2024-01-31"))
		require.NoError(t, err)
		assert.True(t, total.Equal(money("750.50")), "total = %s", total)
	})

	t.Run("category match is case sensitive", func(t *testing.T) {
		total, err := agg.TotalSpending("u1", "food", date("2024-01-01"), date("2024-01-31"))
		require.NoError(t, err)
		assert.True(t, total.Equal(money("75")))
	})

	t.Run("no match is zero", func(t *testing.T) {
		total, err := agg.TotalSpending("u1", "Rent", date("2024-01-01"), date("2024-01-31"))
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("store error propagates", func(t *testing.T) {
		failing := NewSpendAggregator(&fakeExpenses{err: errors.New("db down")})
		_, err := failing.TotalSpending("u1", "Food", date("2024-01-01"), date("2024-01-31"))
		assert.Error(t, err)
	})
}

func TestTotalSpendingIsExactRegardlessOfOrder(t *testing.T) {
	e := newEnv(date("2024-01-15"), "u1")
	want := decimal.Zero
	for i := 0; i < 1000; i++ {
		amount := "0.10"
		if i%3 == 0 {
			amount = "0.01"
		}
		e.addExpense("u1", "Food", amount, "2024-01-15")
		want = want.Add(money(amount))
	}
	require.True(t, want.Equal(money("69.94")), "fixture sum = %s", want)

	agg := NewSpendAggregator(e.expenses)
	total, err := agg.TotalSpending("u1", "Food", date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)
	assert.True(t, total.Equal(want), "total = %s", total)

	rng := rand.New(rand.NewSource(7))
	expenses := e.expenses.byOwner["u1"]
	rng.Shuffle(len(expenses), func(i, j int) { expenses[i], expenses[j] = expenses[j], expenses[i] })

	shuffled, err := agg.TotalSpending("u1", "Food", date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)
	assert.True(t, shuffled.Equal(want), "shuffled total = %s", shuffled)
}
