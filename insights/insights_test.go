package insights

import (
	"testing"

	"git.sr.ht/~relay/giftwise-backend/budgets"
	"git.sr.ht/~relay/giftwise-backend/expenses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEmpty(t *testing.T) {
	in := Compute(nil, nil, "2025-01-01T00:00:00.000Z")

	assert.Zero(t, in.TotalBudget)
	assert.Zero(t, in.SpentPercentage)
	assert.NotNil(t, in.CategoryBreakdown)
	assert.NotNil(t, in.BudgetStatus)
	assert.Equal(t, []string{"Create a budget to start tracking gift spending."}, in.Recommendations)
	assert.Equal(t, "2025-01-01T00:00:00.000Z", in.GeneratedAt)
}

func TestComputeStatuses(t *testing.T) {
	bs := []budgets.Budget{
		{ID: "a", Name: "Fine", Amount: 100, Spent: 79.99},
		{ID: "b", Name: "Close", Amount: 100, Spent: 80},
		{ID: "c", Name: "Blown", Amount: 100, Spent: 120.5},
	}
	in := Compute(bs, nil, "")

	require.Len(t, in.BudgetStatus, 3)
	assert.Equal(t, budgets.StatusOnTrack, in.BudgetStatus[0].Status)
	assert.Equal(t, budgets.StatusWarning, in.BudgetStatus[1].Status)
	assert.Equal(t, budgets.StatusOverBudget, in.BudgetStatus[2].Status)
	assert.Equal(t, -20.5, in.BudgetStatus[2].Remaining)
	assert.Contains(t, in.Recommendations, "Blown is over budget by 20.50. Consider moving funds or trimming planned gifts.")
	assert.Equal(t, 280.49, in.TotalSpent)
}

func TestComputeUnlinkedExpensesCountOnce(t *testing.T) {
	bs := []budgets.Budget{{ID: "b", Name: "B", Amount: 200, Spent: 50}}
	es := []expenses.Expense{
		{Amount: 50, Category: "Toys", BudgetID: "b"},
		{Amount: 25, Category: "Cards"},
		{Amount: 25, Category: "Toys"},
	}
	in := Compute(bs, es, "")

	assert.Equal(t, 100.0, in.TotalSpent)
	assert.Equal(t, 100.0, in.TotalRemaining)
	assert.Equal(t, 50.0, in.SpentPercentage)
	assert.Equal(t, []CategorySpending{
		{Category: "Toys", Amount: 75, Percentage: 75},
		{Category: "Cards", Amount: 25, Percentage: 25},
	}, in.CategoryBreakdown)
}

func TestComputeBreakdownTiesSortByName(t *testing.T) {
	es := []expenses.Expense{
		{Amount: 10, Category: "Zeta"},
		{Amount: 10, Category: "Alpha"},
	}
	in := Compute(nil, es, "")

	require.Len(t, in.CategoryBreakdown, 2)
	assert.Equal(t, "Alpha", in.CategoryBreakdown[0].Category)
	assert.Equal(t, 50.0, in.CategoryBreakdown[0].Percentage)
	// No budgets: nothing to divide spending by.
	assert.Zero(t, in.SpentPercentage)
}
