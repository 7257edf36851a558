// Package insights derives the dashboard's financial summary from the
// caller's budgets and expenses.
package insights

import (
	"fmt"
	"math"
	"sort"

	"git.sr.ht/~relay/giftwise-backend/budgets"
	"git.sr.ht/~relay/giftwise-backend/expenses"
)

// warningThreshold is the share of a budget (in percent) past which it is flagged.
const warningThreshold = 80.0

// CategorySpending is the expense total for one category.
type CategorySpending struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// BudgetStatus is one budget's utilisation.
type BudgetStatus struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

// Insights is the payload served under "insights".
type Insights struct {
	TotalBudget       float64            `json:"totalBudget"`
	TotalSpent        float64            `json:"totalSpent"`
	TotalRemaining    float64            `json:"totalRemaining"`
	SpentPercentage   float64            `json:"spentPercentage"`
	CategoryBreakdown []CategorySpending `json:"categoryBreakdown"`
	BudgetStatus      []BudgetStatus     `json:"budgetStatus"`
	Recommendations   []string           `json:"recommendations"`
	GeneratedAt       string             `json:"generatedAt"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return round2(part / whole * 100)
}

// Compute summarises budgets and expenses. Spending is the budgets' own
// spent figures plus expenses not booked against any budget, so an expense
// tied to a budget is not counted twice.
func Compute(bs []budgets.Budget, es []expenses.Expense, generatedAt string) Insights {
	in := Insights{
		CategoryBreakdown: []CategorySpending{},
		BudgetStatus:      []BudgetStatus{},
		Recommendations:   []string{},
		GeneratedAt:       generatedAt,
	}

	for _, b := range bs {
		in.TotalBudget += b.Amount
		in.TotalSpent += b.Spent

		status := budgets.StatusOnTrack
		pct := percent(b.Spent, b.Amount)
		switch {
		case b.Spent > b.Amount:
			status = budgets.StatusOverBudget
		case pct >= warningThreshold:
			status = budgets.StatusWarning
		}
		in.BudgetStatus = append(in.BudgetStatus, BudgetStatus{
			ID:         b.ID,
			Name:       b.Name,
			Amount:     round2(b.Amount),
			Spent:      round2(b.Spent),
			Remaining:  round2(b.Amount - b.Spent),
			Percentage: pct,
			Status:     status,
		})
	}

	byCategory := map[string]float64{}
	var expenseTotal float64
	for _, e := range es {
		byCategory[e.Category] += e.Amount
		expenseTotal += e.Amount
		if e.BudgetID == "" {
			in.TotalSpent += e.Amount
		}
	}
	for category, amount := range byCategory {
		in.CategoryBreakdown = append(in.CategoryBreakdown, CategorySpending{
			Category:   category,
			Amount:     round2(amount),
			Percentage: percent(amount, expenseTotal),
		})
	}
	sort.Slice(in.CategoryBreakdown, func(i, j int) bool {
		a, b := in.CategoryBreakdown[i], in.CategoryBreakdown[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		return a.Category < b.Category
	})

	in.SpentPercentage = percent(in.TotalSpent, in.TotalBudget)
	in.TotalBudget = round2(in.TotalBudget)
	in.TotalSpent = round2(in.TotalSpent)
	in.TotalRemaining = round2(in.TotalBudget - in.TotalSpent)
	in.Recommendations = recommend(in)
	return in
}

func recommend(in Insights) []string {
	recs := []string{}
	for _, b := range in.BudgetStatus {
		switch b.Status {
		case budgets.StatusOverBudget:
			recs = append(recs, fmt.Sprintf("%s is over budget by %.2f. Consider moving funds or trimming planned gifts.", b.Name, b.Spent-b.Amount))
		case budgets.StatusWarning:
			recs = append(recs, fmt.Sprintf("%s has used %.0f%% of its budget.", b.Name, b.Percentage))
		}
	}
	if len(in.CategoryBreakdown) > 0 {
		top := in.CategoryBreakdown[0]
		recs = append(recs, fmt.Sprintf("Your largest spending category is %s at %.0f%% of expenses.", top.Category, top.Percentage))
	}
	if in.TotalBudget == 0 {
		recs = append(recs, "Create a budget to start tracking gift spending.")
	}
	return recs
}
