package expenses

import (
	"log/slog"
	"net/http"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/types"
)

// Resource is the envelope key for expense responses.
const Resource = "expenses"

// New applies the default template; the date defaults to today.
func New(payload AddExpensePayload) Expense {
	now := types.Now()
	return Expense{
		ID:          types.NewID(),
		Amount:      types.Or(payload.Amount, 0),
		Currency:    types.Or(payload.Currency, types.DefaultCurrency),
		Description: types.Or(payload.Description, "New Expense"),
		Category:    types.Or(payload.Category, "General"),
		BudgetID:    types.Or(payload.BudgetID, ""),
		GiftID:      types.Or(payload.GiftID, ""),
		Date:        types.Or(payload.Date, types.Today()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HandleAddExpense handles requests to record a new expense.
func HandleAddExpense(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		var payload AddExpensePayload
		if err := gateway.DecodeJSON(r, &payload); err != nil {
			return err
		}

		expense := New(payload)
		if err := repo.Create(r.Context(), user.ID, expense); err != nil {
			return err
		}

		slog.Info("Expense added successfully", "url", r.URL, "user_id", user.ID, "expense_id", expense.ID)
		gw.Respond(w, http.StatusCreated, Resource, expense)
		return nil
	}
}

// HandleGetExpenses returns the caller's expenses.
func HandleGetExpenses(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}
		page, err := gateway.ParsePage(r)
		if err != nil {
			return err
		}

		expenses, err := repo.List(r.Context(), user.ID, page)
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, expenses)
		return nil
	}
}

// HandleGetExpense returns one expense by id.
func HandleGetExpense(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		expense, err := repo.Get(r.Context(), user.ID, r.PathValue("id"))
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, expense)
		return nil
	}
}
