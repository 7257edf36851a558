package insights

import (
	"net/http"

	"git.sr.ht/~relay/giftwise-backend/budgets"
	"git.sr.ht/~relay/giftwise-backend/expenses"
	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/types"
)

// HandleGetInsights computes the caller's financial insights.
func HandleGetInsights(budgetRepo budgets.Repository, expenseRepo expenses.Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		bs, err := budgetRepo.List(r.Context(), user.ID, gateway.Page{})
		if err != nil {
			return err
		}
		es, err := expenseRepo.List(r.Context(), user.ID, gateway.Page{})
		if err != nil {
			return err
		}

		gateway.WriteJSON(w, http.StatusOK, map[string]any{
			"insights": Compute(bs, es, types.Now()),
		})
		return nil
	}
}
