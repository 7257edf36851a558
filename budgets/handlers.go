package budgets

import (
	"log/slog"
	"math"
	"net/http"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/types"
)

// Resource is the envelope key for budget responses.
const Resource = "budgets"

// New applies the default template. Amount and spent are stored in cents
// precision and remaining is computed from those effective values, whether
// they were supplied or defaulted.
func New(payload CreateBudgetPayload) Budget {
	amount := roundCents(types.Or(payload.Amount, 0))
	spent := roundCents(types.Or(payload.Spent, 0))
	now := types.Now()
	return Budget{
		ID:        types.NewID(),
		Name:      types.Or(payload.Name, "New Budget"),
		Amount:    amount,
		Currency:  types.Or(payload.Currency, types.DefaultCurrency),
		Period:    types.Or(payload.Period, "monthly"),
		Type:      types.Or(payload.Type, "general"),
		Spent:     spent,
		Remaining: roundCents(amount - spent),
		Status:    types.Or(payload.Status, StatusOnTrack),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// HandleList returns the caller's budgets.
func HandleList(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}
		page, err := gateway.ParsePage(r)
		if err != nil {
			return err
		}

		budgets, err := repo.List(r.Context(), user.ID, page)
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, budgets)
		return nil
	}
}

// HandleGet returns one budget by id.
func HandleGet(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		budget, err := repo.Get(r.Context(), user.ID, r.PathValue("id"))
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, budget)
		return nil
	}
}

// HandleCreate stores a new budget built from the request body.
func HandleCreate(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		var payload CreateBudgetPayload
		if err := gateway.DecodeJSON(r, &payload); err != nil {
			return err
		}

		budget := New(payload)
		if err := repo.Create(r.Context(), user.ID, budget); err != nil {
			return err
		}

		slog.Info("Budget created", "url", r.URL, "user_id", user.ID, "budget_id", budget.ID, "amount", budget.Amount)
		gw.Respond(w, http.StatusCreated, Resource, budget)
		return nil
	}
}
