package occasions

import (
	"log/slog"
	"net/http"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/types"
)

// Resource is the envelope key for occasion responses.
const Resource = "occasions"

// New applies the default template; the date defaults to today.
func New(payload CreateOccasionPayload) Occasion {
	now := types.Now()
	return Occasion{
		ID:        types.NewID(),
		Name:      types.Or(payload.Name, "New Occasion"),
		Date:      types.Or(payload.Date, types.Today()),
		Type:      types.Or(payload.Type, "other"),
		PersonID:  types.Or(payload.PersonID, ""),
		Budget:    types.Or(payload.Budget, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HandleList returns the caller's occasions.
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

		occasions, err := repo.List(r.Context(), user.ID, page)
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, occasions)
		return nil
	}
}

// HandleGet returns one occasion by id.
func HandleGet(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		occasion, err := repo.Get(r.Context(), user.ID, r.PathValue("id"))
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, occasion)
		return nil
	}
}

// HandleCreate stores a new occasion built from the request body.
func HandleCreate(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		var payload CreateOccasionPayload
		if err := gateway.DecodeJSON(r, &payload); err != nil {
			return err
		}

		occasion := New(payload)
		if err := repo.Create(r.Context(), user.ID, occasion); err != nil {
			return err
		}

		slog.Info("Occasion created", "url", r.URL, "user_id", user.ID, "occasion_id", occasion.ID)
		gw.Respond(w, http.StatusCreated, Resource, occasion)
		return nil
	}
}
