package profile

import (
	"log/slog"
	"net/http"
	"strings"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/types"
	"git.sr.ht/~relay/giftwise-backend/validate"
)

// Resource is the envelope key for profile responses.
const Resource = "profile"

// Apply merges payload over current and validates the result.
func Apply(current Profile, payload UpdateProfilePayload) (Profile, error) {
	next := current
	next.Name = strings.TrimSpace(types.Or(payload.Name, current.Name))
	next.Email = strings.TrimSpace(types.Or(payload.Email, current.Email))

	err := validate.First(
		validate.MinLength("name", next.Name, 2),
		validate.Email("email", next.Email),
	)
	if err != nil {
		return Profile{}, err
	}

	now := types.Now()
	if next.CreatedAt == "" {
		next.CreatedAt = now
	}
	next.UpdatedAt = now
	return next, nil
}

// HandleGet returns the caller's profile.
func HandleGet(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		p, err := Load(r.Context(), repo, user)
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, p)
		return nil
	}
}

// HandleUpdate merges the request body into the caller's profile.
func HandleUpdate(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		var payload UpdateProfilePayload
		if err := gateway.DecodeJSON(r, &payload); err != nil {
			return err
		}

		current, err := Load(r.Context(), repo, user)
		if err != nil {
			return err
		}
		p, err := Apply(current, payload)
		if err != nil {
			return err
		}
		if err := repo.Upsert(r.Context(), p); err != nil {
			return err
		}

		slog.Info("Profile updated", "url", r.URL, "user_id", user.ID)
		gw.Respond(w, http.StatusOK, Resource, p)
		return nil
	}
}
