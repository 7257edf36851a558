package preferences

import (
	"log/slog"
	"net/http"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/types"
	"git.sr.ht/~relay/giftwise-backend/validate"
)

// Resource is the envelope key for preference responses.
const Resource = "preferences"

// Apply merges payload over current and validates the result.
func Apply(current Preferences, payload UpdatePreferencesPayload) (Preferences, error) {
	next := current
	next.Currency = types.Or(payload.Currency, current.Currency)
	next.Timezone = types.Or(payload.Timezone, current.Timezone)
	next.Theme = types.Or(payload.Theme, current.Theme)
	next.Notifications = types.Or(payload.Notifications, current.Notifications)
	next.Language = types.Or(payload.Language, current.Language)

	err := validate.First(
		validate.Currency("currency", next.Currency),
		validate.OneOf("theme", next.Theme, ThemeLight, ThemeDark, ThemeSystem),
	)
	if err != nil {
		return Preferences{}, err
	}

	now := types.Now()
	if next.CreatedAt == "" {
		next.CreatedAt = now
	}
	next.UpdatedAt = now
	return next, nil
}

// HandleGet returns the caller's preferences.
func HandleGet(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		prefs, err := Load(r.Context(), repo, user.ID)
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, prefs)
		return nil
	}
}

// HandleUpdate merges the request body into the caller's preferences.
func HandleUpdate(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		var payload UpdatePreferencesPayload
		if err := gateway.DecodeJSON(r, &payload); err != nil {
			return err
		}

		current, err := Load(r.Context(), repo, user.ID)
		if err != nil {
			return err
		}
		prefs, err := Apply(current, payload)
		if err != nil {
			return err
		}
		if err := repo.Upsert(r.Context(), prefs); err != nil {
			return err
		}

		slog.Info("Preferences updated", "url", r.URL, "user_id", user.ID)
		gw.Respond(w, http.StatusOK, Resource, prefs)
		return nil
	}
}
