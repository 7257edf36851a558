package families

import (
	"log/slog"
	"net/http"
	"strings"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/types"
	"git.sr.ht/~relay/giftwise-backend/validate"
)

// Resource is the envelope key for family responses.
const Resource = "families"

// New validates the payload and builds a family with creator as its only
// member and admin. The name is stored trimmed.
func New(payload CreateFamilyPayload, creator types.User) (Family, error) {
	name := strings.TrimSpace(types.Or(payload.Name, ""))
	if err := validate.MinLength("name", name, 2); err != nil {
		return Family{}, err
	}

	now := types.Now()
	return Family{
		ID:          types.NewID(),
		Name:        name,
		Description: types.Or(payload.Description, ""),
		CreatedBy:   creator.ID,
		Members: []Member{{
			UserID:   creator.ID,
			Name:     creator.Name,
			Email:    creator.Email,
			Role:     RoleAdmin,
			JoinedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HandleList returns the caller's families.
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

		families, err := repo.List(r.Context(), user.ID, page)
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, families)
		return nil
	}
}

// HandleGet returns one family by id.
func HandleGet(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		family, err := repo.Get(r.Context(), user.ID, r.PathValue("id"))
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, family)
		return nil
	}
}

// HandleCreate stores a new family built from the request body.
func HandleCreate(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		var payload CreateFamilyPayload
		if err := gateway.DecodeJSON(r, &payload); err != nil {
			return err
		}

		family, err := New(payload, user)
		if err != nil {
			return err
		}
		if err := repo.Create(r.Context(), family); err != nil {
			return err
		}

		slog.Info("Family created", "url", r.URL, "user_id", user.ID, "family_id", family.ID)
		gw.Respond(w, http.StatusCreated, Resource, family)
		return nil
	}
}
