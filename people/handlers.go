package people

import (
	"log/slog"
	"net/http"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/types"
)

// Resource is the envelope key for people responses.
const Resource = "people"

// New applies the default template under the supplied fields.
func New(payload CreatePersonPayload) Person {
	now := types.Now()
	return Person{
		ID:           types.NewID(),
		Name:         types.Or(payload.Name, "New Person"),
		Email:        types.Or(payload.Email, ""),
		Relationship: types.Or(payload.Relationship, ""),
		Birthday:     types.Or(payload.Birthday, ""),
		Notes:        types.Or(payload.Notes, ""),
		Avatar:       types.Or(payload.Avatar, types.DefaultAvatar),
		FamilyID:     types.Or(payload.FamilyID, ""),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HandleList returns the caller's people.
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

		people, err := repo.List(r.Context(), user.ID, page)
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, people)
		return nil
	}
}

// HandleGet returns one person by id.
func HandleGet(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		person, err := repo.Get(r.Context(), user.ID, r.PathValue("id"))
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, person)
		return nil
	}
}

// HandleCreate stores a new person built from the request body.
func HandleCreate(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		var payload CreatePersonPayload
		if err := gateway.DecodeJSON(r, &payload); err != nil {
			return err
		}

		person := New(payload)
		if err := repo.Create(r.Context(), user.ID, person); err != nil {
			return err
		}

		slog.Info("Person created", "url", r.URL, "user_id", user.ID, "person_id", person.ID)
		gw.Respond(w, http.StatusCreated, Resource, person)
		return nil
	}
}
