package gifts

import (
	"log/slog"
	"net/http"

	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/types"
	"git.sr.ht/~relay/giftwise-backend/validate"
)

// Resource is the envelope key for gift responses.
const Resource = "gifts"

// New validates the payload and applies the default template under it.
func New(payload CreateGiftPayload) (Gift, error) {
	status := types.Or(payload.Status, StatusPlanned)
	if err := validate.OneOf("status", status, StatusPlanned, StatusPurchased, StatusWrapped, StatusGiven); err != nil {
		return Gift{}, err
	}

	now := types.Now()
	return Gift{
		ID:          types.NewID(),
		Name:        types.Or(payload.Name, "New Gift"),
		Price:       types.Or(payload.Price, 0),
		Currency:    types.Or(payload.Currency, types.DefaultCurrency),
		Status:      status,
		RecipientID: types.Or(payload.RecipientID, ""),
		OccasionID:  types.Or(payload.OccasionID, ""),
		Notes:       types.Or(payload.Notes, ""),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// HandleList returns the caller's gifts.
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

		gifts, err := repo.List(r.Context(), user.ID, page)
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, gifts)
		return nil
	}
}

// HandleGet returns one gift by id.
func HandleGet(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		gift, err := repo.Get(r.Context(), user.ID, r.PathValue("id"))
		if err != nil {
			return err
		}
		gw.Respond(w, http.StatusOK, Resource, gift)
		return nil
	}
}

// HandleCreate stores a new gift built from the request body.
func HandleCreate(gw *gateway.Gateway, repo Repository) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		var payload CreateGiftPayload
		if err := gateway.DecodeJSON(r, &payload); err != nil {
			return err
		}

		gift, err := New(payload)
		if err != nil {
			return err
		}
		if err := repo.Create(r.Context(), user.ID, gift); err != nil {
			return err
		}

		slog.Info("Gift created", "url", r.URL, "user_id", user.ID, "gift_id", gift.ID)
		gw.Respond(w, http.StatusCreated, Resource, gift)
		return nil
	}
}
