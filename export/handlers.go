package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"git.sr.ht/~relay/giftwise-backend/budgets"
	"git.sr.ht/~relay/giftwise-backend/expenses"
	"git.sr.ht/~relay/giftwise-backend/families"
	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/gifts"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/occasions"
	"git.sr.ht/~relay/giftwise-backend/people"
	"git.sr.ht/~relay/giftwise-backend/preferences"
	"git.sr.ht/~relay/giftwise-backend/profile"
	"git.sr.ht/~relay/giftwise-backend/types"
)

// Sources are the repositories an export reads from.
type Sources struct {
	People      people.Repository
	Gifts       gifts.Repository
	Occasions   occasions.Repository
	Budgets     budgets.Repository
	Expenses    expenses.Repository
	Families    families.Repository
	Preferences preferences.Repository
	Profiles    profile.Repository
}

// FullExport defines the overall structure for the exported data file.
type FullExport struct {
	ExportedAt  string                  `json:"exportedAt"`
	User        types.User              `json:"user"`
	Profile     profile.Profile         `json:"profile"`
	Preferences preferences.Preferences `json:"preferences"`
	People      []people.Person         `json:"people"`
	Gifts       []gifts.Gift            `json:"gifts"`
	Occasions   []occasions.Occasion    `json:"occasions"`
	Budgets     []budgets.Budget        `json:"budgets"`
	Expenses    []expenses.Expense      `json:"expenses"`
	Families    []families.Family       `json:"families"`
}

// Collect gathers everything the user owns.
func Collect(r *http.Request, src Sources, user types.User) (FullExport, error) {
	ctx := r.Context()
	all := gateway.Page{}
	out := FullExport{ExportedAt: types.Now(), User: user}

	var err error
	if out.Profile, err = profile.Load(ctx, src.Profiles, user); err != nil {
		return FullExport{}, fmt.Errorf("export profile: %w", err)
	}
	if out.Preferences, err = preferences.Load(ctx, src.Preferences, user.ID); err != nil {
		return FullExport{}, fmt.Errorf("export preferences: %w", err)
	}
	if out.People, err = src.People.List(ctx, user.ID, all); err != nil {
		return FullExport{}, fmt.Errorf("export people: %w", err)
	}
	if out.Gifts, err = src.Gifts.List(ctx, user.ID, all); err != nil {
		return FullExport{}, fmt.Errorf("export gifts: %w", err)
	}
	if out.Occasions, err = src.Occasions.List(ctx, user.ID, all); err != nil {
		return FullExport{}, fmt.Errorf("export occasions: %w", err)
	}
	if out.Budgets, err = src.Budgets.List(ctx, user.ID, all); err != nil {
		return FullExport{}, fmt.Errorf("export budgets: %w", err)
	}
	if out.Expenses, err = src.Expenses.List(ctx, user.ID, all); err != nil {
		return FullExport{}, fmt.Errorf("export expenses: %w", err)
	}
	if out.Families, err = src.Families.List(ctx, user.ID, all); err != nil {
		return FullExport{}, fmt.Errorf("export families: %w", err)
	}
	return out, nil
}

// HandleExportAllData generates a JSON export of all data for the caller.
func HandleExportAllData(src Sources) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := identity.Require(r.Context())
		if err != nil {
			return err
		}

		slog.Info("Starting data export process", "user_id", user.ID)
		data, err := Collect(r, src, user)
		if err != nil {
			return err
		}

		filename := fmt.Sprintf("giftwise_export_%s.json", time.Now().UTC().Format("20060102_150405"))
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		gateway.WriteJSON(w, http.StatusOK, data)

		slog.Info("Data export completed successfully", "user_id", user.ID, "filename", filename)
		return nil
	}
}
