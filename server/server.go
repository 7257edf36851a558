// Package server assembles the HTTP handler: routes, repositories and the
// middleware stack.
package server

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"git.sr.ht/~relay/giftwise-backend/auth"
	"git.sr.ht/~relay/giftwise-backend/budgets"
	"git.sr.ht/~relay/giftwise-backend/config"
	"git.sr.ht/~relay/giftwise-backend/expenses"
	"git.sr.ht/~relay/giftwise-backend/export"
	"git.sr.ht/~relay/giftwise-backend/families"
	"git.sr.ht/~relay/giftwise-backend/gateway"
	"git.sr.ht/~relay/giftwise-backend/gifts"
	"git.sr.ht/~relay/giftwise-backend/insights"
	"git.sr.ht/~relay/giftwise-backend/occasions"
	"git.sr.ht/~relay/giftwise-backend/people"
	"git.sr.ht/~relay/giftwise-backend/preferences"
	"git.sr.ht/~relay/giftwise-backend/profile"
)

// Repositories groups the storage behind every resource.
type Repositories struct {
	Users       auth.UserStore
	People      people.Repository
	Gifts       gifts.Repository
	Occasions   occasions.Repository
	Budgets     budgets.Repository
	Expenses    expenses.Repository
	Families    families.Repository
	Preferences preferences.Repository
	Profiles    profile.Repository
}

// NewRepositories builds the SQL-backed repositories on db.
func NewRepositories(db *sql.DB) Repositories {
	return Repositories{
		Users:       auth.NewUsers(db),
		People:      people.NewRepository(db),
		Gifts:       gifts.NewRepository(db),
		Occasions:   occasions.NewRepository(db),
		Budgets:     budgets.NewRepository(db),
		Expenses:    expenses.NewRepository(db),
		Families:    families.NewRepository(db),
		Preferences: preferences.NewRepository(db),
		Profiles:    profile.NewRepository(db),
	}
}

// New returns the fully wrapped handler for the API.
func New(db *sql.DB, cfg config.Config) (http.Handler, error) {
	envelopes := gateway.LegacyEnvelopes()
	switch cfg.EnvelopeMode {
	case "", config.EnvelopeLegacy:
	case config.EnvelopeUniform:
		envelopes = gateway.UniformEnvelopes()
	default:
		return nil, fmt.Errorf("unknown envelope mode %q", cfg.EnvelopeMode)
	}

	gw := gateway.New(envelopes, cfg.Development())
	tokens := auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL)
	repos := NewRepositories(db)

	mux := http.NewServeMux()
	register(mux, gw, tokens, repos, db)

	slog.Info("HTTP routes registered", "envelope_mode", cfg.EnvelopeMode, "rate_limit_rps", cfg.RateLimitRPS)
	return gateway.Chain(mux,
		gateway.CORSHeaders,
		gateway.BrowserCORS(),
		gateway.RequestID,
		gateway.Logging,
		gw.Recover,
		gateway.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		tokens.Identity,
	), nil
}

func register(mux *http.ServeMux, gw *gateway.Gateway, tokens *auth.Tokens, repos Repositories, db *sql.DB) {
	gw.Route(mux, "/api/auth/login", gateway.Methods{
		http.MethodPost: auth.HandleLogin(repos.Users, tokens),
	})
	gw.Route(mux, "/api/auth/register", gateway.Methods{
		http.MethodPost: auth.HandleRegister(repos.Users, tokens),
	})
	gw.Route(mux, "/api/user/validate", gateway.Methods{
		http.MethodGet: auth.HandleValidate(tokens, repos.Profiles),
	})

	gw.Route(mux, "/api/people", gateway.Methods{
		http.MethodGet:  people.HandleList(gw, repos.People),
		http.MethodPost: people.HandleCreate(gw, repos.People),
	})
	gw.Route(mux, "/api/people/{id}", gateway.Methods{
		http.MethodGet: people.HandleGet(gw, repos.People),
	})

	gw.Route(mux, "/api/gifts", gateway.Methods{
		http.MethodGet:  gifts.HandleList(gw, repos.Gifts),
		http.MethodPost: gifts.HandleCreate(gw, repos.Gifts),
	})
	gw.Route(mux, "/api/gifts/{id}", gateway.Methods{
		http.MethodGet: gifts.HandleGet(gw, repos.Gifts),
	})

	gw.Route(mux, "/api/occasions", gateway.Methods{
		http.MethodGet:  occasions.HandleList(gw, repos.Occasions),
		http.MethodPost: occasions.HandleCreate(gw, repos.Occasions),
	})
	gw.Route(mux, "/api/occasions/{id}", gateway.Methods{
		http.MethodGet: occasions.HandleGet(gw, repos.Occasions),
	})

	gw.Route(mux, "/api/budgets", gateway.Methods{
		http.MethodGet:  budgets.HandleList(gw, repos.Budgets),
		http.MethodPost: budgets.HandleCreate(gw, repos.Budgets),
	})
	gw.Route(mux, "/api/budgets/{id}", gateway.Methods{
		http.MethodGet: budgets.HandleGet(gw, repos.Budgets),
	})

	gw.Route(mux, "/api/expenses", gateway.Methods{
		http.MethodGet:  expenses.HandleGetExpenses(gw, repos.Expenses),
		http.MethodPost: expenses.HandleAddExpense(gw, repos.Expenses),
	})
	gw.Route(mux, "/api/expenses/{id}", gateway.Methods{
		http.MethodGet: expenses.HandleGetExpense(gw, repos.Expenses),
	})

	gw.Route(mux, "/api/families", gateway.Methods{
		http.MethodGet:  families.HandleList(gw, repos.Families),
		http.MethodPost: families.HandleCreate(gw, repos.Families),
	})
	gw.Route(mux, "/api/families/{id}", gateway.Methods{
		http.MethodGet: families.HandleGet(gw, repos.Families),
	})

	gw.Route(mux, "/api/preferences", gateway.Methods{
		http.MethodGet: preferences.HandleGet(gw, repos.Preferences),
		http.MethodPut: preferences.HandleUpdate(gw, repos.Preferences),
	})
	gw.Route(mux, "/api/profile", gateway.Methods{
		http.MethodGet: profile.HandleGet(gw, repos.Profiles),
		http.MethodPut: profile.HandleUpdate(gw, repos.Profiles),
	})

	gw.Route(mux, "/api/financial-insights", gateway.Methods{
		http.MethodGet: insights.HandleGetInsights(repos.Budgets, repos.Expenses),
	})
	gw.Route(mux, "/api/export", gateway.Methods{
		http.MethodGet: export.HandleExportAllData(export.Sources{
			People:      repos.People,
			Gifts:       repos.Gifts,
			Occasions:   repos.Occasions,
			Budgets:     repos.Budgets,
			Expenses:    repos.Expenses,
			Families:    repos.Families,
			Preferences: repos.Preferences,
			Profiles:    repos.Profiles,
		}),
	})
	gw.Route(mux, "/healthz", gateway.Methods{
		http.MethodGet: handleHealth(db),
	})

	mux.Handle("/", gw.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		gateway.WriteMessage(w, http.StatusNotFound, "Not found")
		return nil
	}))
}

func handleHealth(db *sql.DB) gateway.Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		if err := db.PingContext(r.Context()); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		gateway.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return nil
	}
}
