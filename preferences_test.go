package main_test

import (
	"net/http"
	"testing"

	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/preferences"
	"git.sr.ht/~relay/giftwise-backend/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPreferences(t *testing.T) {
	env := testutil.SetupTestEnvironment(t)
	defer env.TearDownDB()

	get := func(t *testing.T) preferences.Preferences {
		t.Helper()
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/preferences", "", nil))
		testutil.AssertStatusCode(t, rr, http.StatusOK)
		var resp testutil.Envelope[preferences.Preferences]
		testutil.DecodeJSONResponse(t, rr, &resp)
		return resp.Data
	}

	t.Run("Defaults", func(t *testing.T) {
		assert.Equal(t, preferences.Defaults(identity.DemoUserID), get(t))
	})

	t.Run("UpdateKeepsExplicitFalse", func(t *testing.T) {
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewRawRequest(t, http.MethodPut, "/api/preferences", `{"notifications":false,"theme":"dark"}`))
		testutil.AssertStatusCode(t, rr, http.StatusOK)
		var resp testutil.Envelope[preferences.Preferences]
		testutil.DecodeJSONResponse(t, rr, &resp)
		assert.False(t, resp.Data.Notifications)
		assert.Equal(t, preferences.ThemeDark, resp.Data.Theme)
		assert.Equal(t, "USD", resp.Data.Currency)
		assert.NotEmpty(t, resp.Data.UpdatedAt)

		stored := get(t)
		assert.False(t, stored.Notifications)
		assert.Equal(t, preferences.ThemeDark, stored.Theme)
		assert.Equal(t, resp.Data.CreatedAt, stored.CreatedAt)
	})

	t.Run("PartialUpdateMerges", func(t *testing.T) {
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewRawRequest(t, http.MethodPut, "/api/preferences", `{"currency":"EUR"}`))
		testutil.AssertStatusCode(t, rr, http.StatusOK)

		stored := get(t)
		assert.Equal(t, "EUR", stored.Currency)
		assert.Equal(t, preferences.ThemeDark, stored.Theme)
		assert.False(t, stored.Notifications)
	})

	invalid := []struct {
		name    string
		body    string
		message string
	}{
		{"LowercaseCurrency", `{"currency":"usd"}`, "currency must be a 3-letter uppercase currency code"},
		{"ShortCurrency", `{"currency":"EU"}`, "currency must be a 3-letter uppercase currency code"},
		{"UnknownTheme", `{"theme":"blue"}`, "theme must be one of light, dark, system"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewRawRequest(t, http.MethodPut, "/api/preferences", tc.body))
			testutil.AssertStatusCode(t, rr, http.StatusBadRequest)
			var body testutil.MessageBody
			testutil.DecodeJSONResponse(t, rr, &body)
			assert.Equal(t, tc.message, body.Message)
		})
	}

	// A rejected update leaves the stored preferences alone.
	assert.Equal(t, "EUR", get(t).Currency)
}
