package main_test

import (
	"net/http"
	"testing"

	"git.sr.ht/~relay/giftwise-backend/export"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExportAllData tests the GET /api/export endpoint.
func TestExportAllData(t *testing.T) {
	env := testutil.SetupTestEnvironment(t)
	defer env.TearDownDB()

	// --- Setup Additional Test Data ---
	rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewRawRequest(t, http.MethodPut, "/api/preferences", `{"theme":"light","notifications":false}`))
	testutil.AssertStatusCode(t, rr, http.StatusOK)
	rr = testutil.ExecuteRequest(t, env.Handler, testutil.NewRawRequest(t, http.MethodPost, "/api/gifts", `{"name":"Candle","price":12}`))
	testutil.AssertStatusCode(t, rr, http.StatusCreated)

	// --- Execute Export Request ---
	req := testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/export", env.AuthToken, nil)
	rr = testutil.ExecuteRequest(t, env.Handler, req)

	// --- Assertions ---
	testutil.AssertStatusCode(t, rr, http.StatusOK)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename=giftwise_export_\d{8}_\d{6}\.json$`, rr.Header().Get("Content-Disposition"))

	var data export.FullExport
	testutil.DecodeJSONResponse(t, rr, &data)

	assert.NotEmpty(t, data.ExportedAt)
	assert.Equal(t, identity.DemoUserID, data.User.ID)
	assert.Equal(t, identity.DemoUserEmail, data.Profile.Email)
	assert.Equal(t, "light", data.Preferences.Theme)
	assert.False(t, data.Preferences.Notifications)
	assert.Len(t, data.People, 2)
	require.Len(t, data.Gifts, 3)
	assert.Equal(t, "Candle", data.Gifts[2].Name)
	assert.Len(t, data.Occasions, 2)
	assert.Len(t, data.Budgets, 2)
	assert.Len(t, data.Expenses, 3)
	require.Len(t, data.Families, 1)
	assert.Len(t, data.Families[0].Members, 1)
}

// TestExportEmptyUser checks an account with no data exports empty lists.
func TestExportEmptyUser(t *testing.T) {
	env := testutil.SetupTestEnvironment(t)
	defer env.TearDownDB()

	rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewRawRequest(t, http.MethodPost, "/api/auth/register", `{"name":"Fresh","email":"fresh@example.com","password":"pw"}`))
	testutil.AssertStatusCode(t, rr, http.StatusCreated)
	var reg struct {
		Session struct {
			AccessToken string `json:"access_token"`
		} `json:"session"`
	}
	testutil.DecodeJSONResponse(t, rr, &reg)

	rr = testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/export", reg.Session.AccessToken, nil))
	testutil.AssertStatusCode(t, rr, http.StatusOK)
	testutil.AssertBodyContains(t, rr, `"people":[]`, `"gifts":[]`, `"families":[]`, `"name":"Fresh"`)
}
