package main_test

import (
	"net/http"
	"testing"

	"git.sr.ht/~relay/giftwise-backend/families"
	"git.sr.ht/~relay/giftwise-backend/identity"
	"git.sr.ht/~relay/giftwise-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilies(t *testing.T) {
	env := testutil.SetupTestEnvironment(t)
	defer env.TearDownDB()

	t.Run("ListSeeded", func(t *testing.T) {
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/families", "", nil))
		testutil.AssertStatusCode(t, rr, http.StatusOK)
		var resp testutil.Envelope[[]families.Family]
		testutil.DecodeJSONResponse(t, rr, &resp)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Johnson Family", resp.Data[0].Name)
		require.Len(t, resp.Data[0].Members, 1)
		assert.Equal(t, families.RoleAdmin, resp.Data[0].Members[0].Role)
	})

	t.Run("Create", func(t *testing.T) {
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/api/families", "",
			map[string]any{"name": "  Chen Household  ", "description": "Mike's side"}))
		testutil.AssertStatusCode(t, rr, http.StatusCreated)
		var resp testutil.Envelope[families.Family]
		testutil.DecodeJSONResponse(t, rr, &resp)
		f := resp.Data
		assert.Equal(t, "Chen Household", f.Name)
		assert.Equal(t, identity.DemoUserID, f.CreatedBy)
		require.Len(t, f.Members, 1)
		assert.Equal(t, identity.DemoUserID, f.Members[0].UserID)
		assert.Equal(t, identity.DemoUserEmail, f.Members[0].Email)
		assert.Equal(t, families.RoleAdmin, f.Members[0].Role)

		rr = testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/families/"+f.ID, "", nil))
		testutil.AssertStatusCode(t, rr, http.StatusOK)
		var fetched testutil.Envelope[families.Family]
		testutil.DecodeJSONResponse(t, rr, &fetched)
		assert.Equal(t, f, fetched.Data)
	})

	invalid := []struct {
		name string
		body string
	}{
		{"TooShort", `{"name":"A"}`},
		{"Blank", `{"name":"   "}`},
		{"Missing", `{}`},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewRawRequest(t, http.MethodPost, "/api/families", tc.body))
			testutil.AssertStatusCode(t, rr, http.StatusBadRequest)
			var body testutil.MessageBody
			testutil.DecodeJSONResponse(t, rr, &body)
			assert.Equal(t, "name must be at least 2 characters long", body.Message)
		})
	}
}
