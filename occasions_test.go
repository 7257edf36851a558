package main_test

import (
	"net/http"
	"testing"
	"time"

	"git.sr.ht/~relay/giftwise-backend/occasions"
	"git.sr.ht/~relay/giftwise-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccasions(t *testing.T) {
	env := testutil.SetupTestEnvironment(t)
	defer env.TearDownDB()

	t.Run("ListIsBare", func(t *testing.T) {
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/occasions", "", nil))
		testutil.AssertStatusCode(t, rr, http.StatusOK)

		var list []occasions.Occasion
		testutil.DecodeJSONResponse(t, rr, &list)
		require.Len(t, list, 2)
		assert.Equal(t, "Christmas", list[1].Name)
		assert.Equal(t, 500.0, list[1].Budget)
	})

	t.Run("CreateDefaults", func(t *testing.T) {
		before := time.Now().UTC().Format(time.DateOnly)
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/api/occasions", "", map[string]any{}))
		testutil.AssertStatusCode(t, rr, http.StatusCreated)
		after := time.Now().UTC().Format(time.DateOnly)

		var o occasions.Occasion
		testutil.DecodeJSONResponse(t, rr, &o)
		assert.Equal(t, "New Occasion", o.Name)
		assert.Equal(t, "other", o.Type)
		assert.Equal(t, 0.0, o.Budget)
		assert.Contains(t, []string{before, after}, o.Date)
	})

	t.Run("CreateAndGet", func(t *testing.T) {
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/api/occasions", "",
			occasions.CreateOccasionPayload{
				Name:     testutil.Ptr("Anniversary"),
				Date:     testutil.Ptr("2025-09-01"),
				Type:     testutil.Ptr("anniversary"),
				PersonID: testutil.Ptr("person_2"),
				Budget:   testutil.Ptr(0.0),
			}))
		testutil.AssertStatusCode(t, rr, http.StatusCreated)
		var created occasions.Occasion
		testutil.DecodeJSONResponse(t, rr, &created)
		assert.Equal(t, "2025-09-01", created.Date)

		rr = testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/occasions/"+created.ID, "", nil))
		testutil.AssertStatusCode(t, rr, http.StatusOK)
		var fetched occasions.Occasion
		testutil.DecodeJSONResponse(t, rr, &fetched)
		assert.Equal(t, created, fetched)
	})

	t.Run("GetUnknown", func(t *testing.T) {
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/occasions/missing", "", nil))
		testutil.AssertStatusCode(t, rr, http.StatusNotFound)
		testutil.AssertBodyContains(t, rr, "Occasion not found")
	})
}
