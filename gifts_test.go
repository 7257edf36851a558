package main_test

import (
	"net/http"
	"testing"

	"git.sr.ht/~relay/giftwise-backend/gifts"
	"git.sr.ht/~relay/giftwise-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGifts(t *testing.T) {
	env := testutil.SetupTestEnvironment(t)
	defer env.TearDownDB()

	t.Run("ListIsBare", func(t *testing.T) {
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/gifts", "", nil))
		testutil.AssertStatusCode(t, rr, http.StatusOK)

		var list []gifts.Gift
		testutil.DecodeJSONResponse(t, rr, &list)
		require.Len(t, list, 2)
		assert.Equal(t, "Gardening Book Set", list[0].Name)
		assert.Equal(t, 45.99, list[0].Price)
		assert.Equal(t, gifts.StatusPurchased, list[0].Status)
	})

	t.Run("CreateDefaults", func(t *testing.T) {
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/api/gifts", "", nil))
		testutil.AssertStatusCode(t, rr, http.StatusCreated)

		var g gifts.Gift
		testutil.DecodeJSONResponse(t, rr, &g)
		assert.NotEmpty(t, g.ID)
		assert.Equal(t, "New Gift", g.Name)
		assert.Equal(t, 0.0, g.Price)
		assert.Equal(t, "USD", g.Currency)
		assert.Equal(t, gifts.StatusPlanned, g.Status)
	})

	t.Run("ExplicitFalsyValuesKept", func(t *testing.T) {
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewRawRequest(t, http.MethodPost, "/api/gifts", `{"price":0,"name":"","notes":"","unknown":true}`))
		testutil.AssertStatusCode(t, rr, http.StatusCreated)

		var g gifts.Gift
		testutil.DecodeJSONResponse(t, rr, &g)
		assert.Equal(t, "", g.Name)
		assert.Equal(t, 0.0, g.Price)
	})

	t.Run("CreateAndGet", func(t *testing.T) {
		payload := gifts.CreateGiftPayload{
			Name:        testutil.Ptr("Scarf"),
			Price:       testutil.Ptr(25.5),
			Currency:    testutil.Ptr("EUR"),
			Status:      testutil.Ptr(gifts.StatusWrapped),
			RecipientID: testutil.Ptr("person_1"),
		}
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/api/gifts", "", payload))
		testutil.AssertStatusCode(t, rr, http.StatusCreated)
		var created gifts.Gift
		testutil.DecodeJSONResponse(t, rr, &created)

		rr = testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodGet, "/api/gifts/"+created.ID, "", nil))
		testutil.AssertStatusCode(t, rr, http.StatusOK)
		var fetched gifts.Gift
		testutil.DecodeJSONResponse(t, rr, &fetched)
		assert.Equal(t, created, fetched)
		assert.Equal(t, "person_1", fetched.RecipientID)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		rr := testutil.ExecuteRequest(t, env.Handler, testutil.NewAuthenticatedRequest(t, http.MethodPost, "/api/gifts", "",
			map[string]any{"status": "lost"}))
		testutil.AssertStatusCode(t, rr, http.StatusBadRequest)
		testutil.AssertBodyContains(t, rr, "status must be one of planned, purchased, wrapped, given")
	})
}
