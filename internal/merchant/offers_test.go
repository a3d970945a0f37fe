package merchant

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/foodyhub/internal/domain"
	"github.com/Haleralex/foodyhub/internal/foodyapi"
)

func TestController_LoadOffers(t *testing.T) {
	t.Run("RequiresAuth", func(t *testing.T) {
		c := NewController(&fakeAPI{}, NewMemStore(), nil)
		_, err := c.LoadOffers(context.Background())
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("ScopedEndpointPreferred", func(t *testing.T) {
		api := &fakeAPI{
			scopedOffers: []domain.Offer{{ID: "1", RestaurantID: "42"}},
			allOffers:    []domain.Offer{{ID: "9", RestaurantID: "42"}},
		}
		c := NewController(api, NewMemStoreWith(testCreds), nil)

		res, err := c.LoadOffers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceScoped, res.Source)
		require.Len(t, res.Offers, 1)
		assert.Equal(t, domain.ID("1"), res.Offers[0].ID)
	})

	t.Run("FallsBackToFilteredGlobalList", func(t *testing.T) {
		api := &fakeAPI{
			scopedErr: errors.New("404 Not Found"),
			allOffers: []domain.Offer{
				{ID: "1", RestaurantID: "42"},
				{ID: "2", RestaurantID: "7"},
				{ID: "3", RestaurantID: "42"},
			},
		}
		c := NewController(api, NewMemStoreWith(testCreds), nil)

		res, err := c.LoadOffers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceFallback, res.Source)
		require.Len(t, res.Offers, 2)
		assert.Equal(t, domain.ID("1"), res.Offers[0].ID)
		assert.Equal(t, domain.ID("3"), res.Offers[1].ID)
	})

	t.Run("MissingScopedEndpointFallsBack", func(t *testing.T) {
		api := &fakeAPI{
			scopedErr: &foodyapi.StatusError{StatusCode: http.StatusNotFound, Status: "404 Not Found", Body: "no route"},
			allOffers: []domain.Offer{{ID: "1", RestaurantID: "42"}},
		}
		c := NewController(api, NewMemStoreWith(testCreds), nil)

		res, err := c.LoadOffers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, SourceFallback, res.Source)
		require.Len(t, res.Offers, 1)
	})

	t.Run("BothPathsFailingReturnsScopedError", func(t *testing.T) {
		scopedErr := errors.New("scoped down")
		api := &fakeAPI{scopedErr: scopedErr, allErr: errors.New("global down")}
		c := NewController(api, NewMemStoreWith(testCreds), nil)

		_, err := c.LoadOffers(context.Background())
		assert.ErrorIs(t, err, scopedErr)
	})
}

func TestController_Dashboard(t *testing.T) {
	api := &fakeAPI{scopedOffers: []domain.Offer{
		{ID: "1", RestaurantID: "42", PriceCents: 80, OriginalPriceCents: 100, QtyLeft: 3},
		{ID: "2", RestaurantID: "42", PriceCents: 100, QtyLeft: 2},
	}}
	c := NewController(api, NewMemStoreWith(testCreds), nil)

	stats, res, err := c.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SourceScoped, res.Source)
	assert.Equal(t, 2, stats.ActiveOffers)
	assert.Equal(t, 5, stats.QtyLeft)
	assert.Equal(t, 20, stats.AvgDiscountPercent)
}

func TestController_BuildCreateRequest(t *testing.T) {
	c := NewController(&fakeAPI{}, NewMemStoreWith(testCreds), nil)

	t.Run("FullForm", func(t *testing.T) {
		req := c.BuildCreateRequest(OfferForm{
			Title:         " Пицца ",
			Price:         "7.50",
			OriginalPrice: "10",
			QtyTotal:      "3",
			ExpiresAt:     "2026-03-14 18:30",
			Description:   "Неаполитанская",
		})

		assert.Equal(t, domain.ID("42"), req.RestaurantID)
		assert.Equal(t, "Пицца", req.Title)
		assert.Equal(t, int64(750), req.PriceCents)
		assert.Equal(t, int64(1000), req.OriginalPriceCents)
		assert.Equal(t, 3, req.QtyTotal)
		assert.Equal(t, 3, req.QtyLeft, "qty_left always starts equal to qty_total")
		require.NotNil(t, req.ExpiresAt)
		assert.Equal(t, time.Date(2026, 3, 14, 18, 30, 0, 0, time.Local), *req.ExpiresAt)
		require.NotNil(t, req.Description)
		assert.Nil(t, req.ImageURL)
		assert.Nil(t, req.Category)
	})

	t.Run("LenientCoercions", func(t *testing.T) {
		req := c.BuildCreateRequest(OfferForm{
			Title:     "Суп",
			Price:     "not a price",
			QtyTotal:  "zero?",
			ExpiresAt: "вчера",
		})

		assert.Equal(t, int64(0), req.PriceCents)
		assert.Equal(t, 1, req.QtyTotal, "Number(x)||1 semantics")
		assert.Equal(t, 1, req.QtyLeft)
		assert.Nil(t, req.ExpiresAt, "unparsable date is omitted")
	})
}

func TestController_CreateOffer(t *testing.T) {
	t.Run("RequiresAuth", func(t *testing.T) {
		c := NewController(&fakeAPI{}, NewMemStore(), nil)
		err := c.CreateOffer(context.Background(), OfferForm{Title: "x", Price: "1"})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("RequiredFieldsBlockSubmission", func(t *testing.T) {
		api := &fakeAPI{}
		c := NewController(api, NewMemStoreWith(testCreds), nil)

		err := c.CreateOffer(context.Background(), OfferForm{Price: "1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")

		err = c.CreateOffer(context.Background(), OfferForm{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
		assert.Contains(t, err.Error(), "price")

		assert.Empty(t, api.created, "invalid form must not reach the backend")
	})

	t.Run("Submits", func(t *testing.T) {
		api := &fakeAPI{}
		c := NewController(api, NewMemStoreWith(testCreds), nil)

		require.NoError(t, c.CreateOffer(context.Background(), OfferForm{Title: "Пицца", Price: "7.50"}))
		require.Len(t, api.created, 1)
		assert.Equal(t, int64(750), api.created[0].PriceCents)
	})
}

func TestController_CreateOfferWithPhoto(t *testing.T) {
	t.Run("UploadsThenCreates", func(t *testing.T) {
		api := &fakeAPI{uploadURL: "https://cdn.example.com/p.jpg"}
		c := NewController(api, NewMemStoreWith(testCreds), nil)

		err := c.CreateOfferWithPhoto(context.Background(),
			OfferForm{Title: "Пицца", Price: "7.50"}, "p.jpg", strings.NewReader("jpeg"))
		require.NoError(t, err)

		require.Len(t, api.created, 1)
		require.NotNil(t, api.created[0].ImageURL)
		assert.Equal(t, "https://cdn.example.com/p.jpg", *api.created[0].ImageURL)
	})

	t.Run("UploadFailureAbortsCreation", func(t *testing.T) {
		api := &fakeAPI{uploadErr: errors.New("storage down")}
		c := NewController(api, NewMemStoreWith(testCreds), nil)

		err := c.CreateOfferWithPhoto(context.Background(),
			OfferForm{Title: "Пицца", Price: "7.50"}, "p.jpg", strings.NewReader("jpeg"))
		require.Error(t, err)
		assert.Empty(t, api.created)
	})
}
