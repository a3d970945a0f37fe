package merchant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/foodyhub/internal/domain"
)

var quickNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)

func TestExpiryInMinutes(t *testing.T) {
	got := ExpiryInMinutes(quickNow, 45)
	assert.Equal(t, quickNow.Add(45*time.Minute), got)
}

func TestExpiryAtClock(t *testing.T) {
	tests := []struct {
		name     string
		hh, mm   int
		expected time.Time
	}{
		{"LaterToday", 22, 30, time.Date(2026, 3, 14, 22, 30, 0, 0, time.Local)},
		{"AlreadyPassedRollsToTomorrow", 10, 0, time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local)},
		{"ExactlyNowStaysToday", 15, 0, quickNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpiryAtClock(quickNow, tt.hh, tt.mm))
		})
	}
}

func TestController_ExpiryAtCloseTime(t *testing.T) {
	newCtrl := func(profile domain.RestaurantProfile) *Controller {
		api := &fakeAPI{profile: profile}
		return NewController(api, NewMemStoreWith(testCreds), nil,
			WithClock(func() time.Time { return quickNow }))
	}

	t.Run("UsesProfileCloseTime", func(t *testing.T) {
		c := newCtrl(domain.RestaurantProfile{CloseTime: "22:00"})

		got, err := c.ExpiryAtCloseTime(context.Background())
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 14, 22, 0, 0, 0, time.Local), got)
	})

	t.Run("CloseTimeBeforeNowRollsOver", func(t *testing.T) {
		c := newCtrl(domain.RestaurantProfile{CloseTime: "09:00"})

		got, err := c.ExpiryAtCloseTime(context.Background())
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local), got)
	})

	t.Run("NoCloseTimeConfigured", func(t *testing.T) {
		c := newCtrl(domain.RestaurantProfile{})

		_, err := c.ExpiryAtCloseTime(context.Background())
		assert.ErrorIs(t, err, ErrNoCloseTime)
	})

	t.Run("RequiresAuth", func(t *testing.T) {
		c := NewController(&fakeAPI{}, NewMemStore(), nil)

		_, err := c.ExpiryAtCloseTime(context.Background())
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})
}
