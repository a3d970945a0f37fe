// Package domain holds the view models the clients work with.
//
// All of these are transient projections of backend state: the backend owns
// the data, the clients display whatever they receive and never persist it
// (the credential pair is the one exception, see Credentials).
package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"time"
)

// ID is an opaque backend identifier. Backends emit identifiers either as
// JSON strings or as numbers, so unmarshalling accepts both; marshalling
// echoes numeric identifiers back as numbers.
type ID string

// UnmarshalJSON accepts a string, a number, or null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits the identifier the way it arrived: plain integers go
// back as numbers, everything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if isDigits(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Offer is a discounted food listing.
type Offer struct {
	ID                 ID         `json:"id"`
	RestaurantID       ID         `json:"restaurant_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	ImageURL           string     `json:"image_url,omitempty"`
	PriceCents         int64      `json:"price_cents"`
	OriginalPriceCents int64      `json:"original_price_cents,omitempty"`
	QtyTotal           int        `json:"qty_total"`
	QtyLeft            int        `json:"qty_left"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	Category           string     `json:"category,omitempty"`
}

// HasDiscount reports whether a discount badge should be shown at all.
// Offers without a positive original price carry no discount.
func (o Offer) HasDiscount() bool {
	return o.OriginalPriceCents > 0 && o.DiscountPercent() > 0
}

// DiscountPercent computes the displayed discount:
// round((1 - price/original) * 100). Zero when no original price is set.
func (o Offer) DiscountPercent() int {
	if o.OriginalPriceCents <= 0 {
		return 0
	}
	frac := 1 - float64(o.PriceCents)/float64(o.OriginalPriceCents)
	return int(math.Round(frac * 100))
}

// DashboardStats are the three aggregates shown on the merchant dashboard.
type DashboardStats struct {
	ActiveOffers       int
	QtyLeft            int
	AvgDiscountPercent int
}

// ComputeStats derives dashboard aggregates from an offer list.
//
// The average discount is taken only over offers that actually have one
// (positive original price and a positive discount fraction); offers
// without a discount are excluded from the average, not counted as 0%.
func ComputeStats(offers []Offer) DashboardStats {
	stats := DashboardStats{ActiveOffers: len(offers)}

	var sum float64
	var discounted int
	for _, o := range offers {
		stats.QtyLeft += o.QtyLeft
		if o.OriginalPriceCents <= 0 {
			continue
		}
		frac := 1 - float64(o.PriceCents)/float64(o.OriginalPriceCents)
		if frac > 0 {
			sum += frac
			discounted++
		}
	}
	if discounted > 0 {
		stats.AvgDiscountPercent = int(math.Round(sum / float64(discounted) * 100))
	}
	return stats
}
