package domain

// Credentials is the merchant credential pair: restaurant identifier plus
// API key. It is the sole authentication artifact - created once at
// registration, stored client-side until explicit logout, never rotated.
// The key is opaque; the client only forwards it as a header.
type Credentials struct {
	RestaurantID ID     `json:"restaurant_id"`
	APIKey       string `json:"api_key"`
}

// IsComplete reports whether both halves of the pair are present.
// Login accepts any complete pair without a server round trip; validity is
// discovered lazily on the first authenticated request.
func (c Credentials) IsComplete() bool {
	return c.RestaurantID != "" && c.APIKey != ""
}
