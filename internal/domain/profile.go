package domain

import (
	"strconv"
	"strings"
)

// RestaurantProfile is the merchant-owned business record.
//
// Lat/Lng and CloseTime are optional; numeric fields that the user left
// empty or unparsable are submitted as absent (nil), never as zero.
type RestaurantProfile struct {
	RestaurantID ID       `json:"restaurant_id"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Address      string   `json:"address,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	// CloseTime is a time-of-day string, "HH:MM". Backends sometimes send
	// "HH:MM:SS"; only the first five characters are meaningful.
	CloseTime string `json:"close_time,omitempty"`
}

// CloseClock parses CloseTime into hours and minutes.
// ok is false when no closing time is configured or it does not parse.
func (p RestaurantProfile) CloseClock() (hh, mm int, ok bool) {
	return ParseClock(p.CloseTime)
}

// ParseClock parses an "HH:MM" time-of-day string, tolerating a trailing
// seconds component and a one-digit hour.
func ParseClock(s string) (hh, mm int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	mm, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, 0, false
	}
	return hh, mm, true
}

// CoerceFloat parses an optional numeric form field. Empty or unparsable
// input yields nil (the field is omitted from the payload).
func CoerceFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
