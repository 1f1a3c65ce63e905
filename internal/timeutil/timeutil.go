// Package timeutil normalizes wall-clock input to absolute UTC instants and
// converts stored instants to display timezones. Input timestamps without a
// zone offset are interpreted in the fixed civil zone (IST).
package timeutil

import (
	"fmt"
	"sync"
	"time"

	"minieventms/internal/domain"
)

// CivilZone is the IANA name of the zone assumed for unmarked input timestamps.
const CivilZone = "Asia/Kolkata"

var (
	civilOnce sync.Once
	civilLoc  *time.Location
	civilErr  error
)

// CivilLocation returns the fixed civil input zone.
func CivilLocation() (*time.Location, error) {
	civilOnce.Do(func() {
		civilLoc, civilErr = time.LoadLocation(CivilZone)
	})
	return civilLoc, civilErr
}

// Input layouts accepted for event timestamps. The offset-less layouts are
// interpreted in the civil zone.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseInput parses an ISO 8601 timestamp and returns the absolute instant in
// UTC. A string carrying an offset is converted from that offset; one without
// is attached to the civil zone first.
func ParseInput(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	loc, err := CivilLocation()
	if err != nil {
		return time.Time{}, fmt.Errorf("load civil zone: %w", err)
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized timestamp %q", domain.ErrInvalidInput, s)
}

// ParseQueryDate parses a date-filter query value. Accepts a plain date or a
// full timestamp; plain dates are taken as midnight UTC.
func ParseQueryDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", domain.ErrInvalidInput, s)
}

// Zone resolves an IANA zone name for display conversion.
// Unknown names fail with domain.ErrInvalidTimezone.
func Zone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTimezone, name)
	}
	return loc, nil
}
