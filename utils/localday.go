package utils

import (
	"errors"
	"time"
)

// ErrInvalidTimestamp is returned when a client timestamp is unparsable or
// carries no UTC offset. The local day a checklist belongs to can only be
// derived from the offset the client itself supplies.
var ErrInvalidTimestamp = errors.New("invalid timestamp: expected ISO-8601 with UTC offset, e.g. 2025-06-19T08:00:00+08:00")

// ParseLocalDatetime parses an ISO-8601 timestamp that must carry an explicit
// UTC offset (RFC 3339 form, "Z" included). The returned time keeps the
// client's offset so callers can evaluate the client's calendar day.
func ParseLocalDatetime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}
	return t, nil
}

// LocalDay renders the calendar date of t in t's own location, the uniqueness
// key for checklists.
func LocalDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameLocalDay reports whether stored (a UTC instant) falls on the same
// calendar day as local, when viewed through local's offset.
func SameLocalDay(stored time.Time, local time.Time) bool {
	return LocalDay(stored.In(local.Location())) == LocalDay(local)
}
