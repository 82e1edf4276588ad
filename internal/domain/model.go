package domain

import "time"

// User is a registered account. Usernames act as a natural key: the
// directory looks up before inserting, so repeated registration never
// produces duplicates. Users are never mutated or deleted.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// Exercise is an append-only log entry owned by exactly one User,
// referenced by id. Duration is in minutes.
type Exercise struct {
	ID          string
	UserID      string
	Description string
	Duration    float64
	Date        time.Time
	CreatedAt   time.Time
}

// DateLayout renders a calendar date without a time-of-day component,
// e.g. "Thu Jan 05 2023". It is the canonical date shape on the wire.
const DateLayout = "Mon Jan 02 2006"

// DateString formats t for API responses.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

var dateInputLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	DateLayout,
}

// ParseDate parses a client-supplied calendar date. ISO dates
// ("2023-01-05") are the common case; RFC 3339 timestamps and the
// response layout itself are also accepted.
func ParseDate(value string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateInputLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
