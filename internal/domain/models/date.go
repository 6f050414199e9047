package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const dateLayout = "2006-01-02"

// Date is a nullable calendar date stored in a Postgres DATE column and
// serialized as YYYY-MM-DD.
type Date struct {
	pgtype.Date
}

// NewDate builds a valid Date from the calendar day of t.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}}
}

// MustParseDate parses a YYYY-MM-DD literal and panics on failure.
func MustParseDate(value string) Date {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		panic(err)
	}
	return NewDate(t)
}

// String renders the date as YYYY-MM-DD, or an empty string when null.
func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// MarshalJSON writes null or "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts null, "", "YYYY-MM-DD" or an RFC 3339 timestamp.
// Timestamps are reduced to their calendar day.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if raw == "" {
		*d = Date{}
		return nil
	}

	if t, err := time.Parse(dateLayout, raw); err == nil {
		*d = NewDate(t)
		return nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	*d = NewDate(t)
	return nil
}
