package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayout is the wire and storage representation of a Timestamp:
// RFC 3339 with millisecond precision, always UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is the value type used for every favorites last-modified
// comparison. Values are normalised to UTC with millisecond precision so that
// two timestamps that survived a JSON or database round-trip still compare
// equal to their originals. The zero Timestamp sorts before every non-zero
// one and marks "never synchronised".
type Timestamp struct {
	t time.Time
}

// NewTimestamp normalises t into a Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{t: t.UTC().Truncate(time.Millisecond)}
}

// Now returns the current wall-clock time as a Timestamp.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// Time returns the underlying time.Time (UTC, millisecond precision).
func (ts Timestamp) Time() time.Time { return ts.t }

// IsZero reports whether ts is the "never synchronised" sentinel.
func (ts Timestamp) IsZero() bool { return ts.t.IsZero() }

// Compare returns -1 if ts is before other, 0 if equal, +1 if after.
func (ts Timestamp) Compare(other Timestamp) int { return ts.t.Compare(other.t) }

// Before reports whether ts is strictly earlier than other.
func (ts Timestamp) Before(other Timestamp) bool { return ts.t.Before(other.t) }

// After reports whether ts is strictly later than other.
func (ts Timestamp) After(other Timestamp) bool { return ts.t.After(other.t) }

// Equal reports whether ts and other denote the same instant.
func (ts Timestamp) Equal(other Timestamp) bool { return ts.t.Equal(other.t) }

// String implements fmt.Stringer. The zero value renders as an empty string.
func (ts Timestamp) String() string {
	if ts.IsZero() {
		return ""
	}
	return ts.t.Format(timestampLayout)
}

// MarshalJSON encodes ts as an RFC 3339 string, or null for the zero value.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}

// UnmarshalJSON decodes an RFC 3339 string; null and "" become the zero value.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ts = Timestamp{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	return ts.parse(raw)
}

func (ts *Timestamp) parse(raw string) error {
	if raw == "" {
		*ts = Timestamp{}
		return nil
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", raw, err)
	}

	*ts = NewTimestamp(parsed)
	return nil
}

// Value implements driver.Valuer. Timestamps are stored as RFC 3339 text so
// the same column definition works for both PostgreSQL and SQLite backends.
// The zero value is stored as NULL.
func (ts Timestamp) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	return ts.String(), nil
}

// Scan implements sql.Scanner for TEXT and TIMESTAMP column representations.
func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ts = Timestamp{}
		return nil
	case time.Time:
		*ts = NewTimestamp(v)
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp source type %T", src)
	}
}
