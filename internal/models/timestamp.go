package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimestampLayout is the on-disk format for every timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a local wall-clock time stored as "YYYY-MM-DD HH:MM:SS" text.
// Sub-second precision is dropped on the way in.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to whole seconds in local time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Local().Truncate(time.Second)}
}

// ParseTimestamp parses a stored timestamp string as local time
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return Timestamp{Time: t}, nil
}

// String renders the timestamp in the stored layout
func (t Timestamp) String() string {
	return t.Format(TimestampLayout)
}

// Date returns just the calendar date part
func (t Timestamp) Date() string {
	return t.Format("2006-01-02")
}

// Value implements driver.Valuer
func (t Timestamp) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner
func (t *Timestamp) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		parsed, err := ParseTimestamp(v)
		if err != nil {
			return err
		}
		*t = parsed
	case []byte:
		parsed, err := ParseTimestamp(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	case time.Time:
		*t = NewTimestamp(v)
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", value)
	}
	return nil
}
