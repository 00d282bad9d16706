package vocab

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

// Day represents a calendar day in YYYY-MM-DD format. Scheduling decisions
// compare days only; no time-of-day component participates.
type Day struct {
	time.Time
}

// NewDay creates a Day from a time.Time, dropping the time-of-day component.
func NewDay(t time.Time) Day {
	year, month, day := t.Date()
	return Day{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Day {
	return NewDay(time.Now())
}

// ParseDay parses a day in YYYY-MM-DD format.
func ParseDay(value string) (Day, error) {
	t, err := time.Parse(dayFormat, value)
	if err != nil {
		return Day{}, fmt.Errorf("unable to parse day '%s': expected YYYY-MM-DD format", value)
	}
	return Day{Time: t}, nil
}

// AddDays returns the day n days after d.
func (d Day) AddDays(n int) Day {
	return NewDay(d.AddDate(0, 0, n))
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	return d.Format(dayFormat)
}

// Value implements the driver.Valuer interface, storing the day as text.
func (d Day) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements the sql.Scanner interface.
func (d *Day) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseDay(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDay(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case time.Time:
		*d = NewDay(v)
		return nil
	default:
		return fmt.Errorf("unsupported type %T for Day", src)
	}
}
