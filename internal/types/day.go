// Package types implements special types for Finance Genie.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"
)

// Day is a calendar day, stored as midnight UTC.
//
// All bill due date comparisons are calendar-day granular, not
// instant-granular, so the reminder window math operates on Day values.
type Day time.Time

// NewDay returns a new Day.
func NewDay(year int, month time.Month, day int) Day {
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the Day on which a time instant occurs, with the
// time of day zeroed.
func DayOf(t time.Time) Day {
	year, month, day := t.In(time.UTC).Date()
	return NewDay(year, month, day)
}

// Today returns the current calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// String returns the day formatted as YYYY-MM-DD.
func (d Day) String() string {
	return time.Time(d).Format("2006-01-02")
}

// Time returns the underlying time instant, midnight UTC.
func (d Day) Time() time.Time {
	return time.Time(d)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Day) MarshalJSON() ([]byte, error) {
	return time.Time(d).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Both full RFC3339 timestamps and plain "2006-01-02" dates are accepted,
// everything below day precision is dropped.
func (d *Day) UnmarshalJSON(data []byte) error {
	value := string(data)
	if value == `""` || value == "null" {
		return nil
	}

	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return fmt.Errorf("%s is not a valid date", value)
	}
	value = value[1 : len(value)-1]

	pattern := time.RFC3339
	if len(value) == len("2006-01-02") {
		pattern = "2006-01-02"
	}

	t, err := time.Parse(pattern, value)
	if err != nil {
		return err
	}

	*d = DayOf(t)
	return nil
}

// AddDays adds a specified amount of days.
func (d Day) AddDays(days int) Day {
	return Day(time.Time(d).AddDate(0, 0, days))
}

// Before reports whether the day d is before e.
func (d Day) Before(e Day) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether the day d is after e.
func (d Day) After(e Day) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e represent the same calendar day.
func (d Day) Equal(e Day) bool {
	return time.Time(d).Equal(time.Time(e))
}

// DaysUntil returns the number of whole days from d until e.
// The result is negative when e is before d.
func (d Day) DaysUntil(e Day) int {
	return int(time.Time(e).Sub(time.Time(d)) / (24 * time.Hour))
}

// IsZero reports if the day is the zero value.
func (d Day) IsZero() bool {
	return time.Time(d).IsZero()
}

// Scan reads the value from the database.
func (d *Day) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*d = DayOf(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (d Day) Value() (driver.Value, error) {
	return time.Time(d), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Day) GormDataType() string {
	return "date"
}
