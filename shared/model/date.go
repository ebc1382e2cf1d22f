package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"roombook/shared/constant"
	"roombook/shared/timezone"
	"strings"
	"time"
)

// Date is a calendar day without time of day or zone. The zero value is not a valid day.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t as seen in the application timezone.
func DateOf(t time.Time) Date {
	local := timezone.ToAppTime(t)

	return NewDate(local.Year(), local.Month(), local.Day())
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(constant.DayFormat, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}

	return Date{t: t}, nil
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) String() string {
	return d.t.Format(constant.DayFormat)
}

func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) AddDays(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

// At returns the instant of clock on this day in the application timezone.
func (d Date) At(clock Clock) time.Time {
	h, m, s := clock.HMS()

	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), h, m, s, 0, timezone.GetLocation())
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}

	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}

		return nil
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())

		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(value string) error {
	if len(value) >= len(constant.DayFormat) {
		value = value[:len(constant.DayFormat)]
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
