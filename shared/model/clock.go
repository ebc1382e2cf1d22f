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

// Clock is a time of day, stored as seconds since midnight.
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*constant.SecondsPerHour + minute*constant.MinutesToSeconds)
}

// ClockOf returns the time of day of t in the application timezone.
func ClockOf(t time.Time) Clock {
	local := timezone.ToAppTime(t)

	return Clock(local.Hour()*constant.SecondsPerHour + local.Minute()*constant.MinutesToSeconds + local.Second())
}

// ParseClock accepts "15:04" and "15:04:05".
func ParseClock(value string) (Clock, error) {
	value = strings.TrimSpace(value)

	for _, layout := range []string{constant.ClockDBFormat, constant.ClockFormat} {
		t, err := time.Parse(layout, value)
		if err == nil {
			return Clock(t.Hour()*constant.SecondsPerHour + t.Minute()*constant.MinutesToSeconds + t.Second()), nil
		}
	}

	return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", value)
}

func (c Clock) HMS() (hour, minute, second int) {
	secs := int(c) % constant.SecondsPerDay

	return secs / constant.SecondsPerHour, (secs % constant.SecondsPerHour) / constant.MinutesToSeconds, secs % constant.MinutesToSeconds
}

func (c Clock) String() string {
	h, m, _ := c.HMS()

	return fmt.Sprintf("%02d:%02d", h, m)
}

func (c Clock) Value() (driver.Value, error) {
	h, m, s := c.HMS()

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}

func (c *Clock) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c = Clock(v.Hour()*constant.SecondsPerHour + v.Minute()*constant.MinutesToSeconds + v.Second())

		return nil
	case string:
		return c.scanString(v)
	case []byte:
		return c.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Clock", src)
	}
}

func (c *Clock) scanString(value string) error {
	// postgres may append fractional seconds
	if idx := strings.IndexByte(value, '.'); idx > 0 {
		value = value[:idx]
	}

	parsed, err := ParseClock(value)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}

	parsed, err := ParseClock(value)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
