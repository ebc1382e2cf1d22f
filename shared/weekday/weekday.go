// Package weekday maps calendar weekdays to the day codes rooms are opened on.
//
// Codes run from 1 (Sunday) to 7 (Saturday). Every open-day check goes through
// this package; nothing else in the tree does weekday arithmetic.
package weekday

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"roombook/shared/model"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Code int

const (
	Sunday Code = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

const separator = ","

var ErrInvalidDay = errors.New("invalid day")

// Weekdays is the default set of open days, Monday through Friday.
var Weekdays = Set{codes: []Code{Monday, Tuesday, Wednesday, Thursday, Friday}}

func FromWeekday(day time.Weekday) (Code, error) {
	if day < time.Sunday || day > time.Saturday {
		return 0, fmt.Errorf("%w: weekday %d", ErrInvalidDay, int(day))
	}

	return Code(day) + 1, nil
}

func (c Code) Weekday() (time.Weekday, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("%w: code %d", ErrInvalidDay, int(c))
	}

	return time.Weekday(c - 1), nil
}

func (c Code) Valid() bool {
	return c >= Sunday && c <= Saturday
}

func (c Code) Name() string {
	day, err := c.Weekday()
	if err != nil {
		return "Unknown"
	}

	return day.String()
}

// Of returns the code of a calendar date.
func Of(date model.Date) Code {
	code, _ := FromWeekday(date.Weekday())

	return code
}

// Set is an ordered collection of distinct day codes.
type Set struct {
	codes []Code
}

// NewSet validates every code and returns them de-duplicated and sorted.
func NewSet(codes ...Code) (Set, error) {
	out := make([]Code, 0, len(codes))

	for _, code := range codes {
		if !code.Valid() {
			return Set{}, fmt.Errorf("%w: code %d", ErrInvalidDay, int(code))
		}

		if !slices.Contains(out, code) {
			out = append(out, code)
		}
	}

	slices.Sort(out)

	return Set{codes: out}, nil
}

// FromInts is NewSet for plain integers, as received from request payloads.
func FromInts(values []int) (Set, error) {
	codes := make([]Code, len(values))
	for i, v := range values {
		codes[i] = Code(v)
	}

	return NewSet(codes...)
}

// ParseSet strictly parses "2,3,4". Any malformed entry is an error.
func ParseSet(value string) (Set, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Set{}, nil
	}

	parts := strings.Split(value, separator)
	codes := make([]Code, 0, len(parts))

	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Set{}, fmt.Errorf("%w: %q", ErrInvalidDay, part)
		}

		codes = append(codes, Code(n))
	}

	return NewSet(codes...)
}

// parseStored reads a persisted value, dropping entries that are not valid codes.
func parseStored(value string) Set {
	codes := []Code{}

	for _, part := range strings.Split(value, separator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil || !Code(n).Valid() {
			log.Warn().Str("open_days", value).Str("entry", part).Msg("skipping invalid stored day code")

			continue
		}

		if !slices.Contains(codes, Code(n)) {
			codes = append(codes, Code(n))
		}
	}

	slices.Sort(codes)

	return Set{codes: codes}
}

func (s Set) Contains(code Code) bool {
	return slices.Contains(s.codes, code)
}

// IsOpen reports whether the set includes the weekday of date.
func (s Set) IsOpen(date model.Date) bool {
	return s.Contains(Of(date))
}

func (s Set) Empty() bool {
	return len(s.codes) == 0
}

func (s Set) Codes() []Code {
	return slices.Clone(s.codes)
}

func (s Set) Ints() []int {
	out := make([]int, len(s.codes))
	for i, code := range s.codes {
		out[i] = int(code)
	}

	return out
}

func (s Set) Names() []string {
	out := make([]string, len(s.codes))
	for i, code := range s.codes {
		out[i] = code.Name()
	}

	return out
}

func (s Set) String() string {
	parts := make([]string, len(s.codes))
	for i, code := range s.codes {
		parts[i] = strconv.Itoa(int(code))
	}

	return strings.Join(parts, separator)
}

func (s Set) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *Set) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = Set{}
	case string:
		*s = parseStored(v)
	case []byte:
		*s = parseStored(string(v))
	default:
		return fmt.Errorf("cannot scan %T into weekday.Set", src)
	}

	return nil
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Ints())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("open days must be a list of integers: %w", err)
	}

	set, err := FromInts(values)
	if err != nil {
		return err
	}

	*s = set

	return nil
}
