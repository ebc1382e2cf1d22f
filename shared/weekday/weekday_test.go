package weekday_test

import (
	"encoding/json"
	"roombook/shared/model"
	"roombook/shared/weekday"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromWeekday(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want weekday.Code
	}{
		{day: time.Sunday, want: weekday.Sunday},
		{day: time.Monday, want: weekday.Monday},
		{day: time.Tuesday, want: weekday.Tuesday},
		{day: time.Wednesday, want: weekday.Wednesday},
		{day: time.Thursday, want: weekday.Thursday},
		{day: time.Friday, want: weekday.Friday},
		{day: time.Saturday, want: weekday.Saturday},
	}

	for _, tt := range tests {
		t.Run(tt.day.String(), func(t *testing.T) {
			code, err := weekday.FromWeekday(tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)

			back, err := code.Weekday()
			require.NoError(t, err)
			assert.Equal(t, tt.day, back)
		})
	}
}

func TestInvalidDays(t *testing.T) {
	_, err := weekday.FromWeekday(time.Weekday(7))
	assert.ErrorIs(t, err, weekday.ErrInvalidDay)

	_, err = weekday.FromWeekday(time.Weekday(-1))
	assert.ErrorIs(t, err, weekday.ErrInvalidDay)

	for _, code := range []weekday.Code{0, 8, -3} {
		_, err := code.Weekday()
		assert.ErrorIs(t, err, weekday.ErrInvalidDay)
		assert.False(t, code.Valid())
	}
}

func TestOf(t *testing.T) {
	assert.Equal(t, weekday.Monday, weekday.Of(model.NewDate(2025, time.January, 6)))
	assert.Equal(t, weekday.Sunday, weekday.Of(model.NewDate(2025, time.January, 5)))
	assert.Equal(t, weekday.Saturday, weekday.Of(model.NewDate(2025, time.January, 11)))
}

func TestNewSet(t *testing.T) {
	set, err := weekday.NewSet(6, 2, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "2,4,6", set.String())
	assert.Equal(t, []int{2, 4, 6}, set.Ints())

	_, err = weekday.NewSet(2, 9)
	assert.ErrorIs(t, err, weekday.ErrInvalidDay)

	_, err = weekday.FromInts([]int{0})
	assert.ErrorIs(t, err, weekday.ErrInvalidDay)
}

func TestDefaultWeekdays(t *testing.T) {
	assert.Equal(t, "2,3,4,5,6", weekday.Weekdays.String())
	assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, weekday.Weekdays.Names())
	assert.True(t, weekday.Weekdays.IsOpen(model.NewDate(2025, time.January, 6)))
	assert.False(t, weekday.Weekdays.IsOpen(model.NewDate(2025, time.January, 5)))
}

func TestParseSet(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple", input: "2,3,4", want: "2,3,4"},
		{name: "spaces and duplicates", input: " 4, 2 ,4 ", want: "2,4"},
		{name: "empty", input: "", want: ""},
		{name: "junk", input: "2,x", wantErr: true},
		{name: "out of range", input: "1,8", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := weekday.ParseSet(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, weekday.ErrInvalidDay)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, set.String())
		})
	}
}

func TestSet_Scan(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "clean", input: "2,3,4,5,6", want: "2,3,4,5,6"},
		{name: "duplicates", input: "2,2,3", want: "2,3"},
		{name: "junk entries dropped", input: "1,,x,9,7", want: "1,7"},
		{name: "bytes", input: []byte("3,1"), want: "1,3"},
		{name: "null", input: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var set weekday.Set

			require.NoError(t, set.Scan(tt.input))
			assert.Equal(t, tt.want, set.String())
		})
	}

	var set weekday.Set
	assert.Error(t, set.Scan(12))
}

func TestSet_JSON(t *testing.T) {
	payload, err := json.Marshal(weekday.Weekdays)
	require.NoError(t, err)
	assert.Equal(t, "[2,3,4,5,6]", string(payload))

	var set weekday.Set
	require.NoError(t, json.Unmarshal([]byte("[7,1]"), &set))
	assert.Equal(t, "1,7", set.String())
	assert.Error(t, json.Unmarshal([]byte("[0]"), &set))
}
