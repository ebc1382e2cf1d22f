package timezone_test

import (
	"roombook/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimezoneInit(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("Now() returned zero time")
	}

	loc := timezone.GetLocation()
	if loc == nil {
		t.Error("GetLocation() returned nil")
	}
}

func TestTimezoneWithStandardLocation(t *testing.T) {
	utcTime := time.Now().UTC()
	appTime := timezone.ToAppTime(utcTime)

	if appTime.Location() == nil {
		t.Error("Expected converted time to have a location")
	}
}

func TestTimezoneFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	formatted := timezone.Format(testTime, "2006-01-02 15:04:05 MST")

	if formatted == "" {
		t.Error("Format() returned empty string")
	}

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	if err != nil {
		t.Errorf("Parse() failed: %v", err)
	}

	if parsed == (time.Time{}) {
		t.Error("Parse() returned a zero time")
	}
}

func TestSetLocation(t *testing.T) {
	original := timezone.GetLocation()
	t.Cleanup(func() { require.NoError(t, timezone.SetLocation(original.String())) })

	require.NoError(t, timezone.SetLocation("Asia/Jakarta"))
	assert.Equal(t, "Asia/Jakarta", timezone.GetLocation().String())
	assert.Equal(t, "Asia/Jakarta", timezone.NewNowFunc()().Location().String())

	assert.Error(t, timezone.SetLocation("Mars/Olympus"))
	assert.Equal(t, "Asia/Jakarta", timezone.GetLocation().String())
}
