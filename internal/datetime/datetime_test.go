package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAndParseDate(t *testing.T) {
	ts := time.Date(2024, time.January, 5, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-05", FormatDate(ts))

	parsed, err := ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", FormatDate(parsed))

	_, err = ParseDate("05/01/2024")
	assert.Error(t, err)
}

func TestDateOfRespectsLocation(t *testing.T) {
	// 2024-01-01T23:00:00Z
	epoch := time.Date(2024, time.January, 1, 23, 0, 0, 0, time.UTC).Unix()

	assert.Equal(t, "2024-01-01", DateOf(epoch, time.UTC))
	assert.Equal(t, "2024-01-01", DateOf(epoch, nil))

	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", DateOf(epoch, rome))
}

func TestClockTime(t *testing.T) {
	epoch := time.Date(2024, time.January, 1, 14, 0, 0, 0, time.UTC).Unix()
	assert.Equal(t, "14:00", ClockTime(epoch, time.UTC))
}

func TestHeaderLabels(t *testing.T) {
	ts := time.Date(2024, time.January, 15, 10, 4, 0, 0, time.FixedZone("CET", 3600))

	assert.Equal(t, "Monday, 15 January 2024", UTCDatetime(ts))
	assert.Equal(t, "09:04 GMT", UTCTime(ts))
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Tuesday", DayName("2024-01-02"))
	assert.Equal(t, "", DayName("not-a-date"))
}
