package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-forecasting/internal/models"
)

func at(year int, month time.Month, day, hour int) int64 {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC).Unix()
}

func sample(dt int64, description string, tempMin, tempMax float64) models.Sample {
	return models.Sample{
		Dt:          dt,
		Temp:        (tempMin + tempMax) / 2,
		TempMin:     tempMin,
		TempMax:     tempMax,
		Humidity:    80,
		WindSpeed:   3,
		Clouds:      50,
		Description: description,
	}
}

func TestHourly_KeepsRemainingSlotsOfToday(t *testing.T) {
	shaper := NewShaper(time.UTC, 0)
	samples := []models.Sample{
		sample(at(2024, 1, 1, 8), "clear sky", 1, 2),
		sample(at(2024, 1, 1, 14), "few clouds", 3, 4),
		sample(at(2024, 1, 1, 20), "light rain", 5, 6),
		sample(at(2024, 1, 2, 8), "snow", 7, 8),
	}

	entries := shaper.Hourly(samples, "2024-01-01", at(2024, 1, 1, 10))

	require.Len(t, entries, 2)
	assert.Equal(t, "14:00", entries[0].Time)
	assert.Equal(t, "20:00", entries[1].Time)
	assert.Equal(t, at(2024, 1, 1, 14), entries[0].Dt)
	assert.Equal(t, "02d", entries[0].Icon)
}

func TestHourly_IncludesSampleAtExactlyNow(t *testing.T) {
	shaper := NewShaper(time.UTC, 0)
	samples := []models.Sample{sample(at(2024, 1, 1, 12), "mist", 1, 2)}

	entries := shaper.Hourly(samples, "2024-01-01", at(2024, 1, 1, 12))
	assert.Len(t, entries, 1)
}

func TestHourly_EmptyResults(t *testing.T) {
	shaper := NewShaper(time.UTC, 0)

	entries := shaper.Hourly(nil, "2024-01-01", at(2024, 1, 1, 0))
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	// last slot of the day already passed
	samples := []models.Sample{sample(at(2024, 1, 1, 21), "clear sky", 1, 2)}
	entries = shaper.Hourly(samples, "2024-01-01", at(2024, 1, 1, 22))
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestHourly_DateUsesShaperLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	shaper := NewShaper(tokyo, 0)

	// 2024-01-01T20:00Z is 2024-01-02 05:00 in Tokyo
	samples := []models.Sample{sample(at(2024, 1, 1, 20), "clear sky", 1, 2)}

	assert.Empty(t, shaper.Hourly(samples, "2024-01-01", 0))
	entries := shaper.Hourly(samples, "2024-01-02", 0)
	require.Len(t, entries, 1)
	assert.Equal(t, "05:00", entries[0].Time)
}

func TestWeekly_OneSummaryPerDateAscending(t *testing.T) {
	shaper := NewShaper(time.UTC, 0)
	samples := []models.Sample{
		sample(at(2024, 1, 1, 9), "clear sky", 1, 5),
		sample(at(2024, 1, 1, 12), "light rain", 2, 9),
		sample(at(2024, 1, 1, 15), "few clouds", 0, 7),
		sample(at(2024, 1, 2, 9), "overcast clouds", 3, 4),
		sample(at(2024, 1, 3, 9), "snow", -2, 1),
	}

	summaries := shaper.Weekly(samples)

	require.Len(t, summaries, 3)
	assert.Equal(t, "2024-01-01", summaries[0].Date)
	assert.Equal(t, "2024-01-02", summaries[1].Date)
	assert.Equal(t, "2024-01-03", summaries[2].Date)

	day := summaries[0]
	assert.Equal(t, "Monday", day.Day)
	assert.Equal(t, 9.0, day.Temperature)
	assert.Equal(t, 0.0, day.TempMin)
	assert.Equal(t, "light rain", day.Description)
	assert.Equal(t, "10d", day.Icon)
	assert.Equal(t, 80.0, day.Humidity)
	assert.Equal(t, 3.0, day.WindSpeed)
	assert.Equal(t, 50.0, day.Clouds)
}

func TestWeekly_UnsortedInputStillAscending(t *testing.T) {
	shaper := NewShaper(time.UTC, 0)
	samples := []models.Sample{
		sample(at(2024, 1, 3, 9), "snow", 0, 1),
		sample(at(2024, 1, 1, 9), "clear sky", 0, 1),
		sample(at(2024, 1, 2, 9), "mist", 0, 1),
	}

	summaries := shaper.Weekly(samples)
	require.Len(t, summaries, 3)
	assert.Equal(t, "2024-01-01", summaries[0].Date)
	assert.Equal(t, "2024-01-03", summaries[2].Date)
}

func TestWeekly_CapsAtMaxDays(t *testing.T) {
	shaper := NewShaper(time.UTC, 2)

	var samples []models.Sample
	for d := 1; d <= 5; d++ {
		samples = append(samples, sample(at(2024, 1, d, 12), "clear sky", 0, float64(d)))
	}

	summaries := shaper.Weekly(samples)
	require.Len(t, summaries, 2)
	assert.Equal(t, "2024-01-02", summaries[1].Date)

	assert.Len(t, NewShaper(time.UTC, 0).Weekly(samples), 5)
}

func TestWeekly_DescriptionRanking(t *testing.T) {
	shaper := NewShaper(time.UTC, 0)

	tests := []struct {
		name     string
		observed []string
		want     string
	}{
		{"listed beats unlisted", []string{"purple haze", "broken clouds"}, "broken clouds"},
		{"earlier in list wins", []string{"clear sky", "mist", "drizzle"}, "drizzle"},
		{"unlisted ties keep first observed", []string{"purple haze", "green fog"}, "purple haze"},
		{"single", []string{"tornado"}, "tornado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var samples []models.Sample
			for i, d := range tt.observed {
				samples = append(samples, sample(at(2024, 1, 1, i*3), d, 0, 1))
			}

			summaries := shaper.Weekly(samples)
			require.Len(t, summaries, 1)
			assert.Equal(t, tt.want, summaries[0].Description)
		})
	}
}

func TestWeekly_CustomReference(t *testing.T) {
	shaper := NewShaper(time.UTC, 0).WithReference([]string{"clear sky", "light rain"})
	samples := []models.Sample{
		sample(at(2024, 1, 1, 9), "light rain", 0, 1),
		sample(at(2024, 1, 1, 12), "clear sky", 0, 1),
	}

	summaries := shaper.Weekly(samples)
	require.Len(t, summaries, 1)
	assert.Equal(t, "clear sky", summaries[0].Description)
}

func TestWeekly_Empty(t *testing.T) {
	summaries := NewShaper(time.UTC, 0).Weekly(nil)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestConditionCatalog(t *testing.T) {
	descriptions := Descriptions()
	require.Len(t, descriptions, len(Conditions))
	assert.Equal(t, "thunderstorm with light rain", descriptions[0])
	assert.Equal(t, "overcast clouds", descriptions[len(descriptions)-1])

	assert.Equal(t, "01d", IconFor("clear sky"))
	assert.Equal(t, "50d", IconFor("fog"))
	assert.Equal(t, "unknown", IconFor("meteor shower"))
}

func TestWeekly_LabelsEachDayFromItsOwnDate(t *testing.T) {
	shaper := NewShaper(time.UTC, 0)
	samples := []models.Sample{
		sample(at(2024, 1, 1, 9), "clear sky", 1, 5),
		// no samples for Tuesday
		sample(at(2024, 1, 3, 9), "snow", -2, 1),
		sample(at(2024, 1, 4, 9), "mist", 0, 2),
	}

	summaries := shaper.Weekly(samples)

	require.Len(t, summaries, 3)
	assert.Equal(t, "Monday", summaries[0].Day)
	assert.Equal(t, "Wednesday", summaries[1].Day)
	assert.Equal(t, "Thursday", summaries[2].Day)
}
