// Package forecast shapes raw forecast samples into the hourly strip and the
// weekly cards.
package forecast

import (
	"math"
	"sort"
	"time"

	"weather-forecasting/internal/datetime"
	"weather-forecasting/internal/models"
)

const DefaultMaxDays = 6

type Shaper struct {
	loc     *time.Location
	maxDays int
	rank    map[string]int
}

// NewShaper groups samples by calendar date in loc and keeps at most maxDays
// days in weekly summaries. Non-positive maxDays means DefaultMaxDays.
func NewShaper(loc *time.Location, maxDays int) *Shaper {
	if loc == nil {
		loc = time.UTC
	}
	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}

	return &Shaper{
		loc:     loc,
		maxDays: maxDays,
		rank:    rankOf(Descriptions()),
	}
}

// WithReference returns a copy ranking descriptions by the given list instead
// of the catalog.
func (s *Shaper) WithReference(descriptions []string) *Shaper {
	cp := *s
	cp.rank = rankOf(descriptions)
	return &cp
}

func (s *Shaper) Location() *time.Location {
	return s.loc
}

// Hourly keeps the samples dated date that are not before now, in input order.
func (s *Shaper) Hourly(samples []models.Sample, date string, now int64) []models.HourlyEntry {
	entries := make([]models.HourlyEntry, 0, len(samples))

	for _, sample := range samples {
		if sample.Dt < now || datetime.DateOf(sample.Dt, s.loc) != date {
			continue
		}

		entries = append(entries, models.HourlyEntry{
			Dt:          sample.Dt,
			Time:        datetime.ClockTime(sample.Dt, s.loc),
			Temperature: sample.Temp,
			Description: sample.Description,
			Icon:        iconOf(sample),
		})
	}

	return entries
}

type dayBucket struct {
	date         string
	tempMax      float64
	tempMin      float64
	humidity     float64
	wind         float64
	clouds       float64
	count        int
	descriptions []string
}

// Weekly returns one summary per calendar date, ascending, capped at maxDays.
func (s *Shaper) Weekly(samples []models.Sample) []models.DailySummary {
	buckets := make(map[string]*dayBucket)

	for _, sample := range samples {
		date := datetime.DateOf(sample.Dt, s.loc)

		b, ok := buckets[date]
		if !ok {
			b = &dayBucket{
				date:    date,
				tempMax: math.Inf(-1),
				tempMin: math.Inf(1),
			}
			buckets[date] = b
		}

		b.tempMax = math.Max(b.tempMax, sample.TempMax)
		b.tempMin = math.Min(b.tempMin, sample.TempMin)
		b.humidity += sample.Humidity
		b.wind += sample.WindSpeed
		b.clouds += sample.Clouds
		b.count++
		b.descriptions = append(b.descriptions, sample.Description)
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	// YYYY-MM-DD sorts lexically in calendar order.
	sort.Strings(dates)
	if len(dates) > s.maxDays {
		dates = dates[:s.maxDays]
	}

	summaries := make([]models.DailySummary, 0, len(dates))
	for _, date := range dates {
		b := buckets[date]
		n := float64(b.count)
		description := s.pick(b.descriptions)

		summaries = append(summaries, models.DailySummary{
			Date:        date,
			Day:         datetime.DayName(date),
			Temperature: b.tempMax,
			TempMin:     b.tempMin,
			Humidity:    round1(b.humidity / n),
			WindSpeed:   round1(b.wind / n),
			Clouds:      round1(b.clouds / n),
			Description: description,
			Icon:        IconFor(description),
		})
	}

	return summaries
}

// pick returns the observed description ranked highest by the reference list.
// Unlisted descriptions lose to listed ones; ties go to the first observed.
func (s *Shaper) pick(observed []string) string {
	best := ""
	bestRank := math.MaxInt

	for _, d := range observed {
		r, ok := s.rank[d]
		if !ok {
			r = len(s.rank)
		}
		if r < bestRank {
			best, bestRank = d, r
		}
	}

	return best
}

func rankOf(descriptions []string) map[string]int {
	rank := make(map[string]int, len(descriptions))
	for i, d := range descriptions {
		if _, dup := rank[d]; !dup {
			rank[d] = i
		}
	}
	return rank
}

func iconOf(sample models.Sample) string {
	if sample.Icon != "" {
		return sample.Icon
	}
	return IconFor(sample.Description)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
