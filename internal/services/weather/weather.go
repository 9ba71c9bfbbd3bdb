package weather

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"weather-forecasting/internal/models"
	"weather-forecasting/internal/repositories"
	"weather-forecasting/pkg/logger"
	"weather-forecasting/pkg/observe"
)

// ErrFetchFailed is returned when either half of the weather pair fails.
var ErrFetchFailed = errors.New("weather fetch failed")

// Weather is a resolved selection: both halves are always present.
type Weather struct {
	Current  models.Current
	Forecast models.Forecast
}

type Options struct {
	// SearchRPS limits upstream city searches; zero or less disables the limit.
	SearchRPS   float64
	SearchBurst int
}

// WeatherService represents the weather service.
type WeatherService struct {
	weather repositories.WeatherRepository
	cities  repositories.CityRepository
	limiter *rate.Limiter
	metrics *observe.Metrics
	l       *logger.Logger
}

func NewWeatherService(repos *repositories.Repositories, opts Options, metrics *observe.Metrics, l *logger.Logger) *WeatherService {
	limit := rate.Inf
	if opts.SearchRPS > 0 {
		limit = rate.Limit(opts.SearchRPS)
	}
	burst := opts.SearchBurst
	if burst <= 0 {
		burst = 1
	}

	return &WeatherService{
		weather: repos.Weather,
		cities:  repos.Cities,
		limiter: rate.NewLimiter(limit, burst),
		metrics: metrics,
		l:       l,
	}
}

// FetchWeather issues the current and forecast calls concurrently and waits for
// both. There is no partial result: any failure yields ErrFetchFailed.
func (s *WeatherService) FetchWeather(ctx context.Context, lat, lon float64) (Weather, error) {
	s.l.Info("starting weather fetch", map[string]any{
		"lat":  lat,
		"lon":  lon,
		"repo": s.weather.Name(),
	})

	var (
		result                  Weather
		currentErr, forecastErr error
		wg                      sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		result.Current, currentErr = s.weather.FetchCurrent(ctx, lat, lon)
		s.metrics.UpstreamCall(s.weather.Name(), "current", currentErr)
	}()

	go func() {
		defer wg.Done()
		result.Forecast, forecastErr = s.weather.FetchForecast(ctx, lat, lon)
		s.metrics.UpstreamCall(s.weather.Name(), "forecast", forecastErr)
	}()

	wg.Wait()

	if err := firstErr(currentErr, forecastErr); err != nil {
		s.l.Error(err, map[string]any{
			"lat":        lat,
			"lon":        lon,
			"currentOK":  currentErr == nil,
			"forecastOK": forecastErr == nil,
		})
		return Weather{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	s.l.Info("completed weather fetch", map[string]any{
		"city":    result.Current.City,
		"samples": len(result.Forecast.Samples),
	})

	return result, nil
}

// SearchCities never fails: upstream errors and rate limit waits that cannot
// be satisfied degrade to an empty page.
func (s *WeatherService) SearchCities(ctx context.Context, query string, offset int) models.CityPage {
	empty := models.CityPage{Locations: []models.Location{}, NextOffset: offset}

	query = strings.TrimSpace(query)
	if query == "" {
		return empty
	}

	if err := s.limiter.Wait(ctx); err != nil {
		s.l.Warning("city search rate limited", map[string]any{"query": query, "err": err.Error()})
		s.metrics.Search(err)
		return empty
	}

	page, err := s.cities.SearchCities(ctx, query, offset)
	s.metrics.UpstreamCall(s.cities.Name(), "cities", err)
	s.metrics.Search(err)
	if err != nil {
		s.l.Warning("city search failed", map[string]any{
			"query":  query,
			"offset": offset,
			"err":    err.Error(),
		})
		return empty
	}

	if page.Locations == nil {
		page.Locations = []models.Location{}
	}

	return page
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
