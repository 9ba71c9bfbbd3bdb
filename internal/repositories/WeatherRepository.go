package repositories

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"weather-forecasting/config"
	"weather-forecasting/internal/models"
	"weather-forecasting/pkg/logger"
)

const (
	OpenWeatherMapName = "openweathermap"
	GeoDBName          = "geodb"

	defaultTimeout = 30 * time.Second
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WeatherRepository fetches current conditions and the 3-hour forecast feed.
type WeatherRepository interface {
	Name() string
	FetchCurrent(ctx context.Context, lat, lon float64) (models.Current, error)
	FetchForecast(ctx context.Context, lat, lon float64) (models.Forecast, error)
}

// CityRepository pages through cities whose name starts with query.
type CityRepository interface {
	Name() string
	SearchCities(ctx context.Context, query string, offset int) (models.CityPage, error)
}

type Repositories struct {
	Weather WeatherRepository
	Cities  CityRepository
}

func InitRepositories(cfg *config.Config, l *logger.Logger) (*Repositories, error) {
	repos := &Repositories{}

	for _, api := range cfg.GetWeatherAPIs() {
		switch api.Name {
		case OpenWeatherMapName:
			repo, err := NewOpenWeatherMapRepository(api.BaseURL, api.APIKey, l, &http.Client{Timeout: timeoutOf(api)})
			if err != nil {
				return nil, fmt.Errorf("%s: %w", api.Name, err)
			}
			repos.Weather = repo
		case GeoDBName:
			repo, err := NewGeoDBRepository(GeoDBOptions{
				BaseURL:       api.BaseURL,
				APIKey:        api.APIKey,
				Timeout:       timeoutOf(api),
				PageSize:      cfg.Search.PageSize,
				MinPopulation: cfg.Search.MinPopulation,
			}, l)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", api.Name, err)
			}
			repos.Cities = repo
		default:
			l.Warning("unknown upstream api in config, skipping", map[string]any{"name": api.Name})
		}
	}

	if repos.Weather == nil {
		return nil, fmt.Errorf("no %q api configured", OpenWeatherMapName)
	}
	if repos.Cities == nil {
		return nil, fmt.Errorf("no %q api configured", GeoDBName)
	}

	return repos, nil
}

func timeoutOf(api config.WeatherAPIConfig) time.Duration {
	if api.Timeout <= 0 {
		return defaultTimeout
	}
	return time.Duration(api.Timeout) * time.Second
}
