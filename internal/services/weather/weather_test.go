package weather_test

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-forecasting/internal/models"
	"weather-forecasting/internal/repositories"
	"weather-forecasting/internal/services/weather"
	"weather-forecasting/pkg/logger"
	"weather-forecasting/pkg/observe"
)

// MockRepository implements WeatherRepository and CityRepository for testing
type MockRepository struct {
	failCurrent  bool
	failForecast bool
	failSearch   bool
	delay        time.Duration
	searchCalls  atomic.Int32
	page         models.CityPage
}

func (m *MockRepository) Name() string {
	return "mock"
}

func (m *MockRepository) wait(ctx context.Context) error {
	if m.delay == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.delay):
		return nil
	}
}

func (m *MockRepository) FetchCurrent(ctx context.Context, lat, lon float64) (models.Current, error) {
	if err := m.wait(ctx); err != nil {
		return models.Current{}, err
	}
	if m.failCurrent {
		return models.Current{}, errors.New("mock current error")
	}
	return models.Current{City: "Rome, IT", Sample: models.Sample{Temp: 7}}, nil
}

func (m *MockRepository) FetchForecast(ctx context.Context, lat, lon float64) (models.Forecast, error) {
	if err := m.wait(ctx); err != nil {
		return models.Forecast{}, err
	}
	if m.failForecast {
		return models.Forecast{}, errors.New("mock forecast error")
	}
	return models.Forecast{Lat: lat, Lon: lon, Samples: []models.Sample{{Dt: 1}, {Dt: 2}}}, nil
}

func (m *MockRepository) SearchCities(ctx context.Context, query string, offset int) (models.CityPage, error) {
	m.searchCalls.Add(1)
	if m.failSearch {
		return models.CityPage{}, errors.New("mock search error")
	}
	return m.page, nil
}

func newService(mock *MockRepository, opts weather.Options, metrics *observe.Metrics) *weather.WeatherService {
	l := logger.NewZapLogger("test-app", io.Discard)
	repos := &repositories.Repositories{Weather: mock, Cities: mock}
	return weather.NewWeatherService(repos, opts, metrics, l)
}

func TestWeatherService_FetchWeather_Success(t *testing.T) {
	service := newService(&MockRepository{}, weather.Options{}, nil)

	result, err := service.FetchWeather(context.Background(), 41.89, 12.51)
	require.NoError(t, err)

	assert.Equal(t, "Rome, IT", result.Current.City)
	assert.Len(t, result.Forecast.Samples, 2)
	assert.Equal(t, 41.89, result.Forecast.Lat)
}

func TestWeatherService_FetchWeather_BothOrNothing(t *testing.T) {
	tests := []struct {
		name string
		mock *MockRepository
	}{
		{"current fails", &MockRepository{failCurrent: true}},
		{"forecast fails", &MockRepository{failForecast: true}},
		{"both fail", &MockRepository{failCurrent: true, failForecast: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(tt.mock, weather.Options{}, nil)

			result, err := service.FetchWeather(context.Background(), 1, 2)
			require.Error(t, err)
			assert.ErrorIs(t, err, weather.ErrFetchFailed)
			assert.Empty(t, result.Current.City)
			assert.Nil(t, result.Forecast.Samples)
		})
	}
}

func TestWeatherService_FetchWeather_RunsConcurrently(t *testing.T) {
	service := newService(&MockRepository{delay: 100 * time.Millisecond}, weather.Options{}, nil)

	start := time.Now()
	_, err := service.FetchWeather(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 190*time.Millisecond)
}

func TestWeatherService_FetchWeather_ContextTimeout(t *testing.T) {
	service := newService(&MockRepository{delay: time.Second}, weather.Options{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := service.FetchWeather(ctx, 1, 2)
	assert.ErrorIs(t, err, weather.ErrFetchFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWeatherService_SearchCities(t *testing.T) {
	mock := &MockRepository{page: models.CityPage{
		Locations:  []models.Location{models.NewLocation("Rome", "Italy", "IT", 41.89, 12.51)},
		NextOffset: 1,
	}}
	service := newService(mock, weather.Options{}, nil)

	page := service.SearchCities(context.Background(), "  Rom ", 0)
	require.Len(t, page.Locations, 1)
	assert.Equal(t, "Rome, IT", page.Locations[0].Label)
}

func TestWeatherService_SearchCities_DegradesToEmpty(t *testing.T) {
	mock := &MockRepository{failSearch: true}
	service := newService(mock, weather.Options{}, nil)

	page := service.SearchCities(context.Background(), "Rom", 20)
	assert.NotNil(t, page.Locations)
	assert.Empty(t, page.Locations)
	assert.False(t, page.HasMore)
	assert.Equal(t, 20, page.NextOffset)
}

func TestWeatherService_SearchCities_BlankQuerySkipsUpstream(t *testing.T) {
	mock := &MockRepository{}
	service := newService(mock, weather.Options{}, nil)

	page := service.SearchCities(context.Background(), "   ", 0)
	assert.Empty(t, page.Locations)
	assert.Equal(t, int32(0), mock.searchCalls.Load())
}

func TestWeatherService_SearchCities_RateLimitWaitFails(t *testing.T) {
	mock := &MockRepository{}
	service := newService(mock, weather.Options{SearchRPS: 0.001, SearchBurst: 1}, nil)

	// first call consumes the only token
	service.SearchCities(context.Background(), "Rom", 0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	page := service.SearchCities(ctx, "Rome", 0)
	assert.Empty(t, page.Locations)
	assert.Equal(t, int32(1), mock.searchCalls.Load())
}

func TestWeatherService_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observe.NewMetrics(reg)
	service := newService(&MockRepository{failForecast: true}, weather.Options{}, metrics)

	_, err := service.FetchWeather(context.Background(), 1, 2)
	require.Error(t, err)
	service.SearchCities(context.Background(), "Rom", 0)

	count, err := testutil.GatherAndCount(reg, "weather_upstream_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = testutil.GatherAndCount(reg, "weather_city_searches_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
