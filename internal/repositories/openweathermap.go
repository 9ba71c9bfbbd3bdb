package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"weather-forecasting/internal/models"
	"weather-forecasting/pkg/logger"
)

const OpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5"

type OpenWeatherMapRepository struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
	cb         *gobreaker.CircuitBreaker
	l          *logger.Logger
}

func NewOpenWeatherMapRepository(baseURL, apiKey string, l *logger.Logger, httpClient HTTPClient) (*OpenWeatherMapRepository, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if baseURL == "" {
		baseURL = OpenWeatherMapBaseURL
	}

	return &OpenWeatherMapRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		cb:         newBreaker(OpenWeatherMapName, l),
		l:          l,
	}, nil
}

func (o *OpenWeatherMapRepository) Name() string {
	return OpenWeatherMapName
}

// owmReading is the part shared by /weather and each /forecast list item.
type owmReading struct {
	Dt    int64  `json:"dt"`
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
}

func (r owmReading) sample() models.Sample {
	s := models.Sample{
		Dt:        r.Dt,
		DtTxt:     r.DtTxt,
		Temp:      r.Main.Temp,
		FeelsLike: r.Main.FeelsLike,
		TempMin:   r.Main.TempMin,
		TempMax:   r.Main.TempMax,
		Humidity:  r.Main.Humidity,
		Pressure:  r.Main.Pressure,
		WindSpeed: r.Wind.Speed,
		Clouds:    r.Clouds.All,
	}
	if len(r.Weather) > 0 {
		s.ConditionCode = r.Weather[0].ID
		s.Description = r.Weather[0].Description
		s.Icon = r.Weather[0].Icon
	}
	return s
}

type owmCurrentResponse struct {
	owmReading
	Name       string `json:"name"`
	Timezone   int    `json:"timezone"`
	Visibility int    `json:"visibility"`
	Sys        struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

type owmForecastResponse struct {
	List []owmReading `json:"list"`
	City struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	} `json:"city"`
}

type owmErrorResponse struct {
	Message string `json:"message"`
}

func (o *OpenWeatherMapRepository) FetchCurrent(ctx context.Context, lat, lon float64) (models.Current, error) {
	return execute(o.cb, func() (models.Current, error) {
		var response owmCurrentResponse
		if err := o.get(ctx, "weather", lat, lon, &response); err != nil {
			return models.Current{}, err
		}

		if len(response.Weather) == 0 {
			return models.Current{}, errors.New("no weather conditions in response")
		}

		current := models.Current{
			City:       response.Name,
			Timezone:   response.Timezone,
			Sunrise:    response.Sys.Sunrise,
			Sunset:     response.Sys.Sunset,
			Visibility: response.Visibility,
			Sample:     response.sample(),
		}
		if response.Sys.Country != "" {
			current.City = fmt.Sprintf("%s, %s", response.Name, response.Sys.Country)
		}

		return current, nil
	})
}

func (o *OpenWeatherMapRepository) FetchForecast(ctx context.Context, lat, lon float64) (models.Forecast, error) {
	return execute(o.cb, func() (models.Forecast, error) {
		forecast := models.Forecast{Lat: lat, Lon: lon}

		var response owmForecastResponse
		if err := o.get(ctx, "forecast", lat, lon, &response); err != nil {
			return forecast, err
		}

		if len(response.List) == 0 {
			return forecast, errors.New("no forecast data available")
		}

		forecast.City = response.City.Name
		forecast.Samples = make([]models.Sample, 0, len(response.List))
		for _, item := range response.List {
			forecast.Samples = append(forecast.Samples, item.sample())
		}

		o.l.Debug("parsed forecast response", map[string]any{
			"params": forecast.RequestParams(),
		})

		return forecast, nil
	})
}

func (o *OpenWeatherMapRepository) get(ctx context.Context, endpoint string, lat, lon float64, out any) error {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("appid", o.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/"+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	o.l.Info("making openweathermap API request", map[string]any{
		"endpoint": endpoint,
		"lat":      lat,
		"lon":      lon,
	})

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr owmErrorResponse
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Message != "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}
