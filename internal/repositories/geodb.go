package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"weather-forecasting/internal/models"
	"weather-forecasting/pkg/logger"
)

const (
	GeoDBBaseURL = "https://wft-geo-db.p.rapidapi.com/v1/geo"

	defaultPageSize      = 10
	defaultMinPopulation = 10000
)

type GeoDBOptions struct {
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	PageSize      int
	MinPopulation int
}

// GeoDBRepository searches GeoDB Cities through RapidAPI.
type GeoDBRepository struct {
	client        *resty.Client
	pageSize      int
	minPopulation int
	cb            *gobreaker.CircuitBreaker
	l             *logger.Logger
}

func NewGeoDBRepository(opts GeoDBOptions, l *logger.Logger) (*GeoDBRepository, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("API key cannot be empty")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = GeoDBBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.MinPopulation <= 0 {
		opts.MinPopulation = defaultMinPopulation
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("X-RapidAPI-Key", opts.APIKey).
		SetHeader("X-RapidAPI-Host", base.Host).
		SetTimeout(opts.Timeout)

	return &GeoDBRepository{
		client:        client,
		pageSize:      opts.PageSize,
		minPopulation: opts.MinPopulation,
		cb:            newBreaker(GeoDBName, l),
		l:             l,
	}, nil
}

func (g *GeoDBRepository) Name() string {
	return GeoDBName
}

type geoDBCity struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type geoDBResponse struct {
	Data     []geoDBCity `json:"data"`
	Metadata struct {
		CurrentOffset int `json:"currentOffset"`
		TotalCount    int `json:"totalCount"`
	} `json:"metadata"`
}

func (g *GeoDBRepository) SearchCities(ctx context.Context, query string, offset int) (models.CityPage, error) {
	if offset < 0 {
		offset = 0
	}

	return execute(g.cb, func() (models.CityPage, error) {
		var response geoDBResponse

		g.l.Info("making geodb API request", map[string]any{
			"query":  query,
			"offset": offset,
		})

		resp, err := g.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"namePrefix":    query,
				"minPopulation": strconv.Itoa(g.minPopulation),
				"offset":        strconv.Itoa(offset),
				"limit":         strconv.Itoa(g.pageSize),
			}).
			SetResult(&response).
			Get("/cities")
		if err != nil {
			return models.CityPage{}, fmt.Errorf("failed to do request: %w", err)
		}

		if !resp.IsSuccess() {
			return models.CityPage{}, fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode(), resp.Status())
		}

		page := models.CityPage{Locations: make([]models.Location, 0, len(response.Data))}
		for _, city := range response.Data {
			page.Locations = append(page.Locations,
				models.NewLocation(city.Name, city.Country, city.CountryCode, city.Latitude, city.Longitude))
		}
		page.NextOffset = offset + len(response.Data)
		page.HasMore = len(response.Data) > 0 && page.NextOffset < response.Metadata.TotalCount

		return page, nil
	})
}
