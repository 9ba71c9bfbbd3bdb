package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"

	_ "weather-forecasting/docs"
	"weather-forecasting/internal/models"
	"weather-forecasting/internal/session"
	"weather-forecasting/pkg/logger"
	"weather-forecasting/pkg/observe"
)

type CitySearcher interface {
	SearchCities(ctx context.Context, query string, offset int) models.CityPage
}

type Config struct {
	Title         string
	LiveSearchURL string
}

type routes struct {
	cfg      Config
	search   CitySearcher
	sessions *session.Manager
	metrics  *observe.Metrics
	now      func() time.Time
	l        *logger.Logger
}

func NewRouter(
	app *fiber.App,
	cfg Config,
	search CitySearcher,
	sessions *session.Manager,
	metrics *observe.Metrics,
	l *logger.Logger,
) {
	r := &routes{
		cfg:      cfg,
		search:   search,
		sessions: sessions,
		metrics:  metrics,
		now:      time.Now,
		l:        l,
	}

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	app.Get("/", r.handleIndex)

	api := app.Group("/api/v1")
	api.Get("/cities", r.handleCities)
	api.Post("/select", r.handleSelect)
	api.Get("/view", r.handleView)
	api.Get("/theme", r.handleTheme)
	api.Post("/theme/toggle", r.handleToggleTheme)
}
