package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"weather-forecasting/config"
	v1 "weather-forecasting/internal/controllers/http/v1"
	"weather-forecasting/internal/controllers/ws"
	"weather-forecasting/internal/preferences"
	"weather-forecasting/internal/repositories"
	"weather-forecasting/internal/services/forecast"
	"weather-forecasting/internal/services/weather"
	"weather-forecasting/internal/session"
	"weather-forecasting/internal/views"
	"weather-forecasting/pkg/httpserver"
	"weather-forecasting/pkg/logger"
	"weather-forecasting/pkg/observe"
)

// @title Weather Forecasting API
// @version 1.0.0
// @description City search, current weather and multi-day forecast views backed by OpenWeatherMap and GeoDB Cities.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Search
// @tag.description City search
// @tag.name Weather
// @tag.description Location selection and views
// @tag.name Theme
// @tag.description Light and dark mode preference
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	hook := observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.IsDevelopment(), cnf.Sentry.DSN)
	l := logger.New(logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
	}, os.Stdout, hook)
	hook.SetLogger(l)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observe.NewMetrics(reg)

	repos, err := repositories.InitRepositories(cnf, l)
	if err != nil {
		l.Fatal("cannot init repositories", map[string]any{"err": err.Error()})
	}

	service := weather.NewWeatherService(repos, weather.Options{
		SearchRPS:   cnf.Search.RPS,
		SearchBurst: cnf.Search.Burst,
	}, metrics, l)

	store, err := preferences.NewStore(cnf.Preferences)
	if err != nil {
		l.Fatal("cannot open preferences store", map[string]any{"err": err.Error(), "backend": cnf.Preferences.Backend})
	}

	sessions, err := session.NewManager(session.Deps{
		Fetcher: service,
		Shaper:  forecast.NewShaper(cnf.Location(), cnf.Weather.ForecastDays),
		Themes:  preferences.NewThemes(store, l),
		Metrics: metrics,
		Logger:  l,
	}, cnf.Session)
	if err != nil {
		l.Fatal("cannot init sessions", map[string]any{"err": err.Error()})
	}
	sessions.Start()

	renderer, err := views.NewRenderer()
	if err != nil {
		l.Fatal("cannot parse views", map[string]any{"err": err.Error()})
	}

	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cnf.Server.IdleTimeout) * time.Second,
		Views:        renderer.Views(),
	}, l)

	v1.NewRouter(
		app,
		v1.Config{Title: "The Weather Forecasting", LiveSearchURL: cnf.LiveSearchURL()},
		service,
		sessions,
		metrics,
		l,
	)

	liveSearch := &http.Server{
		Addr:        ":" + cnf.LiveSearch.Port,
		Handler:     ws.NewServer(service, sessions, renderer, cnf.Search.Debounce, l).Routes(),
		ReadTimeout: time.Duration(cnf.Server.ReadTimeout) * time.Second,
		IdleTimeout: time.Duration(cnf.Server.IdleTimeout) * time.Second,
	}

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	go func() {
		if err := liveSearch.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("cannot run the live search server", map[string]any{"err": err.Error()})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":           cnf.Server.Port,
		"liveSearchPort": cnf.LiveSearch.Port,
		"preferences":    cnf.Preferences.Backend,
		"forecastDays":   cnf.Weather.ForecastDays,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		_ = liveSearch.Shutdown(shutdownCtx)
		sessions.Stop()
		if err := store.Close(); err != nil {
			l.Error(err, map[string]any{"backend": cnf.Preferences.Backend})
		}
		hook.Flush()
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
