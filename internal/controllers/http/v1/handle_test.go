package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-forecasting/config"
	"weather-forecasting/internal/models"
	"weather-forecasting/internal/preferences"
	"weather-forecasting/internal/services/forecast"
	"weather-forecasting/internal/services/weather"
	"weather-forecasting/internal/session"
	"weather-forecasting/internal/views"
	"weather-forecasting/pkg/httpserver"
	"weather-forecasting/pkg/logger"
	"weather-forecasting/pkg/observe"
)

type fakeSearch struct{ lastOffset int }

func (f *fakeSearch) SearchCities(_ context.Context, query string, offset int) models.CityPage {
	f.lastOffset = offset
	if query == "" {
		return models.CityPage{Locations: []models.Location{}}
	}
	return models.CityPage{
		Locations:  []models.Location{models.NewLocation("Rome", "Italy", "IT", 41.8919, 12.5113)},
		NextOffset: offset + 1,
		HasMore:    true,
	}
}

type fakeFetcher struct{ fail bool }

func (f *fakeFetcher) FetchWeather(_ context.Context, lat, lon float64) (weather.Weather, error) {
	if f.fail {
		return weather.Weather{}, weather.ErrFetchFailed
	}
	now := time.Now().UTC()
	return weather.Weather{
		Current: models.Current{City: "Roma", Sample: models.Sample{Temp: 7}},
		Forecast: models.Forecast{Samples: []models.Sample{
			{Dt: now.Add(time.Hour).Unix(), Description: "clear sky", TempMax: 9},
			{Dt: now.Add(26 * time.Hour).Unix(), Description: "snow", TempMax: 1},
		}},
	}, nil
}

type testServer struct {
	app     *fiber.App
	fetcher *fakeFetcher
	search  *fakeSearch
	store   *preferences.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	l := logger.NewZapLogger("test-app", io.Discard)
	fetcher := &fakeFetcher{}
	search := &fakeSearch{}
	store := preferences.NewMemoryStore()

	sessions, err := session.NewManager(session.Deps{
		Fetcher: fetcher,
		Shaper:  forecast.NewShaper(time.UTC, 6),
		Themes:  preferences.NewThemes(store, l),
		Logger:  l,
	}, config.SessionConfig{})
	require.NoError(t, err)

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	app := httpserver.InitFiberServer(httpserver.Options{AppName: "test-app", Views: renderer.Views()}, l)
	NewRouter(app, Config{Title: "Weather"}, search, sessions, observe.NewMetrics(prometheus.NewRegistry()), l)

	return &testServer{app: app, fetcher: fetcher, search: search, store: store}
}

func (s *testServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func withClient(req *http.Request, id string) *http.Request {
	req.AddCookie(&http.Cookie{Name: clientCookie, Value: id})
	return req
}

const clientA = "6f1c2d0e-8a51-4c1b-9a55-0b7f4b7e2a10"

func TestIndex_IssuesClientCookie(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Explore current weather data")

	var issued string
	for _, c := range resp.Cookies() {
		if c.Name == clientCookie {
			issued = c.Value
		}
	}
	assert.Len(t, issued, 36)
}

func TestIndex_ReusesValidClientCookie(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, withClient(httptest.NewRequest(http.MethodGet, "/", nil), clientA))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, clientA)
	assert.Empty(t, resp.Cookies())
}

func TestCities(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/cities?q=Rom&offset=10", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out CitiesResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "Rom", out.Query)
	require.Len(t, out.Options, 1)
	assert.Equal(t, "41.8919 12.5113", out.Options[0].Value)
	assert.Equal(t, "Rome, IT", out.Options[0].Label)
	assert.Equal(t, 11, out.NextOffset)
	assert.Equal(t, 10, s.search.lastOffset)
}

func TestCities_BadOffset(t *testing.T) {
	s := newTestServer(t)

	for _, offset := range []string{"abc", "-1"} {
		resp, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/cities?q=Rom&offset="+offset, nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func selectRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/select", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return withClient(req, clientA)
}

func TestSelect_Ready(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, selectRequest(`{"value":"41.8919 12.5113","label":"Rome, IT"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view session.View
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Equal(t, session.StateReady, view.State)
	assert.Equal(t, "Rome, IT", view.Current.City)
	assert.NotEmpty(t, view.Weekly)

	// the session keeps the result
	resp, body = s.do(t, withClient(httptest.NewRequest(http.MethodGet, "/api/v1/view", nil), clientA))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Equal(t, session.StateReady, view.State)
}

func TestSelect_UpstreamFailure(t *testing.T) {
	s := newTestServer(t)
	s.fetcher.fail = true

	resp, body := s.do(t, selectRequest(`{"value":"41.8919 12.5113","label":"Rome, IT"}`))
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var view session.View
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	assert.Equal(t, session.StateError, view.State)
	assert.Equal(t, session.ErrorMessage, view.Message)
}

func TestSelect_BadInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"missing value", `{"label":"Rome, IT"}`},
		{"malformed value", `{"value":"41.8919,12.5113","label":"Rome, IT"}`},
		{"out of range", `{"value":"141 12","label":"Rome, IT"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := s.do(t, selectRequest(tt.body))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestTheme_ToggleTwiceRestores(t *testing.T) {
	s := newTestServer(t)

	get := func() ThemeResponse {
		_, body := s.do(t, withClient(httptest.NewRequest(http.MethodGet, "/api/v1/theme", nil), clientA))
		var out ThemeResponse
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		return out
	}
	toggle := func() ThemeResponse {
		_, body := s.do(t, withClient(httptest.NewRequest(http.MethodPost, "/api/v1/theme/toggle", nil), clientA))
		var out ThemeResponse
		require.NoError(t, json.Unmarshal([]byte(body), &out))
		return out
	}

	assert.Equal(t, models.ThemeLight, get().Theme)
	assert.Equal(t, models.ThemeDark, toggle().Theme)

	v, err := s.store.Get(context.Background(), preferences.ThemeKey(clientA))
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	assert.Equal(t, models.ThemeLight, toggle().Theme)
	assert.Equal(t, models.ThemeLight, get().Theme)
}

func TestTheme_FormToggleRedirects(t *testing.T) {
	s := newTestServer(t)

	req := withClient(httptest.NewRequest(http.MethodPost, "/api/v1/theme/toggle", strings.NewReader("")), clientA)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, _ := s.do(t, req)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestManagementEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/manage/health", "/manage/ready", "/metrics"} {
		resp, _ := s.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
