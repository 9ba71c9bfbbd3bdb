// Package session holds the per-client selection state machine.
package session

import (
	"context"
	"sync"
	"time"

	"weather-forecasting/internal/datetime"
	"weather-forecasting/internal/models"
	"weather-forecasting/internal/preferences"
	"weather-forecasting/internal/services/forecast"
	"weather-forecasting/internal/services/weather"
	"weather-forecasting/pkg/logger"
	"weather-forecasting/pkg/observe"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateError   State = "error"
	StateReady   State = "ready"
)

const (
	IdleMessage  = "Explore current weather data and 6-day forecast of more than 200,000 cities!"
	ErrorMessage = "Something went wrong. Please try again."
)

type Fetcher interface {
	FetchWeather(ctx context.Context, lat, lon float64) (weather.Weather, error)
}

type Deps struct {
	Fetcher Fetcher
	Shaper  *forecast.Shaper
	Themes  *preferences.Themes
	Metrics *observe.Metrics
	Logger  *logger.Logger
	Now     func() time.Time
}

// View is a snapshot of a session for rendering. Hourly and Weekly are only
// set in the ready state.
type View struct {
	ClientID string                `json:"client_id"`
	State    State                 `json:"state"`
	Seq      uint64                `json:"seq"`
	Theme    models.Theme          `json:"theme"`
	Message  string                `json:"message,omitempty"`
	Location *models.Location      `json:"location,omitempty"`
	Current  *models.Current       `json:"current,omitempty"`
	Hourly   []models.HourlyEntry  `json:"hourly,omitempty"`
	Weekly   []models.DailySummary `json:"weekly,omitempty"`
}

type Session struct {
	id   string
	deps Deps

	mu       sync.Mutex
	state    State
	seq      uint64
	theme    models.Theme
	location *models.Location
	current  *models.Current
	hourly   []models.HourlyEntry
	weekly   []models.DailySummary
	lastSeen time.Time
}

// New creates an idle session and reads the stored theme once.
func New(ctx context.Context, id string, deps Deps) *Session {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := &Session{
		id:    id,
		deps:  deps,
		state: StateIdle,
		theme: models.ThemeLight,
	}
	if deps.Themes != nil {
		s.theme = deps.Themes.Load(ctx, id)
	}
	s.lastSeen = deps.Now()

	return s
}

func (s *Session) ID() string { return s.id }

// Select moves to loading, fetches the weather pair, then settles in ready or
// error. Every call takes a new sequence number and only the most recently
// issued selection may settle the session.
func (s *Session) Select(ctx context.Context, loc models.Location) View {
	return s.SelectWithProgress(ctx, loc, nil)
}

// SelectWithProgress is Select that hands the loading view, tagged with this
// selection's sequence number, to onLoading before the fetch starts.
func (s *Session) SelectWithProgress(ctx context.Context, loc models.Location, onLoading func(View)) View {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state = StateLoading
	s.location = &loc
	s.lastSeen = s.deps.Now()
	loading := s.viewLocked()
	s.mu.Unlock()

	if onLoading != nil {
		onLoading(loading)
	}

	w, err := s.deps.Fetcher.FetchWeather(ctx, loc.Lat, loc.Lon)
	now := s.deps.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.deps.Logger.Debug("discarding superseded selection", map[string]any{
			"client": s.id,
			"seq":    seq,
			"latest": s.seq,
		})
		return s.viewLocked()
	}

	// a settled selection fully replaces whatever was shown before
	s.current, s.hourly, s.weekly = nil, nil, nil

	if err != nil {
		s.state = StateError
		s.deps.Metrics.Selection(string(StateError))
		return s.viewLocked()
	}

	current := w.Current
	if loc.Label != "" {
		current.City = loc.Label
	}
	today := datetime.FormatDate(now.In(s.deps.Shaper.Location()))

	s.current = &current
	s.hourly = s.deps.Shaper.Hourly(w.Forecast.Samples, today, now.Unix())
	s.weekly = s.deps.Shaper.Weekly(w.Forecast.Samples)
	s.state = StateReady
	s.deps.Metrics.Selection(string(StateReady))

	return s.viewLocked()
}

// ToggleTheme flips the theme and persists it. A failed write is logged and
// the in-memory theme still changes.
func (s *Session) ToggleTheme(ctx context.Context) models.Theme {
	s.mu.Lock()
	s.theme = s.theme.Toggle()
	theme := s.theme
	s.lastSeen = s.deps.Now()
	s.mu.Unlock()

	if s.deps.Themes != nil {
		if err := s.deps.Themes.Save(ctx, s.id, theme); err != nil {
			s.deps.Logger.Error(err, map[string]any{"client": s.id, "theme": theme})
		}
	}

	return theme
}

func (s *Session) Theme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.theme
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewLocked()
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.deps.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return now.Sub(s.lastSeen)
}

func (s *Session) viewLocked() View {
	v := View{
		ClientID: s.id,
		State:    s.state,
		Seq:      s.seq,
		Theme:    s.theme,
	}

	if s.location != nil {
		loc := *s.location
		v.Location = &loc
	}

	switch s.state {
	case StateIdle:
		v.Message = IdleMessage
	case StateError:
		v.Message = ErrorMessage
	case StateReady:
		current := *s.current
		v.Current = &current
		v.Hourly = append([]models.HourlyEntry{}, s.hourly...)
		v.Weekly = append([]models.DailySummary{}, s.weekly...)
	}

	return v
}
