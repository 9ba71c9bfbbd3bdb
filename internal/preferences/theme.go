package preferences

import (
	"context"
	"errors"

	"weather-forecasting/internal/models"
	"weather-forecasting/pkg/logger"
)

func ThemeKey(clientID string) string { return "theme:" + clientID }

// Themes reads and writes the theme preference of a client on top of a Store.
type Themes struct {
	store Store
	l     *logger.Logger
}

func NewThemes(store Store, l *logger.Logger) *Themes {
	return &Themes{store: store, l: l}
}

// Load falls back to light when nothing usable is stored.
func (t *Themes) Load(ctx context.Context, clientID string) models.Theme {
	v, err := t.store.Get(ctx, ThemeKey(clientID))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			t.l.Warning("failed to read theme preference", map[string]any{
				"client": clientID,
				"err":    err.Error(),
			})
		}
		return models.ThemeLight
	}
	return models.ParseTheme(v)
}

func (t *Themes) Save(ctx context.Context, clientID string, theme models.Theme) error {
	return t.store.Set(ctx, ThemeKey(clientID), string(theme))
}
