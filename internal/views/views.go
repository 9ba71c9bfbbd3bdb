// Package views renders sessions as HTML.
package views

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"math"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"

	"weather-forecasting/internal/datetime"
	"weather-forecasting/internal/models"
	"weather-forecasting/internal/session"
)

//go:embed templates/*.html
var templates embed.FS

type Palette struct {
	Mode       string
	Background string
	Paper      string
	Text       string
}

var (
	lightPalette = Palette{Mode: "light", Background: "#f5f5f5", Paper: "#ffffff", Text: "#000000"}
	darkPalette  = Palette{Mode: "dark", Background: "#121212", Paper: "#1e1e1e", Text: "#ffffff"}
)

func PaletteFor(theme models.Theme) Palette {
	if theme == models.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// Page is everything the full page template needs.
type Page struct {
	Title         string
	View          session.View
	Palette       Palette
	Date          string
	Clock         string
	LiveSearchURL string
}

func NewPage(title string, v session.View, now time.Time, liveSearchURL string) Page {
	return Page{
		Title:         title,
		View:          v,
		Palette:       PaletteFor(v.Theme),
		Date:          datetime.UTCDatetime(now),
		Clock:         datetime.UTCTime(now),
		LiveSearchURL: liveSearchURL,
	}
}

// Template names defined in templates/*.html.
const (
	PageTemplate    = "page"
	ContentTemplate = "content"
)

// Renderer wraps the fiber html engine so the same templates serve fiber's
// c.Render and the websocket content fragments.
type Renderer struct {
	engine *html.Engine
}

func NewRenderer() (*Renderer, error) {
	dir, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}

	engine := html.NewFileSystem(http.FS(dir), ".html")
	engine.AddFunc("temp", func(v float64) string { return fmt.Sprintf("%d °C", int(math.Round(v))) })
	engine.AddFunc("percent", func(v float64) string { return fmt.Sprintf("%d %%", int(math.Round(v))) })
	engine.AddFunc("speed", func(v float64) string { return fmt.Sprintf("%.1f m/s", v) })

	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Renderer{engine: engine}, nil
}

// Views is passed to fiber.Config so handlers can call c.Render.
func (r *Renderer) Views() fiber.Views {
	return r.engine
}

func (r *Renderer) Page(w io.Writer, p Page) error {
	return r.engine.Render(w, PageTemplate, p)
}

// Content renders only the state-dependent region below the search box.
func (r *Renderer) Content(w io.Writer, v session.View) error {
	return r.engine.Render(w, ContentTemplate, v)
}
