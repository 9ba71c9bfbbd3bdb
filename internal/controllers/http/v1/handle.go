package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"weather-forecasting/internal/models"
	"weather-forecasting/internal/session"
	"weather-forecasting/internal/views"
)

// CitiesResponse is one page of search options.
type CitiesResponse struct {
	Query      string          `json:"query" example:"Rom"`
	Options    []models.Option `json:"options"`
	NextOffset int             `json:"next_offset" example:"10"`
	HasMore    bool            `json:"has_more" example:"true"`
}

// SelectRequest is a chosen search option.
type SelectRequest struct {
	Value string `json:"value" example:"41.8919 12.5113"`
	Label string `json:"label" example:"Rome, IT"`
}

type ThemeResponse struct {
	Theme models.Theme `json:"theme" example:"dark"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid offset"`
}

func (r *routes) handleIndex(c *fiber.Ctx) error {
	sess := r.sessions.Get(c.UserContext(), clientID(c))

	return c.Render(views.PageTemplate, views.NewPage(r.cfg.Title, sess.View(), r.now(), r.cfg.LiveSearchURL))
}

// handleCities godoc
// @Summary Search cities
// @Description Returns one page of cities whose name starts with q. Upstream failures yield an empty page.
// @Tags Search
// @Produce json
// @Param q query string true "Name prefix" example(Rom)
// @Param offset query integer false "Continuation offset from the previous page" minimum(0) example(0)
// @Success 200 {object} CitiesResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/cities [get]
func (r *routes) handleCities(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "Invalid offset",
			})
		}
		offset = parsed
	}

	page := r.search.SearchCities(c.UserContext(), query, offset)

	return c.JSON(CitiesResponse{
		Query:      query,
		Options:    page.Options(),
		NextOffset: page.NextOffset,
		HasMore:    page.HasMore,
	})
}

// handleSelect godoc
// @Summary Select a location
// @Description Fetches current weather and forecast for the selected option and returns the resulting view.
// @Tags Weather
// @Accept json
// @Produce json
// @Param selection body SelectRequest true "Selected option"
// @Success 200 {object} session.View
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} session.View "Upstream fetch failed, view is in the error state"
// @Router /api/v1/select [post]
func (r *routes) handleSelect(c *fiber.Ctx) error {
	var req SelectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Value) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing required field: value",
		})
	}

	loc, err := models.ParseOption(models.Option{Value: req.Value, Label: req.Label})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	sess := r.sessions.Get(c.UserContext(), clientID(c))
	view := sess.Select(c.UserContext(), loc)

	if view.State == session.StateError {
		return c.Status(fiber.StatusBadGateway).JSON(view)
	}

	return c.JSON(view)
}

// handleView godoc
// @Summary Current view
// @Description Returns the caller's current view state.
// @Tags Weather
// @Produce json
// @Success 200 {object} session.View
// @Router /api/v1/view [get]
func (r *routes) handleView(c *fiber.Ctx) error {
	return c.JSON(r.sessions.Get(c.UserContext(), clientID(c)).View())
}

// handleTheme godoc
// @Summary Theme preference
// @Tags Theme
// @Produce json
// @Success 200 {object} ThemeResponse
// @Router /api/v1/theme [get]
func (r *routes) handleTheme(c *fiber.Ctx) error {
	return c.JSON(ThemeResponse{Theme: r.sessions.Get(c.UserContext(), clientID(c)).Theme()})
}

// handleToggleTheme godoc
// @Summary Toggle theme
// @Description Flips between light and dark and persists the choice. Form posts are redirected back to the page.
// @Tags Theme
// @Produce json
// @Success 200 {object} ThemeResponse
// @Router /api/v1/theme/toggle [post]
func (r *routes) handleToggleTheme(c *fiber.Ctx) error {
	theme := r.sessions.Get(c.UserContext(), clientID(c)).ToggleTheme(c.UserContext())

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationForm) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	return c.JSON(ThemeResponse{Theme: theme})
}
