package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	clientCookie    = "client_id"
	clientCookieTTL = 365 * 24 * time.Hour
)

// clientID returns the caller's id from its cookie, issuing a new one when the
// cookie is missing or not a UUID.
func clientID(c *fiber.Ctx) string {
	if id := c.Cookies(clientCookie); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     clientCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(clientCookieTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return id
}
