package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// OAuth endpoints for Strava. The callback deliberately hands the token
// fields back to the front-end as query parameters for client-side storage.

func (s *Server) registerOAuth(app *fiber.App) {
	app.Get("/oauth/strava/start", func(c *fiber.Ctx) error {
		return c.Redirect(s.auth.AuthorizeURL(), http.StatusFound)
	})

	app.Get("/oauth/strava/callback", func(c *fiber.Ctx) error {
		if err := s.auth.ValidateState(c.Query("state")); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid state"})
		}
		code := c.Query("code")
		if code == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "missing code"})
		}
		userID := c.Query("user", s.cfg.DefaultUserID)

		tok, err := s.auth.ExchangeCode(c.Context(), userID, code)
		if err != nil {
			return s.fail(c, err)
		}

		q := url.Values{}
		q.Set("access_token", tok.AccessToken)
		q.Set("refresh_token", tok.RefreshToken)
		q.Set("expires_at", strconv.FormatInt(tok.ExpiresAt, 10))
		return c.Redirect(s.cfg.FrontendURL+"?"+q.Encode(), http.StatusFound)
	})

	app.Post("/oauth/strava/token", func(c *fiber.Ctx) error {
		var in struct {
			Code string `json:"code"`
			User string `json:"user"`
		}
		if err := json.Unmarshal(c.Body(), &in); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json: " + err.Error()})
		}
		if in.Code == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "missing code"})
		}
		userID := in.User
		if userID == "" {
			userID = s.cfg.DefaultUserID
		}

		tok, err := s.auth.ExchangeCode(c.Context(), userID, in.Code)
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(tok)
	})
}
