package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nate-sepich/strava-gh-viz/internal/credstore"
	"github.com/nate-sepich/strava-gh-viz/internal/report"
	"github.com/nate-sepich/strava-gh-viz/internal/strava"
)

const dateLayout = "2006-01-02"

func (s *Server) registerRuns(app *fiber.App) {
	app.Get("/runs", func(c *fiber.Ctx) error {
		token, ok, err := s.resolveToken(c)
		if err != nil {
			return s.fail(c, err)
		}
		if !ok {
			return s.unauthorized(c)
		}
		after, before, err := window(c)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		ctx, cancel := context.WithTimeout(c.Context(), s.cfg.FetchDeadline)
		defer cancel()
		activities, err := s.acts.FetchActivities(ctx, token, after, before)
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(report.Summaries(activities, true))
	})

	app.Get("/runs/daily", func(c *fiber.Ctx) error {
		token, ok, err := s.resolveToken(c)
		if err != nil {
			return s.fail(c, err)
		}
		if !ok {
			return s.unauthorized(c)
		}
		after, before, err := window(c)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		ctx, cancel := context.WithTimeout(c.Context(), s.cfg.FetchDeadline)
		defer cancel()
		activities, err := s.acts.FetchActivities(ctx, token, after, before)
		if err != nil {
			return s.fail(c, err)
		}
		sums := report.Summaries(activities, true)
		return c.JSON(report.DailyMileage(sums, after, before))
	})
}

// resolveToken prefers an explicit bearer token; otherwise the stored
// credentials for the requested user, refreshed if expired.
func (s *Server) resolveToken(c *fiber.Ctx) (string, bool, error) {
	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		if tok := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); tok != "" {
			return tok, true, nil
		}
	}
	userID := c.Query("user", s.cfg.DefaultUserID)
	return s.auth.ValidAccessToken(c.Context(), userID)
}

func (s *Server) unauthorized(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
		"error":          "no valid credentials",
		"requires_oauth": true,
		"oauth_url":      "/oauth/strava/start",
	})
}

// window selects the aggregation range: explicit start/end, a whole year,
// or the trailing 365 days.
func window(c *fiber.Ctx) (time.Time, time.Time, error) {
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid year %q", y)
		}
		after := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		before := time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC)
		return after, before, nil
	}

	startQ, endQ := c.Query("start"), c.Query("end")
	if startQ != "" || endQ != "" {
		if startQ == "" || endQ == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("start and end must be supplied together")
		}
		after, err := time.Parse(dateLayout, startQ)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start %q", startQ)
		}
		end, err := time.Parse(dateLayout, endQ)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end %q", endQ)
		}
		if end.Before(after) {
			return time.Time{}, time.Time{}, fmt.Errorf("end precedes start")
		}
		before := end.Add(24*time.Hour - time.Second)
		return after, before, nil
	}

	now := time.Now()
	return now.AddDate(0, 0, -365), now, nil
}

// fail maps the error taxonomy onto status codes; every boundary error
// becomes a structured {"error": ...} body.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	rid, _ := c.Locals("request_id").(string)
	s.log.Error("request failed", "request_id", rid, "path", c.Path(), "err", err)

	var authErr *strava.AuthError
	var fetchErr *strava.FetchError
	switch {
	case errors.As(err, &authErr):
		// A provider verdict is the caller's credentials problem; a
		// transport fault that never got an answer is upstream failure.
		if authErr.Status != 0 {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &fetchErr):
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, credstore.ErrStorage):
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
