package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nate-sepich/strava-gh-viz/internal/report"
)

func (s *Server) registerAthlete(app *fiber.App) {
	app.Get("/athlete", func(c *fiber.Ctx) error {
		token, ok, err := s.resolveToken(c)
		if err != nil {
			return s.fail(c, err)
		}
		if !ok {
			return s.unauthorized(c)
		}

		ctx, cancel := context.WithTimeout(c.Context(), s.cfg.FetchDeadline)
		defer cancel()
		athlete, err := s.acts.FetchAthlete(ctx, token)
		if err != nil {
			return s.fail(c, err)
		}
		stats, err := s.acts.FetchAthleteStats(ctx, token, athlete.ID)
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(report.BuildProfile(athlete, stats))
	})

	app.Get("/runs/summary", func(c *fiber.Ctx) error {
		token, ok, err := s.resolveToken(c)
		if err != nil {
			return s.fail(c, err)
		}
		if !ok {
			return s.unauthorized(c)
		}

		year := time.Now().Year()
		if y := c.Query("year"); y != "" {
			year, err = strconv.Atoi(y)
			if err != nil {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("invalid year %q", y)})
			}
		}
		after := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		before := time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC)

		ctx, cancel := context.WithTimeout(c.Context(), s.cfg.FetchDeadline)
		defer cancel()
		activities, err := s.acts.FetchActivities(ctx, token, after, before)
		if err != nil {
			return s.fail(c, err)
		}
		sums := report.Summaries(activities, true)
		return c.JSON(report.SummaryStatistics(sums, year))
	})
}
