package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nate-sepich/strava-gh-viz/internal/config"
	"github.com/nate-sepich/strava-gh-viz/internal/job"
	"github.com/nate-sepich/strava-gh-viz/internal/strava"
)

type Server struct {
	cfg    *config.Config
	auth   *strava.Authenticator
	acts   *strava.Client
	weekly *job.Weekly
	log    *slog.Logger
}

func NewServer(cfg *config.Config, auth *strava.Authenticator, acts *strava.Client, weekly *job.Weekly, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true, ReadTimeout: 30 * time.Second, WriteTimeout: 60 * time.Second})
	app.Use(requestID)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	s := &Server{cfg: cfg, auth: auth, acts: acts, weekly: weekly, log: logger}
	s.registerOAuth(app)
	s.registerRuns(app)
	s.registerAthlete(app)
	s.registerReports(app)
	return app
}

func requestID(c *fiber.Ctx) error {
	rid := c.Get("X-Request-Id")
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Locals("request_id", rid)
	c.Set("X-Request-Id", rid)
	return c.Next()
}
