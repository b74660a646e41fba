package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/nate-sepich/strava-gh-viz/internal/config"
	"github.com/nate-sepich/strava-gh-viz/internal/credstore"
	"github.com/nate-sepich/strava-gh-viz/internal/httpapi"
	"github.com/nate-sepich/strava-gh-viz/internal/job"
	"github.com/nate-sepich/strava-gh-viz/internal/mailer"
	"github.com/nate-sepich/strava-gh-viz/internal/schedule"
	"github.com/nate-sepich/strava-gh-viz/internal/strava"
)

func main() {
	// log.Fatal in the workers below would skip the deferred cleanup.
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	programLevel := slog.LevelInfo
	if cfg.Debug {
		programLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: programLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()
	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	auth := strava.NewAuthenticator(strava.OAuthConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectBase: cfg.RedirectBase,
		Scopes:       cfg.Scopes,
		StateSecret:  []byte(cfg.StateSecret),
	}, store, logger, cfg.UpstreamTimeout)
	acts := strava.NewClient(logger, cfg.UpstreamTimeout)

	var notifier mailer.Notifier
	if cfg.SendgridKey != "" {
		notifier = mailer.NewSendGrid(cfg.SendgridKey, cfg.SenderEmail, logger)
	}
	weekly := job.NewWeekly(cfg, auth, acts, notifier, logger)

	if notifier != nil && cfg.RecipientEmail != "" {
		runner := schedule.New(weekly.Run, cfg.ReportInterval, logger)
		runner.Start()
		defer runner.Stop()
	}

	app := httpapi.NewServer(cfg, auth, acts, weekly, logger)
	log.Printf("listening on %s", cfg.Addr)
	return app.Listen(cfg.Addr)
}

func newStore(ctx context.Context, cfg *config.Config) (credstore.Store, func(), error) {
	switch cfg.TokenStore {
	case "memory":
		return credstore.NewMemory(), func() {}, nil
	case "postgres":
		pg, err := credstore.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		f, err := credstore.NewFile(cfg.TokenDir)
		if err != nil {
			return nil, nil, err
		}
		return f, func() {}, nil
	}
}
