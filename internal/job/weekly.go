// Package job assembles the recurring email report: resolve credentials for
// the configured user, pull the last week of activities, mail the run
// summaries as a JSON attachment.
package job

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/nate-sepich/strava-gh-viz/internal/config"
	"github.com/nate-sepich/strava-gh-viz/internal/mailer"
	"github.com/nate-sepich/strava-gh-viz/internal/report"
	"github.com/nate-sepich/strava-gh-viz/internal/strava"
)

const windowDays = 7

type Weekly struct {
	cfg  *config.Config
	auth *strava.Authenticator
	acts *strava.Client
	mail mailer.Notifier
	log  *slog.Logger
}

func NewWeekly(cfg *config.Config, auth *strava.Authenticator, acts *strava.Client, mail mailer.Notifier, logger *slog.Logger) *Weekly {
	return &Weekly{cfg: cfg, auth: auth, acts: acts, mail: mail, log: logger}
}

func (w *Weekly) Run(ctx context.Context) error {
	if w.mail == nil {
		return errors.New("mail notifier not configured")
	}
	if w.cfg.RecipientEmail == "" {
		return errors.New("recipient email not configured")
	}

	token, ok, err := w.auth.ValidAccessToken(ctx, w.cfg.DefaultUserID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("no stored credentials; authorize first")
	}

	before := time.Now()
	after := before.AddDate(0, 0, -windowDays)
	activities, err := w.acts.FetchActivities(ctx, token, after, before)
	if err != nil {
		return err
	}

	sums := report.Summaries(activities, true)
	payload, err := json.MarshalIndent(sums, "", "  ")
	if err != nil {
		return err
	}
	if err := w.mail.Notify(ctx, w.cfg.RecipientEmail, payload); err != nil {
		return err
	}
	w.log.Info("weekly report sent", "runs", len(sums), "recipient", w.cfg.RecipientEmail)
	return nil
}
