package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/nate-sepich/strava-gh-viz/internal/id"
)

const (
	subject  = "Weekly Strava Data Update"
	bodyText = "Please find attached your latest Strava data."
)

// SendGrid mails the report as a base64 JSON attachment.
type SendGrid struct {
	client *sendgrid.Client
	sender string
	log    *slog.Logger
}

func NewSendGrid(apiKey, sender string, logger *slog.Logger) *SendGrid {
	return &SendGrid{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
		log:    logger,
	}
}

func (s *SendGrid) Notify(ctx context.Context, recipient string, payload []byte) error {
	from := mail.NewEmail("", s.sender)
	to := mail.NewEmail("", recipient)
	msg := mail.NewSingleEmail(from, subject, to, bodyText, "")

	att := mail.NewAttachment()
	att.SetContent(base64.StdEncoding.EncodeToString(payload))
	att.SetType("application/json")
	att.SetFilename(id.ReportID(time.Now().UTC().Format("2006-01-02"), recipient, payload) + ".json")
	att.SetDisposition("attachment")
	msg.AddAttachment(att)

	resp, err := s.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}
	s.log.Info("report emailed", "recipient", recipient, "bytes", len(payload))
	return nil
}
