// Package mailer delivers aggregated reports by email.
package mailer

import "context"

// Notifier sends a JSON report payload to a recipient. Failures are
// reported to the caller, never retried here.
type Notifier interface {
	Notify(ctx context.Context, recipient string, payload []byte) error
}
