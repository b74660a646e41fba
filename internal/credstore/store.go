// Package credstore persists per-user Strava token records. Saves are
// whole-record overwrites; at most one record exists per user.
package credstore

import (
	"context"
	"errors"
)

// ErrStorage marks medium-level faults (unwritable directory, unreachable
// database). A missing record is not an error; Load reports it with ok ==
// false.
var ErrStorage = errors.New("credential storage unavailable")

type Record struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
}

type Store interface {
	Save(ctx context.Context, userID string, rec Record) error
	Load(ctx context.Context, userID string) (Record, bool, error)
}
