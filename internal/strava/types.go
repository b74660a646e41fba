package strava

import "time"

type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// Expired reports whether the access token is invalid at the given instant.
func (t *Token) Expired(now time.Time) bool {
	return now.Unix() >= t.ExpiresAt
}

// Activity is the upstream record shape; read-only to this system.
type Activity struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Distance   float64   `json:"distance"`    // meters
	MovingTime int64     `json:"moving_time"` // seconds
	StartDate  time.Time `json:"start_date"`
}
