package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// Athlete is the authenticated athlete's profile record.
type Athlete struct {
	ID        int64  `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Profile   string `json:"profile"` // avatar URL
}

// Totals is one bucket of the athlete stats rollup.
type Totals struct {
	Count    int64   `json:"count"`
	Distance float64 `json:"distance"` // meters
}

// AthleteStats carries the lifetime rollups; only run totals are consumed.
type AthleteStats struct {
	AllRunTotals Totals `json:"all_run_totals"`
}

// FetchAthlete retrieves the profile of the athlete the token belongs to.
func (c *Client) FetchAthlete(ctx context.Context, accessToken string) (*Athlete, error) {
	var a Athlete
	if err := c.getJSON(ctx, athleteURL, accessToken, "athlete", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// FetchAthleteStats retrieves the lifetime activity totals for athleteID.
func (c *Client) FetchAthleteStats(ctx context.Context, accessToken string, athleteID int64) (*AthleteStats, error) {
	var st AthleteStats
	if err := c.getJSON(ctx, fmt.Sprintf(athleteStatsFmt, athleteID), accessToken, "athlete stats", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL, accessToken, op string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.h.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode >= 300 {
		return &FetchError{Op: op, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
