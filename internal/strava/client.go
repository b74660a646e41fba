package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Client walks the paginated activities endpoint.
type Client struct {
	h   *retryablehttp.Client
	log *slog.Logger
}

func NewClient(logger *slog.Logger, timeout time.Duration, opts ...Option) *Client {
	h := retryablehttp.NewClient()
	h.RetryMax = 3
	h.Logger = nil
	if timeout > 0 {
		h.HTTPClient.Timeout = timeout
	}
	for _, opt := range opts {
		opt(h)
	}
	return &Client{h: h, log: logger}
}

// FetchActivities retrieves every activity in [after, before], following
// pages sequentially until a short page signals the end. Any non-2xx page
// aborts the whole fetch; partial results are discarded. Malformed records
// within a page are logged and skipped, never fatal.
func (c *Client) FetchActivities(ctx context.Context, accessToken string, after, before time.Time) ([]Activity, error) {
	var all []Activity
	for page := 1; ; page++ {
		u, _ := url.Parse(activitiesURL)
		q := u.Query()
		q.Set("per_page", strconv.Itoa(perPage))
		q.Set("page", strconv.Itoa(page))
		q.Set("after", strconv.FormatInt(after.Unix(), 10))
		q.Set("before", strconv.FormatInt(before.Unix(), 10))
		u.RawQuery = q.Encode()

		raw, err := c.fetchPage(ctx, u.String(), accessToken, page)
		if err != nil {
			return nil, err
		}
		all = append(all, c.decodePage(raw, page)...)
		// Termination counts returned records, not decoded ones, so a
		// skipped record cannot end pagination early.
		if len(raw) < perPage {
			return all, nil
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, pageURL, accessToken string, page int) ([]json.RawMessage, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{Op: "activities", Page: page, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.h.Do(req)
	if err != nil {
		return nil, &FetchError{Op: "activities", Page: page, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode >= 300 {
		return nil, &FetchError{Op: "activities", Page: page, Status: resp.StatusCode}
	}
	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &FetchError{Op: "activities", Page: page, Err: fmt.Errorf("decode: %w", err)}
	}
	return raw, nil
}

func (c *Client) decodePage(raw []json.RawMessage, page int) []Activity {
	acts := make([]Activity, 0, len(raw))
	for i, rec := range raw {
		if err := ValidateActivityJSON(rec); err != nil {
			c.log.Warn("skipping malformed activity record", "page", page, "index", i, "err", err)
			continue
		}
		var a Activity
		if err := json.Unmarshal(rec, &a); err != nil {
			c.log.Warn("skipping undecodable activity record", "page", page, "index", i, "err", err)
			continue
		}
		acts = append(acts, a)
	}
	return acts
}
