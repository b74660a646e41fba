package strava

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/nate-sepich/strava-gh-viz/internal/credstore"
)

// OAuthConfig carries the statically configured client credentials. Built
// once at startup and passed in; nothing here reads the environment.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectBase string
	Scopes       string
	StateSecret  []byte
}

// Authenticator owns the token lifecycle for all users: code exchange on
// first login, lazy refresh on access, persistence through the credential
// store. Refresh happens at most once per call; there is no background
// refresher because the service is invoked request-by-request.
type Authenticator struct {
	cfg   OAuthConfig
	store credstore.Store
	h     *retryablehttp.Client
	log   *slog.Logger
}

func NewAuthenticator(cfg OAuthConfig, store credstore.Store, logger *slog.Logger, timeout time.Duration, opts ...Option) *Authenticator {
	h := retryablehttp.NewClient()
	// Token-endpoint calls are never retried: codes are single-use and a
	// refresh that failed will fail again.
	h.RetryMax = 0
	h.Logger = nil
	if timeout > 0 {
		h.HTTPClient.Timeout = timeout
	}
	for _, opt := range opts {
		opt(h)
	}
	return &Authenticator{cfg: cfg, store: store, h: h, log: logger}
}

func (a *Authenticator) redirectURI() string {
	return strings.TrimRight(a.cfg.RedirectBase, "/") + "/oauth/strava/callback"
}

// SignedState creates a short-lived HMAC'd state token.
func (a *Authenticator) SignedState() string {
	ts := time.Now().Unix()
	msg := fmt.Sprintf("%d", ts)
	mac := hmac.New(sha256.New, a.cfg.StateSecret)
	mac.Write([]byte(msg))
	sig := mac.Sum(nil)
	return fmt.Sprintf("%d.%s", ts, base64.RawURLEncoding.EncodeToString(sig))
}

// ValidateState checks HMAC and age (5 minutes).
func (a *Authenticator) ValidateState(raw string) error {
	parts := strings.Split(raw, ".")
	if len(parts) != 2 {
		return fmt.Errorf("bad state format")
	}
	tsStr, sigB64 := parts[0], parts[1]
	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return fmt.Errorf("bad state ts")
	}
	if time.Since(time.Unix(ts, 0)) > 5*time.Minute {
		return fmt.Errorf("state expired")
	}
	mac := hmac.New(sha256.New, a.cfg.StateSecret)
	mac.Write([]byte(tsStr))
	expected := mac.Sum(nil)
	got, err := base64.RawURLEncoding.DecodeString(sigB64)
	if err != nil {
		return fmt.Errorf("state b64")
	}
	if !hmac.Equal(expected, got) {
		return fmt.Errorf("state mismatch")
	}
	return nil
}

// AuthorizeURL builds the provider authorization redirect for first-time
// logins.
func (a *Authenticator) AuthorizeURL() string {
	u, _ := url.Parse(authURL)
	q := u.Query()
	q.Set("client_id", a.cfg.ClientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", a.redirectURI())
	q.Set("approval_prompt", "auto")
	q.Set("scope", a.cfg.Scopes)
	q.Set("state", a.SignedState())
	u.RawQuery = q.Encode()
	return u.String()
}

// ExchangeCode trades a one-time authorization code for an initial token
// record and persists it under userID.
func (a *Authenticator) ExchangeCode(ctx context.Context, userID, code string) (*Token, error) {
	vals := url.Values{}
	vals.Set("client_id", a.cfg.ClientID)
	vals.Set("client_secret", a.cfg.ClientSecret)
	vals.Set("code", code)
	vals.Set("grant_type", "authorization_code")
	vals.Set("redirect_uri", a.redirectURI())
	vals.Set("scope", a.cfg.Scopes)

	tok, err := a.tokenRequest(ctx, "exchange", vals)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, userID, recordFromToken(tok)); err != nil {
		return nil, err
	}
	a.log.Info("exchanged authorization code", "user", userID, "expires_at", tok.ExpiresAt)
	return tok, nil
}

// ValidAccessToken resolves a currently-valid access token for userID.
// Absent credentials come back as ok == false with a nil error: the caller
// must send the user through the authorization flow. An expired record
// triggers exactly one refresh; on success the whole record is replaced
// (providers rotate the refresh token too). A failed refresh leaves the
// stale record in place so the next call can try again.
func (a *Authenticator) ValidAccessToken(ctx context.Context, userID string) (string, bool, error) {
	rec, ok, err := a.store.Load(ctx, userID)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	stored := tokenFromRecord(rec)
	if !stored.Expired(time.Now()) {
		return stored.AccessToken, true, nil
	}

	vals := url.Values{}
	vals.Set("client_id", a.cfg.ClientID)
	vals.Set("client_secret", a.cfg.ClientSecret)
	vals.Set("grant_type", "refresh_token")
	vals.Set("refresh_token", stored.RefreshToken)

	tok, err := a.tokenRequest(ctx, "refresh", vals)
	if err != nil {
		return "", false, err
	}
	if err := a.store.Save(ctx, userID, recordFromToken(tok)); err != nil {
		return "", false, err
	}
	a.log.Info("refreshed access token", "user", userID, "expires_at", tok.ExpiresAt)
	return tok.AccessToken, true, nil
}

func (a *Authenticator) tokenRequest(ctx context.Context, op string, vals url.Values) (*Token, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(vals.Encode()))
	if err != nil {
		return nil, &AuthError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.h.Do(req)
	if err != nil {
		return nil, &AuthError{Op: op, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode >= 300 {
		return nil, &AuthError{Op: op, Status: resp.StatusCode}
	}
	var t Token
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, &AuthError{Op: op, Err: err}
	}
	return &t, nil
}

func recordFromToken(t *Token) credstore.Record {
	return credstore.Record{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    t.ExpiresAt,
	}
}

func tokenFromRecord(rec credstore.Record) *Token {
	return &Token{
		AccessToken:  rec.AccessToken,
		RefreshToken: rec.RefreshToken,
		ExpiresAt:    rec.ExpiresAt,
	}
}
