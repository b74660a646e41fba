package strava

import (
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// Option tweaks the underlying HTTP client of an Authenticator or Client.
type Option func(*retryablehttp.Client)

func WithTransport(rt http.RoundTripper) Option {
	return func(h *retryablehttp.Client) {
		h.HTTPClient.Transport = rt
	}
}

func WithRetryMax(n int) Option {
	return func(h *retryablehttp.Client) {
		h.RetryMax = n
	}
}
