package strava

import "fmt"

// AuthError is a failed code exchange or refresh against the provider's
// token endpoint. Neither operation is retried: authorization codes are
// single-use and a stale refresh token stays stale.
type AuthError struct {
	Op     string // "exchange" or "refresh"
	Status int    // non-zero when the provider answered non-2xx
	Err    error  // non-nil on transport faults
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("strava %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("strava %s: status %d", e.Op, e.Status)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError aborts an upstream read. No partial results survive it.
type FetchError struct {
	Op     string // "activities", "athlete" or "athlete stats"
	Page   int    // non-zero for paged reads
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	what := e.Op
	if e.Page > 0 {
		what = fmt.Sprintf("%s page %d", e.Op, e.Page)
	}
	if e.Err != nil {
		return fmt.Sprintf("strava %s: %v", what, e.Err)
	}
	return fmt.Sprintf("strava %s: status %d", what, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }
