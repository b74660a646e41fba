package strava

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
)

type routeTransport struct {
	status  int
	bodies  map[string][]byte // by URL path
	paths   []string
	sawAuth string
}

func (rt *routeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.paths = append(rt.paths, req.URL.Path)
	rt.sawAuth = req.Header.Get("Authorization")
	status := rt.status
	if status == 0 {
		status = 200
	}
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(bytes.NewReader(rt.bodies[req.URL.Path])),
		Request:    req,
	}, nil
}

func TestFetchAthlete(t *testing.T) {
	rt := &routeTransport{bodies: map[string][]byte{
		"/api/v3/athlete": []byte(`{"id":7,"firstname":"Ada","lastname":"Lovelace","profile":"https://img.example.com/a.png"}`),
	}}
	c := NewClient(slog.Default(), 0, WithTransport(rt), WithRetryMax(0))

	a, err := c.FetchAthlete(context.Background(), "tok")
	if err != nil {
		t.Fatalf("FetchAthlete error: %v", err)
	}
	if a.ID != 7 || a.Firstname != "Ada" || a.Lastname != "Lovelace" {
		t.Fatalf("unexpected athlete: %+v", a)
	}
	if a.Profile != "https://img.example.com/a.png" {
		t.Fatalf("unexpected avatar: %q", a.Profile)
	}
	if !strings.HasPrefix(rt.sawAuth, "Bearer ") {
		t.Fatalf("expected Authorization Bearer header, got %q", rt.sawAuth)
	}
}

func TestFetchAthleteStats(t *testing.T) {
	rt := &routeTransport{bodies: map[string][]byte{
		"/api/v3/athletes/7/stats": []byte(`{"all_run_totals":{"count":42,"distance":160934}}`),
	}}
	c := NewClient(slog.Default(), 0, WithTransport(rt), WithRetryMax(0))

	st, err := c.FetchAthleteStats(context.Background(), "tok", 7)
	if err != nil {
		t.Fatalf("FetchAthleteStats error: %v", err)
	}
	if st.AllRunTotals.Count != 42 || st.AllRunTotals.Distance != 160934 {
		t.Fatalf("unexpected totals: %+v", st.AllRunTotals)
	}
	if len(rt.paths) != 1 || rt.paths[0] != "/api/v3/athletes/7/stats" {
		t.Fatalf("unexpected request paths: %v", rt.paths)
	}
}

func TestFetchAthlete_HTTPError(t *testing.T) {
	rt := &routeTransport{status: 404, bodies: map[string][]byte{}}
	c := NewClient(slog.Default(), 0, WithTransport(rt), WithRetryMax(0))

	_, err := c.FetchAthlete(context.Background(), "tok")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Op != "athlete" {
		t.Fatalf("expected athlete FetchError, got %v", err)
	}
	if fetchErr.Status != 404 {
		t.Fatalf("expected status 404 on the error, got %d", fetchErr.Status)
	}
}
