package report

import (
	"testing"
	"time"

	"github.com/nate-sepich/strava-gh-viz/internal/strava"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 8, 0, 0, 0, time.UTC)
}

func TestSummaries_Conversion(t *testing.T) {
	cases := []struct {
		name         string
		meters       float64
		seconds      int64
		wantMiles    float64
		wantDuration float64
	}{
		{"one mile", 1609.34, 1800, 1.00, 30.00},
		{"5k", 5000, 1500, 3.11, 25.00},
		{"odd seconds", 10000, 3723, 6.21, 62.05},
		{"zero", 0, 0, 0, 0},
	}
	for _, tc := range cases {
		acts := []strava.Activity{{ID: 1, Name: tc.name, Type: "Run", Distance: tc.meters, MovingTime: tc.seconds, StartDate: day(2024, 1, 1)}}
		got := Summaries(acts, true)
		if len(got) != 1 {
			t.Fatalf("%s: expected 1 summary, got %d", tc.name, len(got))
		}
		if got[0].DistanceMiles != tc.wantMiles {
			t.Fatalf("%s: distance = %v; want %v", tc.name, got[0].DistanceMiles, tc.wantMiles)
		}
		if got[0].DurationMin != tc.wantDuration {
			t.Fatalf("%s: duration = %v; want %v", tc.name, got[0].DurationMin, tc.wantDuration)
		}
	}
}

func TestSummaries_RunFilter(t *testing.T) {
	acts := []strava.Activity{
		{ID: 1, Name: "morning run", Type: "Run", Distance: 1609.34, MovingTime: 600, StartDate: day(2024, 3, 2)},
		{ID: 2, Name: "commute", Type: "Ride", Distance: 8000, MovingTime: 1200, StartDate: day(2024, 3, 1)},
		{ID: 3, Name: "evening run", Type: "Run", Distance: 3218.68, MovingTime: 1200, StartDate: day(2024, 2, 28)},
	}

	filtered := Summaries(acts, true)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(filtered))
	}
	// Upstream ordering (most-recent-first) must survive the mapping.
	if filtered[0].ID != 1 || filtered[1].ID != 3 {
		t.Fatalf("order not preserved: %+v", filtered)
	}

	all := Summaries(acts, false)
	if len(all) != 3 {
		t.Fatalf("expected 3 summaries unfiltered, got %d", len(all))
	}
}

func TestDayKey(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{day(2024, 1, 1), "1-1"},
		{day(2024, 12, 31), "12-31"},
		{day(2023, 1, 1), "1-1"}, // year is dropped
	}
	for _, tc := range cases {
		if got := DayKey(tc.in); got != tc.want {
			t.Fatalf("DayKey(%v) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestDailyMileage_WindowComplete(t *testing.T) {
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	buckets := DailyMileage(nil, after, before)
	if len(buckets) != 31 {
		t.Fatalf("expected 31 day keys, got %d", len(buckets))
	}
	for k, v := range buckets {
		if v != 0 {
			t.Fatalf("bucket %q not initialized to 0: %v", k, v)
		}
	}
}

func TestDailyMileage_SameDaySum(t *testing.T) {
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 1, 3, 23, 59, 59, 0, time.UTC)

	acts := []strava.Activity{
		{ID: 1, Name: "a", Type: "Run", Distance: 1609.34, MovingTime: 600, StartDate: day(2024, 1, 1)},
		{ID: 2, Name: "b", Type: "Run", Distance: 1609.34, MovingTime: 600, StartDate: day(2024, 1, 1)},
	}
	buckets := DailyMileage(Summaries(acts, true), after, before)

	if got := buckets["1-1"]; got != 2.00 {
		t.Fatalf(`bucket "1-1" = %v; want 2.00`, got)
	}
	if got := buckets["1-2"]; got != 0 {
		t.Fatalf(`bucket "1-2" = %v; want 0`, got)
	}
	if len(buckets) != 3 {
		t.Fatalf("expected 3 day keys, got %d", len(buckets))
	}
}

func TestDailyMileage_BucketsInWindowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)
	before := time.Date(2024, 1, 2, 23, 59, 59, 0, loc)

	// 02:00 UTC on Jan 3 is 21:00 on Jan 2 in the window's zone; it must
	// land on a pre-initialized day, not invent a key of its own.
	sums := []RunSummary{
		{ID: 1, DistanceMiles: 4, StartDate: time.Date(2024, 1, 3, 2, 0, 0, 0, time.UTC)},
	}
	buckets := DailyMileage(sums, after, before)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 day keys, got %d: %v", len(buckets), buckets)
	}
	if got := buckets["1-2"]; got != 4 {
		t.Fatalf(`bucket "1-2" = %v; want 4`, got)
	}
	if _, ok := buckets["1-3"]; ok {
		t.Fatalf("activity bucketed outside the window days: %v", buckets)
	}
}

func TestBuildProfile(t *testing.T) {
	a := &strava.Athlete{ID: 7, Firstname: "Ada", Lastname: "Lovelace", Profile: "https://img.example.com/a.png"}
	stats := &strava.AthleteStats{AllRunTotals: strava.Totals{Count: 42, Distance: 160934}}

	p := BuildProfile(a, stats)
	if p.Name != "Ada Lovelace" || p.Avatar != "https://img.example.com/a.png" {
		t.Fatalf("unexpected profile header: %+v", p)
	}
	if p.TotalRuns != 42 {
		t.Fatalf("total runs = %d; want 42", p.TotalRuns)
	}
	if p.TotalMileage != 100.00 {
		t.Fatalf("total mileage = %v; want 100.00", p.TotalMileage)
	}
}

func TestSummaryStatistics_YearFilter(t *testing.T) {
	sums := []RunSummary{
		{ID: 1, DistanceMiles: 3.11, StartDate: day(2024, 1, 5)},
		{ID: 2, DistanceMiles: 1.00, StartDate: day(2024, 6, 1)},
		{ID: 3, DistanceMiles: 5.00, StartDate: day(2023, 12, 31)},
	}
	got := SummaryStatistics(sums, 2024)
	if got.Year != 2024 {
		t.Fatalf("year = %d; want 2024", got.Year)
	}
	if got.TotalRuns != 2 {
		t.Fatalf("total runs = %d; want 2", got.TotalRuns)
	}
	if got.TotalMileage != 4.11 {
		t.Fatalf("total mileage = %v; want 4.11", got.TotalMileage)
	}
}

func TestDailyMileage_OutOfRangeIgnored(t *testing.T) {
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC)

	sums := []RunSummary{
		{ID: 1, DistanceMiles: 5, StartDate: day(2023, 12, 31)},
		{ID: 2, DistanceMiles: 3, StartDate: day(2024, 1, 2)},
	}
	buckets := DailyMileage(sums, after, before)
	if got := buckets["12-31"]; got != 0 {
		t.Fatalf("out-of-range run leaked into buckets: %v", buckets)
	}
	if got := buckets["1-2"]; got != 3 {
		t.Fatalf(`bucket "1-2" = %v; want 3`, got)
	}
}
