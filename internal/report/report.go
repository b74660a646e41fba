// Package report turns raw Strava activities into the shapes the front-end
// charts: per-run summaries and a gap-free daily mileage map. Everything
// here is pure; the pager has already done all the I/O.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/nate-sepich/strava-gh-viz/internal/strava"
)

const (
	milesPerMeter   = 0.000621371
	activityTypeRun = "Run"
)

type RunSummary struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	DistanceMiles float64   `json:"distance"`
	DurationMin   float64   `json:"duration"`
	StartDate     time.Time `json:"start_date"`
}

// Summaries maps activities to unit-converted summaries, preserving
// upstream order (most-recent-first). The run filter is an explicit
// parameter: callers always decide, never call order.
func Summaries(acts []strava.Activity, runsOnly bool) []RunSummary {
	out := make([]RunSummary, 0, len(acts))
	for _, a := range acts {
		if runsOnly && a.Type != activityTypeRun {
			continue
		}
		out = append(out, RunSummary{
			ID:            a.ID,
			Name:          a.Name,
			DistanceMiles: round2(a.Distance * milesPerMeter),
			DurationMin:   round2(float64(a.MovingTime) / 60),
			StartDate:     a.StartDate,
		})
	}
	return out
}

// DayKey buckets by month-day with no year, so windows longer than a year
// fold distinct calendar years onto the same bucket. Inherited behavior,
// kept pending product confirmation; see DESIGN.md.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%d-%d", int(t.Month()), t.Day())
}

// DailyMileage sums run distance per calendar day across [after, before].
// Every day in the window is present, initialized to 0, so the series has
// no gaps.
func DailyMileage(sums []RunSummary, after, before time.Time) map[string]float64 {
	buckets := make(map[string]float64)
	for d := dayStart(after); !d.After(before); d = d.AddDate(0, 0, 1) {
		buckets[DayKey(d)] = 0
	}
	// Bucket in the window's location; an edge activity keyed in its own
	// zone could otherwise land on a day the loop above never created.
	loc := after.Location()
	for _, s := range sums {
		if s.StartDate.Before(after) || s.StartDate.After(before) {
			continue
		}
		buckets[DayKey(s.StartDate.In(loc))] += s.DistanceMiles
	}
	return buckets
}

// Profile is the athlete header the front-end renders: display name, avatar
// and lifetime run totals.
type Profile struct {
	Name         string  `json:"name"`
	Avatar       string  `json:"avatar"`
	TotalRuns    int64   `json:"total_runs"`
	TotalMileage float64 `json:"total_mileage"`
}

// BuildProfile merges the athlete record with the lifetime run totals,
// converting distance to miles.
func BuildProfile(a *strava.Athlete, stats *strava.AthleteStats) Profile {
	return Profile{
		Name:         strings.TrimSpace(a.Firstname + " " + a.Lastname),
		Avatar:       a.Profile,
		TotalRuns:    stats.AllRunTotals.Count,
		TotalMileage: round2(stats.AllRunTotals.Distance * milesPerMeter),
	}
}

// YearTotals is the per-year rollup of run summaries.
type YearTotals struct {
	Year         int     `json:"year"`
	TotalRuns    int     `json:"total_runs"`
	TotalMileage float64 `json:"total_mileage"`
}

// SummaryStatistics counts the runs that started in year and sums their
// mileage.
func SummaryStatistics(sums []RunSummary, year int) YearTotals {
	out := YearTotals{Year: year}
	for _, s := range sums {
		if s.StartDate.Year() != year {
			continue
		}
		out.TotalRuns++
		out.TotalMileage += s.DistanceMiles
	}
	out.TotalMileage = round2(out.TotalMileage)
	return out
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
