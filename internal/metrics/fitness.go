// Package metrics implements the daily aggregation, CTL/ATL/TSB fitness
// trend, ACWR, readiness score, and intensity-distribution computations
// over the stored activity history.
package metrics

import (
	"math"
	"sort"
	"time"
)

// DayLoad is one day's total systemic load, used as the EMA input series.
type DayLoad struct {
	Date time.Time
	Load float64
}

// FitnessPoint is the CTL/ATL/TSB triad computed for one day in a series.
type FitnessPoint struct {
	Date time.Time
	CTL  float64
	ATL  float64
	TSB  float64
}

// CalculateFitnessTrend walks the daily-load series day by day from its
// earliest date to its latest, filling gaps with zero load, and applies
// the recurrence EMA_d = EMA_{d-1} + (load_d - EMA_{d-1})/tau independently
// for CTL (tau=ctlTau) and ATL (tau=atlTau). Result is rounded to one
// decimal place.
func CalculateFitnessTrend(loads []DayLoad, ctlTau, atlTau int) []FitnessPoint {
	if len(loads) == 0 {
		return nil
	}

	sorted := make([]DayLoad, len(loads))
	copy(sorted, loads)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	loadByDate := make(map[string]float64)
	for _, l := range sorted {
		loadByDate[l.Date.Format("2006-01-02")] += l.Load
	}

	start := sorted[0].Date.Truncate(24 * time.Hour)
	end := sorted[len(sorted)-1].Date.Truncate(24 * time.Hour)

	var ctl, atl float64
	var points []FitnessPoint
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		l := loadByDate[d.Format("2006-01-02")]
		ctl = ctl + (l-ctl)/float64(ctlTau)
		atl = atl + (l-atl)/float64(atlTau)
		points = append(points, FitnessPoint{
			Date: d,
			CTL:  round1(ctl),
			ATL:  round1(atl),
			TSB:  round1(ctl - atl),
		})
	}
	return points
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// TSBZone classifies a TSB value into its qualitative band.
func TSBZone(tsb float64) string {
	switch {
	case tsb > 15:
		return "peaked"
	case tsb > 5:
		return "fresh"
	case tsb > -10:
		return "optimal"
	case tsb > -25:
		return "productive"
	default:
		return "overreached"
	}
}
