package metrics

import (
	"fmt"
	"sort"
	"time"

	"enduro/internal/store"
)

// AggregateDailyLoad sums systemic/lower-body load across every activity
// whose activity_date equals date, attaching summaries and session types.
func AggregateDailyLoad(activities []*store.Activity, date string) store.DailyLoad {
	var out store.DailyLoad
	for _, a := range activities {
		if a.ActivityDate != date {
			continue
		}
		out.SystemicAU += a.SystemicLoadAU
		out.LowerBodyAU += a.LowerBodyLoadAU
		out.ActivitySummaries = append(out.ActivitySummaries, store.ActivitySummary{
			ActivityID:      a.ActivityID,
			SportType:       a.SportType,
			SystemicLoadAU:  a.SystemicLoadAU,
			LowerBodyLoadAU: a.LowerBodyLoadAU,
			SessionType:     a.SessionType,
		})
		out.SessionTypes = append(out.SessionTypes, a.SessionType)
	}
	return out
}

// ComputeDailyMetrics builds the fully-recomputable DailyMetrics document
// for one day, given the ordered prefix of activities with
// activity_date <= date, plus profile vitals.
//
// loadSeries must already be in ascending-date order and end at date;
// it is the input to the CTL/ATL/ACWR computations (the metrics engine's
// own callers are responsible for assembling it from the repository).
func ComputeDailyMetrics(date string, activities []*store.Activity, loadSeries []DayLoad, settings store.Settings, now time.Time, readinessIn ReadinessInputs) (*store.DailyMetrics, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	dailyLoad := AggregateDailyLoad(activities, date)

	trend := CalculateFitnessTrend(loadSeries, settings.CTLTimeConstant, settings.ATLTimeConstant)
	var ctlAtl store.CTLATL
	if len(trend) > 0 {
		last := trend[len(trend)-1]
		ctlAtl = store.CTLATL{
			CTL:     last.CTL,
			ATL:     last.ATL,
			TSB:     last.TSB,
			TSBZone: store.TSBZone(TSBZone(last.TSB)),
		}
	}

	loadsOnly := make([]float64, len(loadSeries))
	for i, l := range loadSeries {
		loadsOnly[i] = l.Load
	}
	acwr := ComputeACWR(loadsOnly, settings.ACWRAcuteWindow, settings.ACWRChronicWindow, settings.ACWRMinimumDays)

	readinessIn.TSB = &ctlAtl.TSB
	readinessIn.ACWR = acwr.Value
	if avg3 := trailingAvgLoad(loadsOnly, 3); avg3 != nil {
		readinessIn.Avg3DayLoad = avg3
	}
	if avg7 := trailingAvgLoad(loadsOnly, 7); avg7 != nil {
		readinessIn.Avg7DayLoad = avg7
	}
	readinessResult := ComputeReadiness(readinessIn)

	baselineEstablished := len(loadSeries) >= settings.BaselineDaysThreshold

	var flags store.ActivityFlags
	for _, a := range activities {
		if a.ActivityDate != date {
			continue
		}
		if a.Flags.Injury != nil {
			flags.Injury = a.Flags.Injury
		}
		if a.Flags.Illness != nil {
			flags.Illness = a.Flags.Illness
		}
	}

	dm := &store.DailyMetrics{
		Header: store.NewHeader(string(store.KindDailyMetrics)),
		Date:   date,
		DailyLoad: dailyLoad,
		CTLATL: ctlAtl,
		ACWR: store.ACWR{
			Value:         acwr.Value,
			Zone:          acwr.Zone,
			Acute7d:       acwr.Acute7d,
			Chronic28dAvg: acwr.Chronic28dAvg,
			DaysOfData:    acwr.DaysOfData,
		},
		Readiness: store.Readiness{
			Score:      readinessResult.Score,
			Level:      readinessResult.Level,
			Confidence: readinessResult.Confidence,
			Components: readinessResult.Components,
		},
		Flags:               flags,
		ComputedAt:          now,
		BaselineEstablished: baselineEstablished,
	}
	return dm, nil
}

// trailingAvgLoad averages the trailing n entries of loads (which is in
// ascending-date order ending at the metrics date). Returns nil if loads
// doesn't even cover the full window, so a partial average never silently
// passes itself off as a full 3- or 7-day trend.
func trailingAvgLoad(loads []float64, n int) *float64 {
	if len(loads) < n {
		return nil
	}
	window := loads[len(loads)-n:]
	var sum float64
	for _, l := range window {
		sum += l
	}
	avg := sum / float64(n)
	return &avg
}

// IntensityDistribution computes the weekly running-only EASY/MODERATE/
// QUALITY minute split and 80/20 compliance.
func IntensityDistribution(activities []*store.Activity) store.IntensityDistribution {
	var low, mod, high float64
	for _, a := range activities {
		if !a.SportType.IsRunning() {
			continue
		}
		switch a.SessionType {
		case store.SessionEasy:
			low += a.DurationMinutes
		case store.SessionModerate:
			mod += a.DurationMinutes
		case store.SessionQuality, store.SessionRace:
			high += a.DurationMinutes
		}
	}
	total := low + mod + high
	var lowPct float64
	if total > 0 {
		lowPct = low / total * 100
	}
	return store.IntensityDistribution{
		LowMin:        low,
		ModMin:        mod,
		HighMin:       high,
		LowPct:        lowPct,
		Compliant8020: lowPct >= 80,
	}
}

// HighIntensitySessionCount counts QUALITY/RACE sessions across all sports
// in the given (already-windowed) activity slice.
func HighIntensitySessionCount(activities []*store.Activity) int {
	count := 0
	for _, a := range activities {
		if a.SessionType == store.SessionQuality || a.SessionType == store.SessionRace {
			count++
		}
	}
	return count
}

// ComputeWeeklySummary is a pure function computing the rollup for any
// Monday-Sunday week from its DailyMetrics and Activity history. The
// persisted document is a rolling singleton; historical weeks are
// recomputed on demand rather than accumulated on disk.
func ComputeWeeklySummary(weekStart time.Time, daily []*store.DailyMetrics, activities []*store.Activity, now time.Time) (*store.WeeklySummary, error) {
	if weekStart.Weekday() != time.Monday {
		return nil, fmt.Errorf("weekStart %s must be a Monday", weekStart.Format("2006-01-02"))
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	var systemicTotal, lowerTotal float64
	for _, d := range daily {
		systemicTotal += d.DailyLoad.SystemicAU
		lowerTotal += d.DailyLoad.LowerBodyAU
	}

	var weekActivities []*store.Activity
	for _, a := range activities {
		ad, err := time.Parse("2006-01-02", a.ActivityDate)
		if err != nil {
			continue
		}
		if !ad.Before(weekStart) && !ad.After(weekEnd) {
			weekActivities = append(weekActivities, a)
		}
	}

	runCount, otherCount := 0, 0
	for _, a := range weekActivities {
		if a.SportType.IsRunning() {
			runCount++
		} else {
			otherCount++
		}
	}

	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })
	var endCTL, endATL, endTSB float64
	if len(daily) > 0 {
		last := daily[len(daily)-1]
		endCTL, endATL, endTSB = last.CTLATL.CTL, last.CTLATL.ATL, last.CTLATL.TSB
	}

	return &store.WeeklySummary{
		Header:                 store.NewHeader(string(store.KindWeeklySummary)),
		WeekStartDate:          weekStart.Format("2006-01-02"),
		WeekEndDate:            weekEnd.Format("2006-01-02"),
		TotalSystemicLoadAU:    systemicTotal,
		TotalLowerBodyLoadAU:   lowerTotal,
		RunSessionCount:        runCount,
		OtherSessionCount:      otherCount,
		IntensityDistribution:  IntensityDistribution(weekActivities),
		HighIntensitySessions7d: HighIntensitySessionCount(weekActivities),
		EndOfWeekCTL:           endCTL,
		EndOfWeekATL:           endATL,
		EndOfWeekTSB:           endTSB,
		ComputedAt:             now,
	}, nil
}
