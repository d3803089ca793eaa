package plan

import (
	"fmt"
	"time"

	"enduro/internal/store"
)

// Violation is one failed hard check.
type Violation struct {
	Code    string
	Message string
}

// Warning is one soft check that does not fail validation.
type Warning struct {
	Code    string
	Message string
}

// Result is the output shape every validator returns.
type Result struct {
	OK         bool
	Violations []Violation
	Warnings   []Warning
	Summary    string
}

func sumDistanceKM(w []store.Workout) float64 {
	var total float64
	for _, wk := range w {
		total += wk.DistanceKM
	}
	return total
}

// ValidateVolumeAccuracy checks summed workout distance against the
// week's target: within 5% passes clean, 5-10% warns, beyond 10% is an
// error.
func ValidateVolumeAccuracy(week store.PlanWeek) Result {
	if len(week.Workouts) == 0 || week.TargetVolumeKM == 0 {
		return Result{OK: true, Summary: "no populated workouts to check"}
	}
	sum := sumDistanceKM(week.Workouts)
	diff := (sum - week.TargetVolumeKM) / week.TargetVolumeKM
	pct := diff * 100

	res := Result{OK: true}
	switch {
	case abs(diff) > 0.10:
		res.OK = false
		res.Violations = append(res.Violations, Violation{
			Code:    "volume_accuracy",
			Message: fmt.Sprintf("summed volume %.1f km is %.1f%% from target %.1f km", sum, pct, week.TargetVolumeKM),
		})
	case abs(diff) > 0.05:
		res.Warnings = append(res.Warnings, Warning{
			Code:    "volume_accuracy",
			Message: fmt.Sprintf("summed volume %.1f km is %.1f%% from target %.1f km", sum, pct, week.TargetVolumeKM),
		})
	}
	res.Summary = fmt.Sprintf("volume %.1f km vs target %.1f km (%.1f%%)", sum, week.TargetVolumeKM, pct)
	return res
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// ValidateMinimumDurations checks every workout meets its type's minimum
// duration/distance floor.
func ValidateMinimumDurations(week store.PlanWeek) Result {
	res := Result{OK: true}
	for _, w := range week.Workouts {
		switch w.Type {
		case store.WorkoutEasy:
			if w.DurationMin < easyMinMinutes && w.DistanceKM < easyMinKM {
				res.OK = false
				res.Violations = append(res.Violations, Violation{
					Code:    "minimum_duration",
					Message: fmt.Sprintf("%s: easy run %.0f min / %.1f km below minimum", w.WorkoutID, w.DurationMin, w.DistanceKM),
				})
			}
		case store.WorkoutLong:
			if w.DurationMin < longMinMinutes && w.DistanceKM < longMinKM {
				res.OK = false
				res.Violations = append(res.Violations, Violation{
					Code:    "minimum_duration",
					Message: fmt.Sprintf("%s: long run %.0f min / %.1f km below minimum", w.WorkoutID, w.DurationMin, w.DistanceKM),
				})
			}
		}
	}
	res.Summary = fmt.Sprintf("checked %d workouts", len(week.Workouts))
	return res
}

// ValidateQualityCaps checks T/I/R distances against the 10%/8%/5% weekly
// volume caps.
func ValidateQualityCaps(week store.PlanWeek) Result {
	res := Result{OK: true}
	for _, w := range week.Workouts {
		cap := QualityCapKM(w.Type, week.TargetVolumeKM)
		if w.Type == store.WorkoutTempo || w.Type == store.WorkoutIntervals || w.Type == store.WorkoutRepetition {
			if w.DistanceKM > cap {
				res.OK = false
				res.Violations = append(res.Violations, Violation{
					Code:    "quality_cap",
					Message: fmt.Sprintf("%s: %s distance %.1f km exceeds cap %.1f km", w.WorkoutID, w.Type, w.DistanceKM, cap),
				})
			}
		}
	}
	res.Summary = "quality cap check complete"
	return res
}

// ValidateLongRunCap checks the long run against the 35%-of-week and
// 2.5-hour absolute caps.
func ValidateLongRunCap(week store.PlanWeek) Result {
	res := Result{OK: true}
	for _, w := range week.Workouts {
		if w.Type != store.WorkoutLong {
			continue
		}
		if week.TargetVolumeKM > 0 && w.DistanceKM > 0.35*week.TargetVolumeKM {
			res.OK = false
			res.Violations = append(res.Violations, Violation{
				Code:    "long_run_cap",
				Message: fmt.Sprintf("%s: long run %.1f km exceeds 35%% of week", w.WorkoutID, w.DistanceKM),
			})
		}
		if w.DurationMin > 150 {
			res.OK = false
			res.Violations = append(res.Violations, Violation{
				Code:    "long_run_cap",
				Message: fmt.Sprintf("%s: long run %.0f min exceeds 2.5h absolute cap", w.WorkoutID, w.DurationMin),
			})
		}
	}
	res.Summary = "long run cap check complete"
	return res
}

// ValidateProgression checks the 10%-rule: a week's target must not exceed
// 1.10x the previous comparable week's actual volume. baselineWeek should
// be the previous *build* week when week follows a recovery week, not the
// recovery week itself.
func ValidateProgression(week store.PlanWeek, baselineWeek *store.PlanWeek) Result {
	if baselineWeek == nil {
		return Result{OK: true, Summary: "no prior week to compare"}
	}
	baselineActual := sumDistanceKM(baselineWeek.Workouts)
	if baselineActual == 0 {
		baselineActual = baselineWeek.TargetVolumeKM
	}
	if baselineActual == 0 {
		return Result{OK: true, Summary: "baseline week has no volume to compare"}
	}

	res := Result{OK: true}
	if week.TargetVolumeKM > baselineActual*1.10 {
		res.OK = false
		res.Violations = append(res.Violations, Violation{
			Code:    "progression",
			Message: fmt.Sprintf("target %.1f km exceeds 110%% of prior week's %.1f km", week.TargetVolumeKM, baselineActual),
		})
	}
	res.Summary = fmt.Sprintf("target %.1f km vs prior %.1f km", week.TargetVolumeKM, baselineActual)
	return res
}

// FindProgressionBaseline walks weeks backward from index i to find the
// prior week to compare against, skipping over a recovery week to land on
// the last build (non-recovery) week before it.
func FindProgressionBaseline(weeks []store.PlanWeek, i int) *store.PlanWeek {
	for j := i - 1; j >= 0; j-- {
		if !weeks[j].IsRecoveryWeek {
			return &weeks[j]
		}
	}
	return nil
}

// ValidateMondayAlignment checks start_date is a Monday and end_date is
// start+6 days.
func ValidateMondayAlignment(week store.PlanWeek) Result {
	res := Result{OK: true}
	start, err := time.Parse("2006-01-02", week.StartDate)
	if err != nil {
		res.OK = false
		res.Violations = append(res.Violations, Violation{Code: "monday_alignment", Message: "invalid start_date"})
		return res
	}
	if start.Weekday() != time.Monday {
		res.OK = false
		res.Violations = append(res.Violations, Violation{Code: "monday_alignment", Message: "start_date is not a Monday"})
	}
	end, err := time.Parse("2006-01-02", week.EndDate)
	if err != nil || !end.Equal(start.AddDate(0, 0, 6)) {
		res.OK = false
		res.Violations = append(res.Violations, Violation{Code: "monday_alignment", Message: "end_date is not start_date+6"})
	}
	res.Summary = fmt.Sprintf("%s .. %s", week.StartDate, week.EndDate)
	return res
}

// ValidateProgressiveDisclosure checks that at most one week past the
// most-recently-completed week has populated workouts.
// completedThroughWeek is the highest week_number with all workouts
// completed or the plan's start if none.
func ValidateProgressiveDisclosure(weeks []store.PlanWeek, completedThroughWeek int) Result {
	res := Result{OK: true}
	allowedThrough := completedThroughWeek + 1
	for _, w := range weeks {
		populated := w.WorkoutPattern != nil || len(w.Workouts) > 0
		if populated && w.WeekNumber > allowedThrough {
			res.OK = false
			res.Violations = append(res.Violations, Violation{
				Code:    "progressive_disclosure",
				Message: fmt.Sprintf("week %d is populated but only week %d may be generated next", w.WeekNumber, allowedThrough),
			})
		}
	}
	res.Summary = fmt.Sprintf("completed through week %d, allowed through %d", completedThroughWeek, allowedThrough)
	return res
}

// ValidateWeek runs every per-week validator and merges the results.
func ValidateWeek(week store.PlanWeek, baselineWeek *store.PlanWeek) Result {
	checks := []Result{
		ValidateVolumeAccuracy(week),
		ValidateMinimumDurations(week),
		ValidateQualityCaps(week),
		ValidateLongRunCap(week),
		ValidateProgression(week, baselineWeek),
		ValidateMondayAlignment(week),
	}

	merged := Result{OK: true}
	for _, c := range checks {
		if !c.OK {
			merged.OK = false
		}
		merged.Violations = append(merged.Violations, c.Violations...)
		merged.Warnings = append(merged.Warnings, c.Warnings...)
	}
	merged.Summary = fmt.Sprintf("%d violations, %d warnings", len(merged.Violations), len(merged.Warnings))
	return merged
}
