package adaptation

import (
	"time"

	"enduro/internal/store"
)

// Downgrade replaces w with an easy-effort session at RPE 4, keeping the
// same or a shorter duration.
func Downgrade(w store.Workout) store.Workout {
	out := w
	out.Type = store.WorkoutEasy
	out.Zone = "E"
	out.TargetRPE = 4
	out.Purpose = "downgraded from " + string(w.Type) + " for recovery"
	out.Pace = nil
	out.HR = nil
	out.WarmupMin = 0
	out.CooldownMin = 0
	out.KeyWorkout = false
	return out
}

// Shorten clamps w's duration (and proportionally its distance) to
// maxDurationMin, preserving its type.
func Shorten(w store.Workout, maxDurationMin float64) store.Workout {
	if w.DurationMin <= maxDurationMin {
		return w
	}
	out := w
	if w.DurationMin > 0 && w.DistanceKM > 0 {
		ratio := maxDurationMin / w.DurationMin
		out.DistanceKM = w.DistanceKM * ratio
	}
	out.DurationMin = maxDurationMin
	return out
}

// UnavailableDayChecker reports whether weekday is unavailable to the
// athlete (other-sport commitments, rest days, etc.).
type UnavailableDayChecker func(weekday time.Weekday) bool

// HasQualityChecker reports whether a planned quality session already
// exists on the given date.
type HasQualityChecker func(date time.Time) bool

// SafeReschedule walks forward day by day from from, skipping unavailable
// days, until at least recoveryDays have elapsed and the landing day
// carries no planned quality session.
func SafeReschedule(from time.Time, recoveryDays int, unavailable UnavailableDayChecker, hasQuality HasQualityChecker) time.Time {
	candidate := from.AddDate(0, 0, recoveryDays)
	for {
		if unavailable != nil && unavailable(candidate.Weekday()) {
			candidate = candidate.AddDate(0, 0, 1)
			continue
		}
		if hasQuality != nil && hasQuality(candidate) {
			candidate = candidate.AddDate(0, 0, 1)
			continue
		}
		return candidate
	}
}
