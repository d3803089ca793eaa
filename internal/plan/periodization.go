package plan

import (
	"fmt"

	"enduro/internal/store"
)

// ErrInsufficientWeeks is returned when totalWeeks leaves fewer than the
// minimum 4 base weeks after taper and peak are allocated.
type ErrInsufficientWeeks struct {
	TotalWeeks int
	Required   int
}

func (e *ErrInsufficientWeeks) Error() string {
	return fmt.Sprintf("insufficient weeks: have %d, need at least %d", e.TotalWeeks, e.Required)
}

func taperWeeksFor(goal store.GoalType) int {
	switch goal {
	case store.GoalHalf, store.GoalMarathon:
		return 2
	default:
		return 1
	}
}

func peakWeeksFor(totalWeeks int) int {
	if totalWeeks >= 16 {
		return 2
	}
	return 1
}

const minBaseWeeks = 4

// Allocate splits totalWeeks into base/build/peak/taper phases for goal:
// taper is 1 week for 5k/10k and 2 for half/marathon, peak
// is 1 or 2 weeks, remaining weeks split base:build ~= 55:45, and base
// must be at least 4 weeks.
func Allocate(totalWeeks int, goal store.GoalType) (store.PhaseWeeks, error) {
	taper := taperWeeksFor(goal)
	peak := peakWeeksFor(totalWeeks)

	remaining := totalWeeks - taper - peak
	base := int(float64(remaining)*0.55 + 0.5)
	if base < minBaseWeeks && remaining >= minBaseWeeks {
		base = minBaseWeeks
	}
	build := remaining - base

	if base < minBaseWeeks {
		return store.PhaseWeeks{}, &ErrInsufficientWeeks{TotalWeeks: totalWeeks, Required: minBaseWeeks + peak + taper}
	}
	if build < 1 {
		return store.PhaseWeeks{}, &ErrInsufficientWeeks{TotalWeeks: totalWeeks, Required: minBaseWeeks + 1 + peak + taper}
	}

	return store.PhaseWeeks{
		Base:  [2]int{1, base},
		Build: [2]int{base + 1, base + build},
		Peak:  [2]int{base + build + 1, base + build + peak},
		Taper: [2]int{base + build + peak + 1, totalWeeks},
	}, nil
}

// PhaseForWeek returns which phase weekNumber (1-indexed) falls in under
// phases, or "" if out of range.
func PhaseForWeek(phases store.PhaseWeeks, weekNumber int) store.PlanPhase {
	switch {
	case weekNumber >= phases.Base[0] && weekNumber <= phases.Base[1]:
		return store.PhaseBase
	case weekNumber >= phases.Build[0] && weekNumber <= phases.Build[1]:
		return store.PhaseBuild
	case weekNumber >= phases.Peak[0] && weekNumber <= phases.Peak[1]:
		return store.PhasePeak
	case weekNumber >= phases.Taper[0] && weekNumber <= phases.Taper[1]:
		return store.PhaseTaper
	default:
		return ""
	}
}

var peakVolumeRange = map[store.GoalType][2]float64{
	store.Goal5K:       {30, 55},
	store.Goal10K:      {35, 65},
	store.GoalHalf:     {45, 80},
	store.GoalMarathon: {55, 100},
}

// SafeStartingVolume returns the [low, high] km/week range for the first
// plan week from current CTL.
func SafeStartingVolume(ctl float64) (float64, float64) {
	low := 0.8 * ctl
	if low < 15 {
		low = 15
	}
	high := ctl
	if high < low {
		high = low
	}
	return low, high
}

// SafePeakVolume returns the [low, high] km/week range for the peak phase,
// intersecting the goal's standard peak range with a CTL-scaled band.
func SafePeakVolume(ctl float64, goal store.GoalType, weeksToPeak int) (float64, float64) {
	goalRange, ok := peakVolumeRange[goal]
	if !ok {
		goalRange = peakVolumeRange[store.Goal10K]
	}

	startLow, _ := SafeStartingVolume(ctl)
	scaledLow := startLow * (1 + 0.10*float64(weeksToPeak))
	scaledHigh := 2.0 * ctl

	low := goalRange[0]
	if scaledLow > low {
		low = scaledLow
	}
	high := goalRange[1]
	if scaledHigh < high {
		high = scaledHigh
	}
	if high < low {
		high = low
	}
	return low, high
}
