package plan

import (
	"fmt"

	"enduro/internal/store"
)

// LongRunPctRange returns the phase-dependent default [low, high] fraction
// of weekly volume the long run should carry.
func LongRunPctRange(phase store.PlanPhase, isRecoveryWeek bool) (float64, float64) {
	if isRecoveryWeek {
		return 0.50, 0.55
	}
	switch phase {
	case store.PhaseBase:
		return 0.40, 0.45
	case store.PhaseBuild, store.PhasePeak:
		return 0.45, 0.50
	case store.PhaseTaper:
		return 0.35, 0.40
	default:
		return 0.40, 0.45
	}
}

const (
	easyMinMinutes = 30
	easyMinKM      = 5
	longMinMinutes = 60
	longMinKM      = 8
)

// DayAllocation is one run day's share of a distributed week.
type DayAllocation struct {
	Weekday    int
	DistanceKM float64
	IsLong     bool
}

// Distribution is the output of a feasible weekly volume layout.
type Distribution struct {
	Days         []DayAllocation
	LongRunKM    float64
	RunDayCount  int
	Feasible     bool
	Suggestion   string
}

// DistributeWeek lays out targetVolumeKM across runDays days (2-6) for the
// given phase, honoring the long-run percent default and minimum
// duration/distance floors. easyPaceSecPerKM and
// longPaceSecPerKM convert the minute floors into distance floors; pass
// the athlete's slowest E-pace bound for a conservative check. If the
// requested runDays can't satisfy minima, it reduces run count and
// reports infeasibility with a suggestion when no count works.
func DistributeWeek(targetVolumeKM float64, runDays int, phase store.PlanPhase, isRecoveryWeek bool, easyPaceSecPerKM, longPaceSecPerKM int) Distribution {
	longPctLow, _ := LongRunPctRange(phase, isRecoveryWeek)

	easyFloorKM := easyMinKM
	if easyPaceSecPerKM > 0 {
		if fromMinutes := float64(easyMinMinutes*60) / float64(easyPaceSecPerKM); fromMinutes > float64(easyFloorKM) {
			easyFloorKM = int(fromMinutes + 0.999)
		}
	}
	longFloorKM := float64(longMinKM)
	if longPaceSecPerKM > 0 {
		if fromMinutes := float64(longMinMinutes*60) / float64(longPaceSecPerKM); fromMinutes > longFloorKM {
			longFloorKM = fromMinutes
		}
	}

	for days := runDays; days >= 2; days-- {
		longKM := targetVolumeKM * longPctLow
		if longKM < longFloorKM {
			longKM = longFloorKM
		}
		remaining := targetVolumeKM - longKM
		easyDays := days - 1
		if easyDays <= 0 {
			continue
		}
		perEasy := remaining / float64(easyDays)
		if perEasy < float64(easyFloorKM) {
			continue
		}

		allocation := make([]DayAllocation, 0, days)
		allocation = append(allocation, DayAllocation{DistanceKM: longKM, IsLong: true})
		for i := 0; i < easyDays; i++ {
			allocation = append(allocation, DayAllocation{DistanceKM: perEasy})
		}

		return Distribution{
			Days:        allocation,
			LongRunKM:   longKM,
			RunDayCount: days,
			Feasible:    true,
		}
	}

	return Distribution{
		Feasible:   false,
		Suggestion: fmt.Sprintf("reduce target volume below %.1f km or increase available run days", targetVolumeKM),
	}
}

// QualityCapKM returns the maximum km a quality workout of type t may carry
// within a week of weeklyVolumeKM.
func QualityCapKM(t store.WorkoutType, weeklyVolumeKM float64) float64 {
	switch t {
	case store.WorkoutTempo:
		return weeklyVolumeKM * 0.10
	case store.WorkoutIntervals:
		return weeklyVolumeKM * 0.08
	case store.WorkoutRepetition:
		return weeklyVolumeKM * 0.05
	default:
		return weeklyVolumeKM
	}
}
