package plan

import (
	"fmt"

	"enduro/internal/store"
)

func zoneForWorkout(t store.WorkoutType) string {
	switch t {
	case store.WorkoutEasy, store.WorkoutLong:
		return "E"
	case store.WorkoutTempo:
		return "T"
	case store.WorkoutIntervals:
		return "I"
	case store.WorkoutRepetition:
		return "R"
	case store.WorkoutRacePace:
		return "M"
	default:
		return "E"
	}
}

func paceRangeForZone(paces PaceZones, zone string) store.PaceRange {
	var z [2]int
	switch zone {
	case "E":
		z = paces.Easy
	case "M":
		z = paces.Marathon
	case "T":
		z = paces.Threshold
	case "I":
		z = paces.Interval
	case "R":
		z = paces.Repetition
	default:
		z = paces.Easy
	}
	// zone is fast..slow by definition; pace seconds/km, so fast = smaller.
	return store.PaceRange{FastSecPerKM: z[0], SlowSecPerKM: z[1]}
}

// HRRangeForZone derives an HR range from either LTHR or max_hr fractions,
// per zone, falling back to max_hr when lthr is unavailable.
func HRRangeForZone(zone string, maxHR, lthr int) store.HRRange {
	reference := lthr
	if reference == 0 {
		reference = int(float64(maxHR) * 0.92) // approximate LTHR from max_hr
	}
	if reference == 0 {
		return store.HRRange{}
	}

	var lowPct, highPct float64
	switch zone {
	case "E":
		lowPct, highPct = 0.65, 0.78
	case "M":
		lowPct, highPct = 0.80, 0.87
	case "T":
		lowPct, highPct = 0.88, 0.92
	case "I":
		lowPct, highPct = 0.95, 1.00
	case "R":
		lowPct, highPct = 1.00, 1.05
	default:
		lowPct, highPct = 0.65, 0.78
	}

	base := float64(reference)
	return store.HRRange{Low: int(base * lowPct), High: int(base * highPct)}
}

func purposeFor(t store.WorkoutType, phase store.PlanPhase) string {
	switch t {
	case store.WorkoutEasy:
		return "aerobic maintenance and recovery between harder sessions"
	case store.WorkoutLong:
		return "builds aerobic endurance and fatigue resistance"
	case store.WorkoutTempo:
		return "raises lactate threshold, comfortably hard sustained effort"
	case store.WorkoutIntervals:
		return "develops VO2max via repeated hard efforts with jog recovery"
	case store.WorkoutRepetition:
		return "improves running economy and speed with full recovery"
	case store.WorkoutRacePace:
		return "rehearses goal race pace and pacing discipline"
	case store.WorkoutStrides:
		return "short accelerations to sharpen turnover and form"
	default:
		return ""
	}
}

// CreateWorkout emits a materialized Workout for the given type, date,
// duration, and distance, deriving pace/HR ranges from vdot and profile
// vitals, warmup/cooldown for quality sessions, a target RPE, and a
// purpose string.
func CreateWorkout(workoutID string, t store.WorkoutType, phase store.PlanPhase, date string, durationMin, distanceKM float64, vdot float64, maxHR, lthr int) store.Workout {
	zone := zoneForWorkout(t)
	paces := Paces(vdot)
	paceRange := paceRangeForZone(paces, zone)
	hrRange := HRRangeForZone(zone, maxHR, lthr)

	isQuality := t == store.WorkoutTempo || t == store.WorkoutIntervals || t == store.WorkoutRepetition || t == store.WorkoutRacePace
	var warmup, cooldown float64
	if isQuality {
		warmup, cooldown = 12, 12
	}

	targetRPE := targetRPEFor(t)

	return store.Workout{
		WorkoutID:   workoutID,
		Phase:       phase,
		Date:        date,
		Type:        t,
		DurationMin: durationMin,
		DistanceKM:  distanceKM,
		Zone:        zone,
		TargetRPE:   targetRPE,
		Pace:        &paceRange,
		HR:          &hrRange,
		WarmupMin:   warmup,
		CooldownMin: cooldown,
		Purpose:     purposeFor(t, phase),
		KeyWorkout:  isQuality || t == store.WorkoutLong,
		Status:      store.WorkoutPlanned,
	}
}

func targetRPEFor(t store.WorkoutType) float64 {
	switch t {
	case store.WorkoutEasy:
		return 3
	case store.WorkoutLong:
		return 5
	case store.WorkoutTempo:
		return 7
	case store.WorkoutIntervals:
		return 8
	case store.WorkoutRepetition:
		return 8
	case store.WorkoutRacePace:
		return 7
	case store.WorkoutStrides:
		return 4
	default:
		return 5
	}
}

// NextWorkoutID generates a deterministic workout id from a plan week and
// ordinal, avoiding a dependency on process-wide random state.
func NextWorkoutID(weekNumber, ordinal int) string {
	return fmt.Sprintf("w%02d-%d", weekNumber, ordinal)
}
