// Package load converts a chosen RPE, duration, sport, and surface into
// systemic and lower-body training load in arbitrary units.
package load

import "enduro/internal/store"

type multiplierPair struct {
	systemic  float64
	lowerBody float64
}

// multiplierTable is the fixed sport/surface -> (systemic, lower-body)
// multiplier table.
var multiplierTable = map[store.SportType]multiplierPair{
	store.SportRun:             {1.00, 1.00},
	store.SportTreadmillRun:    {1.00, 0.90},
	store.SportTrailRun:        {1.05, 1.10},
	store.SportCycle:           {0.85, 0.35},
	store.SportSwim:            {0.70, 0.10},
	store.SportClimb:           {0.60, 0.10},
	store.SportStrength:        {0.55, 0.40},
	store.SportHike:            {0.60, 0.50},
	store.SportCrossfit:        {0.75, 0.55},
	store.SportYogaFlow:        {0.35, 0.10},
	store.SportYogaRestorative: {0.00, 0.00},
}

// defaultMultiplier is used for SportOther and anything the table doesn't
// name, treated conservatively like general strength work.
var defaultMultiplier = multiplierPair{0.55, 0.40}

func multipliersFor(sport store.SportType) multiplierPair {
	if m, ok := multiplierTable[sport]; ok {
		return m
	}
	return defaultMultiplier
}

// Result is the two-channel load a single activity contributes.
type Result struct {
	SystemicAU  float64
	LowerBodyAU float64
}

// Compute converts (rpe, duration, sport) into systemic and lower-body
// load: rpe * duration * per-sport channel multiplier.
func Compute(rpe, durationMinutes float64, sport store.SportType) Result {
	base := rpe * durationMinutes
	m := multipliersFor(sport)
	return Result{
		SystemicAU:  base * m.systemic,
		LowerBodyAU: base * m.lowerBody,
	}
}

// ClassifySession applies the advisory EASY/MODERATE/QUALITY/RACE label
// used by intensity distribution and density counting.
func ClassifySession(sport store.SportType, rpe float64, durationMinutes float64) store.SessionType {
	const typicalRaceWindowMinutes = 240

	if !sport.IsRunning() {
		return classifyByRPE(rpe)
	}

	if rpe >= 9 || durationMinutes > typicalRaceWindowMinutes {
		return store.SessionRace
	}
	return classifyByRPE(rpe)
}

func classifyByRPE(rpe float64) store.SessionType {
	switch {
	case rpe <= 4:
		return store.SessionEasy
	case rpe <= 6:
		return store.SessionModerate
	case rpe <= 8:
		return store.SessionQuality
	default:
		return store.SessionRace
	}
}
