package plan

import (
	"math"
	"time"
)

// VDOTEstimate blends multiple sources into a labeled, confidence-scored
// current fitness estimate.
type VDOTEstimate struct {
	VDOT       float64
	Label      string
	Confidence string
}

// recentRaceDecay approximates Daniels' fitness-decay guidance: a race
// result loses reliability as a fitness signal the longer ago it was run.
func recentRaceDecay(daysSince float64) float64 {
	switch {
	case daysSince <= 30:
		return 1.0
	case daysSince <= 90:
		return 0.95
	case daysSince <= 180:
		return 0.88
	default:
		return 0.75
	}
}

// QualitySession is an identified hard-effort activity usable as a
// pace-based VDOT signal.
type QualitySession struct {
	DistanceKM      float64
	DurationMinutes float64
	OccurredAt      time.Time
}

// EasyRun is an identified easy-effort activity with HR data, usable as
// an HR-based VDOT signal (aerobic efficiency at a known HR fraction).
type EasyRun struct {
	DistanceKM      float64
	DurationMinutes float64
	AverageHR       int
	MaxHR           int
}

// EstimateVDOTCurrent blends a recent race-decayed VDOT (if any), pace-
// based estimates from recent quality sessions, and an HR-based estimate
// from easy runs, weighting toward whichever source is most recently
// grounded.
func EstimateVDOTCurrent(recentRacePB *PersonalBest, qualitySessions []QualitySession, easyRuns []EasyRun, now time.Time) VDOTEstimate {
	var estimates []float64
	var weights []float64

	if recentRacePB != nil {
		daysSince := now.Sub(recentRacePB.Date).Hours() / 24
		decay := recentRaceDecay(daysSince)
		v := EstimateVDOTFromPB(recentRacePB.DistanceMeters, recentRacePB.DurationSeconds)
		estimates = append(estimates, v)
		weights = append(weights, 3.0*decay)
	}

	for _, q := range qualitySessions {
		if q.DistanceKM <= 0 || q.DurationMinutes <= 0 {
			continue
		}
		v := EstimateVDOTFromPB(q.DistanceKM*1000, q.DurationMinutes*60)
		estimates = append(estimates, v)
		weights = append(weights, 1.5)
	}

	for _, e := range easyRuns {
		if e.MaxHR == 0 || e.DistanceKM <= 0 || e.DurationMinutes <= 0 {
			continue
		}
		hrFraction := float64(e.AverageHR) / float64(e.MaxHR)
		if hrFraction <= 0 || hrFraction >= 1 {
			continue
		}
		// An easy run at hrFraction of max HR implies an effective race-pace
		// equivalent by scaling the observed pace up to threshold effort.
		paceSecPerKM := e.DurationMinutes * 60 / e.DistanceKM
		scaledPace := paceSecPerKM * hrFraction / 0.88
		impliedTime := scaledPace * 10 // treat as 10K-equivalent effort
		v := EstimateVDOTFromPB(Distance10K, impliedTime)
		estimates = append(estimates, v)
		weights = append(weights, 1.0)
	}

	if len(estimates) == 0 {
		return VDOTEstimate{Confidence: "low"}
	}

	var weightedSum, weightTotal float64
	for i, v := range estimates {
		weightedSum += v * weights[i]
		weightTotal += weights[i]
	}
	blended := weightedSum / weightTotal

	confidence := "low"
	switch {
	case len(estimates) >= 3:
		confidence = "high"
	case len(estimates) >= 2:
		confidence = "medium"
	}

	return VDOTEstimate{
		VDOT:       math.Round(blended*10) / 10,
		Label:      VDOTLabel(blended),
		Confidence: confidence,
	}
}

// PersonalBest is the minimal (distance, time, date) shape EstimateVDOTCurrent
// needs from a profile's recorded bests.
type PersonalBest struct {
	DistanceMeters  float64
	DurationSeconds float64
	Date            time.Time
}

// RacePrediction is a predicted time for one standard distance.
type RacePrediction struct {
	TargetName       string
	TargetMeters     float64
	PredictedSeconds int
	VDOT             float64
	Confidence       string
}

var predictionTargets = []struct {
	name    string
	meters  float64
}{
	{"5k", Distance5K},
	{"10k", Distance10K},
	{"half", DistanceHalfMara},
	{"marathon", DistanceMarathon},
}

// PredictRaceTimes predicts times at every standard distance from a source
// PB, skipping the distance the PB itself was set at.
func PredictRaceTimes(sourceDistanceMeters, sourceDurationSeconds float64) []RacePrediction {
	vdot := EstimateVDOTFromPB(sourceDistanceMeters, sourceDurationSeconds)
	if vdot <= 0 {
		return nil
	}

	var out []RacePrediction
	for _, target := range predictionTargets {
		if matchesDistance(target.meters, sourceDistanceMeters) {
			continue
		}
		seconds := PredictTime(vdot, target.meters)
		if seconds <= 0 {
			continue
		}

		ratio := target.meters / sourceDistanceMeters
		if ratio < 1 {
			ratio = 1 / ratio
		}
		confidence := "high"
		switch {
		case ratio > 4:
			confidence = "low"
		case ratio > 2:
			confidence = "medium"
		}

		out = append(out, RacePrediction{
			TargetName:       target.name,
			TargetMeters:     target.meters,
			PredictedSeconds: int(seconds),
			VDOT:             vdot,
			Confidence:       confidence,
		})
	}
	return out
}
