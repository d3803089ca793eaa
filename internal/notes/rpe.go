// Package notes implements the RPE analyzer: it produces a prioritized set
// of RPE candidates from an activity's structured fields and free text,
// resolves conflicts between them, and extracts injury/illness/wellness
// signals from the same text.
package notes

import (
	"fmt"
	"strings"

	"enduro/internal/normalize"
	"enduro/internal/store"
)

// HRToRPE maps an HR percentage of max to a base RPE value via a fixed
// bracket table, then applies the long-duration bump.
func HRToRPE(avgHR, maxHR int, durationMinutes float64) float64 {
	if maxHR <= 0 {
		return 0
	}
	pct := float64(avgHR) / float64(maxHR)

	var base float64
	switch {
	case pct < 0.60:
		base = 2
	case pct < 0.70:
		base = 4
	case pct < 0.80:
		base = 5
	case pct < 0.85:
		base = 6
	case pct < 0.90:
		base = 7
	case pct < 0.95:
		base = 8
	default:
		base = 9
	}

	if durationMinutes > 150 && base >= 4 {
		base += 2
	} else if durationMinutes > 90 && base >= 4 {
		base++
	}
	if base > 10 {
		base = 10
	}
	return base
}

// textKeywordTable maps lexicon entries to a point value; the maximum
// matched value wins.
var textKeywordTable = map[string]float64{
	"easy":      3,
	"recovery":  2,
	"moderate":  5,
	"tempo":     7,
	"threshold": 7,
	"intervals": 8,
	"interval":  8,
	"hard":      8,
	"race":      9,
	"all out":   10,
	"destroyed": 9,
	"crushed":   9,
}

var sentimentModifiers = map[string]float64{
	"felt great": -1,
	"felt good":  -1,
	"strong":     -1,
	"tired":      1,
	"heavy":      1,
	"exhausted":  1,
	"sore":       1,
}

// TextToRPE scans free text for lexicon matches, taking the maximum, then
// applies a ±1 sentiment modifier. Returns (0, false) if no keyword
// matched at all.
func TextToRPE(text string) (float64, bool) {
	lower := strings.ToLower(text)

	matched := false
	var best float64
	for kw, val := range textKeywordTable {
		if strings.Contains(lower, kw) {
			matched = true
			if val > best {
				best = val
			}
		}
	}
	if !matched {
		return 0, false
	}

	for kw, mod := range sentimentModifiers {
		if strings.Contains(lower, kw) {
			best += mod
			break
		}
	}

	if best < 1 {
		best = 1
	}
	if best > 10 {
		best = 10
	}
	return best, true
}

// RelativeEffortToRPE normalizes a provider relative-effort score against
// duration into the 1-10 band; it's a cross-check only.
func RelativeEffortToRPE(relativeEffort int, durationMinutes float64) float64 {
	if durationMinutes <= 0 {
		return 0
	}
	perMinute := float64(relativeEffort) / durationMinutes
	// Linear scale: 0.5 effort-points/minute maps to RPE 5 and 1.0 to RPE 7,
	// clamped to the 1-10 band.
	rpe := 3 + perMinute*4
	if rpe < 1 {
		rpe = 1
	}
	if rpe > 10 {
		rpe = 10
	}
	return rpe
}

// DurationFallback gives a conservative default RPE keyed to sport and
// duration band; always available so at least one estimate exists.
func DurationFallback(sport store.SportType, durationMinutes float64) float64 {
	if sport.IsRunning() {
		switch {
		case durationMinutes > 120:
			return 6
		case durationMinutes >= 45:
			return 5
		case durationMinutes >= 20:
			return 4
		default:
			return 3
		}
	}

	switch sport {
	case store.SportStrength, store.SportCrossfit:
		return 6
	case store.SportYogaRestorative:
		return 2
	case store.SportYogaFlow:
		return 3
	default:
		return 5
	}
}

// IsHighIntensityProviderTag reports whether a provider-supplied workout
// type tag signals race/workout intensity.
func IsHighIntensityProviderTag(tag string) bool {
	lower := strings.ToLower(tag)
	return strings.Contains(lower, "race") || strings.Contains(lower, "workout")
}

var highIntensityTextMarkers = []string{"interval", "tempo", "race", "track", "vo2", "fartlek"}

// TreadmillDetected re-exposes normalize.DetectIndoorSignal at the >= 2
// threshold the treadmill RPE adjustment gates on.
func TreadmillDetected(sport store.SportType, subType, name, description string, hasGPS bool, deviceName string) bool {
	return normalize.DetectIndoorSignal(sport, subType, name, description, hasGPS, deviceName) >= 2
}

// Input bundles everything EstimateRPE needs about one activity.
type Input struct {
	Sport             store.SportType
	SubType           string
	Name              string
	Description       string
	PrivateNote       string
	DurationMinutes   float64
	HasGPS            bool
	DeviceName        string
	AverageHR         *int
	MaxHR             *int // profile max_hr, falling back to activity peak only here
	RelativeEffort    *int
	PerceivedExertion *int
	ProviderWorkoutTag string
}

// EstimateRPE runs the full multi-source pipeline and returns the
// conflict-resolved chosen RPE plus every candidate considered.
func EstimateRPE(in Input) store.ChosenRPE {
	var estimates []store.RPEEstimate

	if in.PerceivedExertion != nil {
		estimates = append(estimates, store.RPEEstimate{
			Source:     store.RPESourceUser,
			Value:      float64(*in.PerceivedExertion),
			Confidence: store.ConfidenceHigh,
			Reasoning:  "user-entered perceived exertion",
		})
	}

	if in.AverageHR != nil && in.MaxHR != nil && *in.MaxHR > 0 {
		v := HRToRPE(*in.AverageHR, *in.MaxHR, in.DurationMinutes)
		estimates = append(estimates, store.RPEEstimate{
			Source:     store.RPESourceHR,
			Value:      v,
			Confidence: store.ConfidenceHigh,
			Reasoning:  fmt.Sprintf("hr-derived from %d%% of max hr", int(100*float64(*in.AverageHR)/float64(*in.MaxHR))),
		})
	}

	text := strings.TrimSpace(in.Name + " " + in.Description + " " + in.PrivateNote)
	if v, ok := TextToRPE(text); ok {
		estimates = append(estimates, store.RPEEstimate{
			Source:     store.RPESourceText,
			Value:      v,
			Confidence: store.ConfidenceMedium,
			Reasoning:  "text-derived from activity notes",
		})
	}

	if in.RelativeEffort != nil {
		v := RelativeEffortToRPE(*in.RelativeEffort, in.DurationMinutes)
		estimates = append(estimates, store.RPEEstimate{
			Source:     store.RPESourceRelative,
			Value:      v,
			Confidence: store.ConfidenceMedium,
			Reasoning:  "provider relative-effort cross-check",
		})
	}

	// Duration fallback is always available.
	estimates = append(estimates, store.RPEEstimate{
		Source:     store.RPESourceDuration,
		Value:      DurationFallback(in.Sport, in.DurationMinutes),
		Confidence: store.ConfidenceLow,
		Reasoning:  "duration-based conservative default",
	})

	treadmill := TreadmillDetected(in.Sport, in.SubType, in.Name, in.Description, in.HasGPS, in.DeviceName)
	if treadmill {
		estimates = adjustForTreadmill(estimates)
	}

	return resolveConflict(estimates, in, treadmill)
}

// priorityOrder is descending priority: user-entered beats HR beats text
// beats relative effort beats the duration fallback.
var priorityOrder = []store.RPESource{
	store.RPESourceUser,
	store.RPESourceHR,
	store.RPESourceText,
	store.RPESourceRelative,
	store.RPESourceDuration,
}

func priorityRank(s store.RPESource) int {
	for i, p := range priorityOrder {
		if p == s {
			return i
		}
	}
	return len(priorityOrder)
}

// adjustForTreadmill drops pace-based estimates (none modeled directly
// here since distance/pace isn't itself a source; the adjustment instead
// upgrades HR confidence, or substitutes an RPE-6 low-confidence default
// when no HR estimate exists).
func adjustForTreadmill(estimates []store.RPEEstimate) []store.RPEEstimate {
	hasHR := false
	out := make([]store.RPEEstimate, 0, len(estimates))
	for _, e := range estimates {
		if e.Source == store.RPESourceHR {
			e.Confidence = store.ConfidenceHigh
			hasHR = true
		}
		out = append(out, e)
	}
	if !hasHR {
		out = append(out, store.RPEEstimate{
			Source:     store.RPESourceDuration,
			Value:      6,
			Confidence: store.ConfidenceLow,
			Reasoning:  "treadmill detected with no HR data; synthetic moderate default",
		})
	}
	return out
}

func resolveConflict(estimates []store.RPEEstimate, in Input, treadmill bool) store.ChosenRPE {
	if len(estimates) == 0 {
		return store.ChosenRPE{
			Value:      DurationFallback(in.Sport, in.DurationMinutes),
			Source:     store.RPESourceDuration,
			Confidence: store.ConfidenceLow,
			Reasoning:  "no estimates available; duration fallback",
		}
	}

	if treadmill {
		for _, e := range estimates {
			if e.Source == store.RPESourceHR {
				return store.ChosenRPE{
					Value:        e.Value,
					Source:       store.RPESourceHR,
					Confidence:   store.ConfidenceHigh,
					Reasoning:    "treadmill detected; HR-based estimate preferred over pace",
					Alternatives: estimates,
					Conflict:     false,
				}
			}
		}
		return store.ChosenRPE{
			Value:        6,
			Source:       store.RPESourceDuration,
			Confidence:   store.ConfidenceLow,
			Reasoning:    "treadmill detected with no HR data; synthetic moderate default not subject to text override",
			Alternatives: estimates,
			Conflict:     false,
		}
	}

	min, max := estimates[0], estimates[0]
	for _, e := range estimates {
		if e.Value < min.Value {
			min = e
		}
		if e.Value > max.Value {
			max = e
		}
	}
	spread := max.Value - min.Value

	if spread <= 2 {
		chosen := estimates[0]
		for _, e := range estimates {
			if priorityRank(e.Source) < priorityRank(chosen.Source) {
				chosen = e
			}
		}
		return store.ChosenRPE{
			Value:        chosen.Value,
			Source:       chosen.Source,
			Confidence:   chosen.Confidence,
			Reasoning:    fmt.Sprintf("spread %.1f within tolerance; using highest-priority source %s", spread, chosen.Source),
			Alternatives: estimates,
			Conflict:     false,
		}
	}

	if spread > 3 {
		return store.ChosenRPE{
			Value:        max.Value,
			Source:       max.Source,
			Confidence:   max.Confidence,
			Reasoning:    "large spread; using MAX for safety",
			Alternatives: estimates,
			Conflict:     true,
		}
	}

	// 2 < spread <= 3: favor the higher of HR/text if the session looks
	// high-intensity, else trust text over HR.
	highIntensity := looksHighIntensity(in)
	hrEst, hasHR := findSource(estimates, store.RPESourceHR)
	textEst, hasText := findSource(estimates, store.RPESourceText)

	if highIntensity && hasHR && hasText {
		chosen := hrEst
		if textEst.Value > hrEst.Value {
			chosen = textEst
		}
		return store.ChosenRPE{
			Value:        chosen.Value,
			Source:       chosen.Source,
			Confidence:   chosen.Confidence,
			Reasoning:    "moderate spread, high-intensity signals present; using max(HR, text)",
			Alternatives: estimates,
			Conflict:     true,
		}
	}
	if hasText {
		return store.ChosenRPE{
			Value:        textEst.Value,
			Source:       textEst.Source,
			Confidence:   textEst.Confidence,
			Reasoning:    "moderate spread, no high-intensity signal; trusting text over HR",
			Alternatives: estimates,
			Conflict:     true,
		}
	}

	chosen := estimates[0]
	for _, e := range estimates {
		if priorityRank(e.Source) < priorityRank(chosen.Source) {
			chosen = e
		}
	}
	return store.ChosenRPE{
		Value:        chosen.Value,
		Source:       chosen.Source,
		Confidence:   chosen.Confidence,
		Reasoning:    "moderate spread; defaulting to highest-priority source",
		Alternatives: estimates,
		Conflict:     true,
	}
}

func looksHighIntensity(in Input) bool {
	if in.AverageHR != nil && in.MaxHR != nil && *in.MaxHR > 0 {
		if float64(*in.AverageHR)/float64(*in.MaxHR) > 0.85 {
			return true
		}
	}
	if IsHighIntensityProviderTag(in.ProviderWorkoutTag) {
		return true
	}
	text := strings.ToLower(in.Name + " " + in.Description + " " + in.PrivateNote)
	for _, marker := range highIntensityTextMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

func findSource(estimates []store.RPEEstimate, source store.RPESource) (store.RPEEstimate, bool) {
	for _, e := range estimates {
		if e.Source == source {
			return e, true
		}
	}
	return store.RPEEstimate{}, false
}
