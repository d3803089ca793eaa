// Package normalize canonicalizes provider-specific activity shapes before
// they reach the notes/RPE analyzer or load engine.
package normalize

import (
	"strings"

	"enduro/internal/store"
)

// sportTagTable maps loosely-cased provider tags to the closed canonical
// set. Unknown tags fall through to SportOther with a warning, never a
// hard error.
var sportTagTable = map[string]store.SportType{
	"run":              store.SportRun,
	"running":          store.SportRun,
	"trailrun":         store.SportTrailRun,
	"trail_run":        store.SportTrailRun,
	"treadmillrun":     store.SportTreadmillRun,
	"treadmill_run":    store.SportTreadmillRun,
	"virtualrun":       store.SportTreadmillRun,
	"ride":             store.SportCycle,
	"cycle":            store.SportCycle,
	"cycling":          store.SportCycle,
	"virtualride":      store.SportCycle,
	"swim":             store.SportSwim,
	"swimming":         store.SportSwim,
	"rockclimbing":     store.SportClimb,
	"climb":            store.SportClimb,
	"weighttraining":   store.SportStrength,
	"strength":         store.SportStrength,
	"workout":          store.SportStrength,
	"hike":             store.SportHike,
	"hiking":           store.SportHike,
	"crossfit":         store.SportCrossfit,
	"yoga":             store.SportYogaFlow,
	"yogaflow":         store.SportYogaFlow,
	"yogarestorative":  store.SportYogaRestorative,
	"restorativeyoga":  store.SportYogaRestorative,
}

// treadmillTitleMarkers, when present in an activity's name/description,
// contribute indoor detection signal.
var treadmillTitleMarkers = []string{
	"treadmill", "indoor", "zwift", "peloton", "nordictrack", "dreadmill", "gym run", "tm run",
}

// CanonicalSport maps a provider sport tag to the closed canonical set.
// Returns (tag, warning) where warning is non-empty when the input tag was
// unrecognized and "other" was substituted.
func CanonicalSport(providerTag string) (store.SportType, string) {
	key := strings.ToLower(strings.TrimSpace(providerTag))
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "-", "")
	if tag, ok := sportTagTable[key]; ok {
		return tag, ""
	}
	return store.SportOther, "unrecognized sport_type " + providerTag + "; normalized to other"
}

// DetectIndoorSignal scores the multi-signal treadmill/indoor heuristic.
// A score >= 2 means the activity should be treated as indoor for surface
// purposes. Only running sports can be indoor in this model.
func DetectIndoorSignal(sport store.SportType, subType, name, description string, hasGPS bool, deviceName string) int {
	if !sport.IsRunning() {
		return 0
	}

	score := 0
	lowerSub := strings.ToLower(subType)
	if strings.Contains(lowerSub, "indoor") || strings.Contains(lowerSub, "treadmill") {
		score++
	}

	title := strings.ToLower(name + " " + description)
	for _, marker := range treadmillTitleMarkers {
		if strings.Contains(title, marker) {
			score++
			break
		}
	}

	if !hasGPS {
		score++
	}

	if isKnownIndoorDevice(deviceName) {
		score++
	}

	return score
}

var knownIndoorDevices = []string{"peloton tread", "nordictrack", "zwift", "woodway"}

func isKnownIndoorDevice(deviceName string) bool {
	lower := strings.ToLower(deviceName)
	for _, d := range knownIndoorDevices {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// ResolveSurface picks the canonical Surface for a normalized activity,
// upgrading to treadmill when the indoor signal score reaches 2 and the
// sport is a running discipline.
func ResolveSurface(sport store.SportType, providerSurface string, indoorScore int) store.Surface {
	if sport.IsRunning() && indoorScore >= 2 {
		return store.SurfaceTreadmill
	}

	switch strings.ToLower(strings.TrimSpace(providerSurface)) {
	case "road":
		return store.SurfaceRoad
	case "track":
		return store.SurfaceTrack
	case "trail":
		return store.SurfaceTrail
	case "indoor":
		return store.SurfaceIndoor
	case "":
		if sport.IsRunning() {
			return store.SurfaceRoad
		}
		return store.SurfaceUnknown
	default:
		return store.SurfaceUnknown
	}
}

// MilesToKM converts miles to kilometers.
func MilesToKM(miles float64) float64 { return miles * 1.609344 }

// MetersToKM converts meters to kilometers.
func MetersToKM(meters float64) float64 { return meters / 1000.0 }

// SecondsToMinutes converts seconds to minutes.
func SecondsToMinutes(seconds float64) float64 { return seconds / 60.0 }
