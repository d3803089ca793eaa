package importer

import (
	"errors"
	"fmt"
	"strings"

	"enduro/internal/load"
	"enduro/internal/notes"
	"enduro/internal/normalize"
	"enduro/internal/store"
)

// Import normalizes rec into a stored Activity: sport/surface resolution,
// RPE estimation, load computation, and classification, then writes it
// under the (source, activity_id) dedup key. Re-delivering the same
// (source, activity_id) is a no-op — the existing stored activity is
// returned unchanged.
func Import(repo *store.Repository, rec Record, maxHR int) (*store.Activity, error) {
	if rec.ActivityID == "" {
		return nil, fmt.Errorf("importer: activity_id is required")
	}
	if rec.DurationMinutes <= 0 {
		return nil, fmt.Errorf("importer: duration_minutes must be > 0")
	}

	key, err := activityKey(rec)
	if err != nil {
		return nil, fmt.Errorf("importer: %w", err)
	}

	existing, err := store.Read[store.Activity, *store.Activity](repo, store.KindActivity, key)
	if err == nil {
		return existing, nil
	}
	var se *store.Error
	if !errors.As(err, &se) || se.Kind != store.KindNotFound {
		return nil, fmt.Errorf("importer: checking for existing activity: %w", err)
	}

	sport, warning := normalize.CanonicalSport(rec.SportType)
	indoorScore := normalize.DetectIndoorSignal(sport, rec.SubType, rec.Name, rec.Description, rec.HasGPS, rec.DeviceName)
	surface := normalize.ResolveSurface(sport, "", indoorScore)
	if indoorScore >= 2 && sport == store.SportRun {
		sport = store.SportTreadmillRun
	}

	hrInput := notes.Input{
		Sport:             sport,
		SubType:           rec.SubType,
		Name:              rec.Name,
		Description:       rec.Description,
		PrivateNote:       rec.PrivateNote,
		DurationMinutes:   rec.DurationMinutes,
		HasGPS:            rec.HasGPS,
		DeviceName:        rec.DeviceName,
		RelativeEffort:    rec.RelativeEffort,
		PerceivedExertion: rec.PerceivedExertion,
	}
	if rec.AverageHR != nil {
		hrInput.AverageHR = rec.AverageHR
	}
	if maxHR > 0 {
		m := maxHR
		hrInput.MaxHR = &m
	} else if rec.MaxHR != nil {
		hrInput.MaxHR = rec.MaxHR
	}

	chosen := notes.EstimateRPE(hrInput)
	result := load.Compute(chosen.Value, rec.DurationMinutes, sport)
	sessionType := load.ClassifySession(sport, chosen.Value, rec.DurationMinutes)

	activity := &store.Activity{
		Header:            store.NewHeader(string(store.KindActivity)),
		ActivityID:        rec.ActivityID,
		Source:            store.Source(rec.Source),
		ActivityDate:      rec.ActivityDate,
		StartTime:         rec.StartTime,
		SportType:         sport,
		SubType:           rec.SubType,
		Surface:           surface,
		DurationMinutes:   rec.DurationMinutes,
		DistanceKM:        rec.DistanceKM,
		AverageHR:         rec.AverageHR,
		MaxHR:             rec.MaxHR,
		HasGPS:            rec.HasGPS,
		DeviceName:        rec.DeviceName,
		RelativeEffort:    rec.RelativeEffort,
		PerceivedExertion: rec.PerceivedExertion,
		Name:              rec.Name,
		Description:       rec.Description,
		PrivateNote:       rec.PrivateNote,
		RPEEstimate:       &chosen,
		SystemicLoadAU:    result.SystemicAU,
		LowerBodyLoadAU:   result.LowerBodyAU,
		SessionType:       sessionType,
		NormalizeWarning:  warning,
	}

	if injuries := notes.ExtractInjuryFlags(rec.PrivateNote + " " + rec.Description); len(injuries) > 0 {
		activity.Flags.Injury = &injuries[0]
	}
	if illness := notes.ExtractIllnessFlag(rec.PrivateNote + " " + rec.Description); illness != nil {
		activity.Flags.Illness = illness
	}

	if err := store.Write[store.Activity, *store.Activity](repo, store.KindActivity, key, activity); err != nil {
		return nil, fmt.Errorf("importer: writing activity: %w", err)
	}
	return activity, nil
}

func activityKey(rec Record) (string, error) {
	if len(rec.ActivityDate) < 7 {
		return "", fmt.Errorf("activity_date %q must be YYYY-MM-DD", rec.ActivityDate)
	}
	month := rec.ActivityDate[:7]
	id := sanitizeID(rec.Source + "_" + rec.ActivityID)
	return month + "/" + id, nil
}

func sanitizeID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == ':', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
