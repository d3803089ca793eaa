package adaptation

import (
	"testing"

	"enduro/internal/store"
)

func TestAssessRiskNoTriggersIsLow(t *testing.T) {
	r := AssessRisk(nil, store.WorkoutEasy, false)
	if r.Level != RiskLow || r.InjuryProbabilityBand != BandUnder10 {
		t.Errorf("got %+v, want low/<0.10", r)
	}
}

func TestAssessRiskSingleDangerIsHigh(t *testing.T) {
	r := AssessRisk([]Trigger{{Kind: ZoneDanger, Name: TriggerACWRHighRisk}}, store.WorkoutTempo, false)
	if r.Level != RiskHigh {
		t.Errorf("level = %v, want high", r.Level)
	}
}

func TestAssessRiskTwoDangersIsSevere(t *testing.T) {
	r := AssessRisk([]Trigger{
		{Kind: ZoneDanger, Name: TriggerACWRHighRisk},
		{Kind: ZoneDanger, Name: TriggerReadinessVeryLow},
	}, store.WorkoutIntervals, false)
	if r.Level != RiskSevere || r.InjuryProbabilityBand != BandOver40 {
		t.Errorf("got %+v, want severe/>0.40", r)
	}
}

func TestAssessRiskPastInjuryElevatesOneLevel(t *testing.T) {
	// elevate one level when memory indicates a relevant
	// past injury.
	without := AssessRisk([]Trigger{{Kind: ZoneCaution, Name: TriggerSessionDensityHigh}}, store.WorkoutTempo, false)
	with := AssessRisk([]Trigger{{Kind: ZoneCaution, Name: TriggerSessionDensityHigh}}, store.WorkoutTempo, true)
	if levelIndex(with.Level) != levelIndex(without.Level)+1 {
		t.Errorf("with-injury level %v should be exactly one band above without-injury level %v", with.Level, without.Level)
	}
}

func TestAssessRiskElevationCapsAtSevere(t *testing.T) {
	r := AssessRisk([]Trigger{
		{Kind: ZoneDanger, Name: TriggerACWRHighRisk},
		{Kind: ZoneDanger, Name: TriggerReadinessVeryLow},
	}, store.WorkoutIntervals, true)
	if r.Level != RiskSevere {
		t.Errorf("level = %v, want severe (already at ceiling)", r.Level)
	}
}

func TestImplicatesBodyPart(t *testing.T) {
	if !ImplicatesBodyPart(store.WorkoutLong, "knee") {
		t.Error("long run should implicate knee")
	}
	if ImplicatesBodyPart(store.WorkoutEasy, "shoulder") {
		t.Error("shoulder is not a lower-body part")
	}
	if ImplicatesBodyPart(store.WorkoutStrides, "knee") {
		t.Error("strides are not in the lower-body-heavy set")
	}
}
