package load

import (
	"testing"

	"enduro/internal/store"
)

func TestComputeRunLoad(t *testing.T) {
	// 45-minute run at RPE 6 -> systemic=270, lower=270.
	r := Compute(6, 45, store.SportRun)
	if r.SystemicAU != 270 {
		t.Errorf("SystemicAU = %v, want 270", r.SystemicAU)
	}
	if r.LowerBodyAU != 270 {
		t.Errorf("LowerBodyAU = %v, want 270", r.LowerBodyAU)
	}
}

func TestComputeClimbingLoad(t *testing.T) {
	// climbing 105 min RPE 5 -> systemic 315, lower 52.5.
	r := Compute(5, 105, store.SportClimb)
	if r.SystemicAU != 315 {
		t.Errorf("SystemicAU = %v, want 315", r.SystemicAU)
	}
	if r.LowerBodyAU != 52.5 {
		t.Errorf("LowerBodyAU = %v, want 52.5", r.LowerBodyAU)
	}
}

func TestClassifySessionHighHR(t *testing.T) {
	// HR 165/180 = 92% -> RPE 8 -> QUALITY.
	got := ClassifySession(store.SportRun, 8, 50)
	if got != store.SessionQuality {
		t.Errorf("ClassifySession() = %v, want QUALITY", got)
	}
}

func TestClassifySessionRaceByDuration(t *testing.T) {
	got := ClassifySession(store.SportRun, 6, 250)
	if got != store.SessionRace {
		t.Errorf("ClassifySession() = %v, want RACE for long duration", got)
	}
}

func TestClassifySessionNonRunningByRPEOnly(t *testing.T) {
	got := ClassifySession(store.SportCycle, 6, 400)
	if got != store.SessionModerate {
		t.Errorf("ClassifySession() = %v, want MODERATE (duration irrelevant for non-running)", got)
	}
}
