package plan

import (
	"testing"

	"enduro/internal/store"
)

func TestAllocateMarathon16Weeks(t *testing.T) {
	phases, err := Allocate(16, store.GoalMarathon)
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if phases.Taper[1]-phases.Taper[0]+1 != 2 {
		t.Errorf("taper weeks = %d, want 2 for marathon", phases.Taper[1]-phases.Taper[0]+1)
	}
	if phases.Base[0] != 1 {
		t.Errorf("base should start at week 1, got %d", phases.Base[0])
	}
	if phases.Taper[1] != 16 {
		t.Errorf("taper should end at total_weeks=16, got %d", phases.Taper[1])
	}
	baseWeeks := phases.Base[1] - phases.Base[0] + 1
	if baseWeeks < minBaseWeeks {
		t.Errorf("base weeks = %d, want >= %d", baseWeeks, minBaseWeeks)
	}
}

func TestAllocate5K8Weeks(t *testing.T) {
	phases, err := Allocate(8, store.Goal5K)
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if phases.Taper[1]-phases.Taper[0]+1 != 1 {
		t.Errorf("taper weeks = %d, want 1 for 5k", phases.Taper[1]-phases.Taper[0]+1)
	}
}

func TestAllocateInsufficientWeeks(t *testing.T) {
	_, err := Allocate(5, store.GoalMarathon)
	if err == nil {
		t.Fatal("expected InsufficientWeeks error for 5-week marathon plan")
	}
	if _, ok := err.(*ErrInsufficientWeeks); !ok {
		t.Errorf("error type = %T, want *ErrInsufficientWeeks", err)
	}
}

func TestPhaseForWeek(t *testing.T) {
	phases, err := Allocate(16, store.GoalMarathon)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got := PhaseForWeek(phases, 1); got != store.PhaseBase {
		t.Errorf("week 1 phase = %v, want base", got)
	}
	if got := PhaseForWeek(phases, 16); got != store.PhaseTaper {
		t.Errorf("week 16 phase = %v, want taper", got)
	}
}

func TestSafeStartingVolumeFloor(t *testing.T) {
	low, high := SafeStartingVolume(10)
	if low != 15 {
		t.Errorf("low = %v, want floor of 15 when 0.8*ctl < 15", low)
	}
	if high != 15 {
		t.Errorf("high = %v, want ctl=10 raised to floor 15", high)
	}
}

func TestSafePeakVolumeIntersection(t *testing.T) {
	low, high := SafePeakVolume(50, store.GoalMarathon, 10)
	if low < 55 {
		t.Errorf("low = %v, should not go below marathon goal floor of 55", low)
	}
	if high > 100 {
		t.Errorf("high = %v, should not exceed marathon goal ceiling of 100", high)
	}
}
