package adaptation

import (
	"testing"
	"time"

	"enduro/internal/store"
)

func TestDowngradeReplacesWithEasyRPE4(t *testing.T) {
	w := store.Workout{Type: store.WorkoutIntervals, DurationMin: 60, DistanceKM: 10, KeyWorkout: true}
	out := Downgrade(w)
	if out.Type != store.WorkoutEasy || out.TargetRPE != 4 {
		t.Errorf("got %+v, want easy/RPE4", out)
	}
	if out.DurationMin > w.DurationMin {
		t.Error("downgrade must not increase duration")
	}
	if out.KeyWorkout {
		t.Error("downgraded session should not remain a key workout")
	}
}

func TestShortenClampsDurationAndScalesDistance(t *testing.T) {
	w := store.Workout{Type: store.WorkoutTempo, DurationMin: 60, DistanceKM: 10}
	out := Shorten(w, 30)
	if out.DurationMin != 30 {
		t.Errorf("duration = %v, want 30", out.DurationMin)
	}
	if out.DistanceKM != 5 {
		t.Errorf("distance = %v, want 5 (scaled proportionally)", out.DistanceKM)
	}
	if out.Type != store.WorkoutTempo {
		t.Error("shorten must preserve workout type")
	}
}

func TestShortenNoopWhenAlreadyUnderCap(t *testing.T) {
	w := store.Workout{Type: store.WorkoutEasy, DurationMin: 20, DistanceKM: 4}
	out := Shorten(w, 30)
	if out.DurationMin != 20 || out.DistanceKM != 4 {
		t.Errorf("got %+v, want unchanged", out)
	}
}

func TestSafeRescheduleSkipsUnavailableAndQualityDays(t *testing.T) {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday
	unavailable := func(wd time.Weekday) bool { return wd == time.Wednesday }
	quality := func(d time.Time) bool {
		return d.Format("2006-01-02") == "2026-03-05" // Thursday has quality
	}
	got := SafeReschedule(from, 2, unavailable, quality)
	// from+2 = Wednesday (unavailable) -> Thursday (quality) -> Friday (ok)
	want := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestSafeRescheduleNoConstraints(t *testing.T) {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := SafeReschedule(from, 3, nil, nil)
	want := from.AddDate(0, 0, 3)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
