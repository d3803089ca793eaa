package importer

import (
	"testing"

	"enduro/internal/store"
)

func setupTestRepo(t *testing.T) *store.Repository {
	t.Helper()
	repo, err := store.NewRepository(t.TempDir(), store.DefaultTunables())
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	return repo
}

func TestImportColdStart(t *testing.T) {
	repo := setupTestRepo(t)
	avgHR, maxHR := 150, 190
	rec := Record{
		ActivityID:      "1",
		Source:          "manual",
		ActivityDate:    "2026-03-02",
		SportType:       "Run",
		DurationMinutes: 45,
		AverageHR:       &avgHR,
		MaxHR:           &maxHR,
	}

	activity, err := Import(repo, rec, 190)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if activity.SportType != store.SportRun {
		t.Errorf("SportType = %v, want run", activity.SportType)
	}
	if activity.SystemicLoadAU <= 0 {
		t.Errorf("SystemicLoadAU = %v, want positive", activity.SystemicLoadAU)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	repo := setupTestRepo(t)
	rec := Record{
		ActivityID:      "42",
		Source:          "provider",
		ActivityDate:    "2026-03-02",
		SportType:       "Run",
		DurationMinutes: 30,
	}

	first, err := Import(repo, rec, 190)
	if err != nil {
		t.Fatalf("Import (first): %v", err)
	}
	second, err := Import(repo, rec, 190)
	if err != nil {
		t.Fatalf("Import (second): %v", err)
	}
	if first.ActivityID != second.ActivityID || first.SystemicLoadAU != second.SystemicLoadAU {
		t.Error("re-delivering the same (source, activity_id) should be a no-op returning the stored activity")
	}
}

func TestImportRejectsZeroDuration(t *testing.T) {
	repo := setupTestRepo(t)
	rec := Record{ActivityID: "1", Source: "manual", ActivityDate: "2026-03-02", SportType: "Run", DurationMinutes: 0}
	if _, err := Import(repo, rec, 190); err == nil {
		t.Error("expected an error for zero duration_minutes")
	}
}

func TestImportDetectsTreadmill(t *testing.T) {
	repo := setupTestRepo(t)
	rec := Record{
		ActivityID:      "7",
		Source:          "manual",
		ActivityDate:    "2026-03-02",
		SportType:       "Run",
		SubType:         "treadmill",
		DurationMinutes: 30,
		HasGPS:          false,
	}
	activity, err := Import(repo, rec, 190)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if activity.SportType != store.SportTreadmillRun {
		t.Errorf("SportType = %v, want treadmill_run", activity.SportType)
	}
}
