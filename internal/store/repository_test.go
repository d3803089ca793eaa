package store

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	r, err := NewRepository(t.TempDir(), DefaultTunables())
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	return r
}

func sampleActivity(id, date string) *Activity {
	return &Activity{
		Header:       NewHeader(string(KindActivity)),
		ActivityID:   id,
		Source:       SourceManual,
		ActivityDate: date,
		SportType:    SportRun,
		Surface:      SurfaceRoad,
		DurationMinutes: 45,
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	r := testRepo(t)
	a := sampleActivity("abc123", "2026-01-05")
	if err := Write[Activity, *Activity](r, KindActivity, "2026-01/abc123", a); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read[Activity, *Activity](r, KindActivity, "2026-01/abc123")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.ActivityID != "abc123" || got.DurationMinutes != 45 {
		t.Errorf("got %+v", got)
	}
}

func TestReadNotFound(t *testing.T) {
	r := testRepo(t)
	_, err := Read[Activity, *Activity](r, KindActivity, "2026-01/missing")
	var se *Error
	if !asStoreError(err, &se) || se.Kind != KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestWriteRejectsInvalidDocument(t *testing.T) {
	r := testRepo(t)
	a := sampleActivity("bad", "2026-01-05")
	a.DurationMinutes = 0 // violates Activity.Validate
	err := Write[Activity, *Activity](r, KindActivity, "2026-01/bad", a)
	var se *Error
	if !asStoreError(err, &se) || se.Kind != KindValidationError {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// The rejected write must not have left a partial file behind.
	if _, rerr := Read[Activity, *Activity](r, KindActivity, "2026-01/bad"); rerr == nil {
		t.Fatalf("expected invalid document to not be persisted")
	}
}

func TestWriteDoesNotLeaveTempFiles(t *testing.T) {
	r := testRepo(t)
	a := sampleActivity("abc123", "2026-01-05")
	if err := Write[Activity, *Activity](r, KindActivity, "2026-01/abc123", a); err != nil {
		t.Fatalf("Write: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(r.Root(), "activities", "2026-01", ".*"))
	if len(matches) != 0 {
		t.Errorf("expected no leftover temp files, found %v", matches)
	}
}

func TestListOrdersKeys(t *testing.T) {
	r := testRepo(t)
	for _, id := range []string{"c", "a", "b"} {
		a := sampleActivity(id, "2026-01-05")
		if err := Write[Activity, *Activity](r, KindActivity, "2026-01/"+id, a); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	keys, err := r.List(KindActivity, "*")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"2026-01/a", "2026-01/b", "2026-01/c"}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("got %v, want %v", keys, want)
			break
		}
	}
}

func TestUpdateCreatesOnFirstCall(t *testing.T) {
	r := testRepo(t)
	doc, err := Update[Activity, *Activity](r, KindActivity, "2026-01/new", func(a *Activity) error {
		*a = *sampleActivity("new", "2026-01-05")
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if doc.ActivityID != "new" {
		t.Errorf("got %+v", doc)
	}
}

func TestUpdateSerializesConcurrentWriters(t *testing.T) {
	r := testRepo(t)
	a := sampleActivity("race", "2026-01-05")
	if err := Write[Activity, *Activity](r, KindActivity, "2026-01/race", a); err != nil {
		t.Fatalf("Write: %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := Update[Activity, *Activity](r, KindActivity, "2026-01/race", func(a *Activity) error {
				a.DurationMinutes = a.DurationMinutes + 1
				return nil
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			t.Fatalf("concurrent Update failed: %v", err)
		}
	}
	final, err := Read[Activity, *Activity](r, KindActivity, "2026-01/race")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if final.DurationMinutes != 45+float64(n) {
		t.Errorf("got %v, want %v (lost update under concurrency)", final.DurationMinutes, 45+float64(n))
	}
}

func TestReadParseErrorOnCorruptDocument(t *testing.T) {
	r := testRepo(t)
	path := filepath.Join(r.Root(), "activities", "2026-01", "broken.yaml")
	if err := atomicWrite(path, []byte("not: [valid, yaml: structure")); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	_, err := Read[Activity, *Activity](r, KindActivity, "2026-01/broken")
	var se *Error
	if !asStoreError(err, &se) || se.Kind != KindParseError {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestReadParseErrorOnMissingHeader(t *testing.T) {
	r := testRepo(t)
	path := filepath.Join(r.Root(), "activities", "2026-01", "noheader.yaml")
	if err := atomicWrite(path, []byte("activity_id: x\nduration_minutes: 10\n")); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	_, err := Read[Activity, *Activity](r, KindActivity, "2026-01/noheader")
	var se *Error
	if !asStoreError(err, &se) || se.Kind != KindParseError {
		t.Fatalf("expected ParseError for missing header, got %v", err)
	}
}

func TestNewRepositoryRequiresDir(t *testing.T) {
	if _, err := NewRepository("", DefaultTunables()); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestStaleLockIsReclaimed(t *testing.T) {
	r := testRepo(t)
	a := sampleActivity("stale", "2026-01-05")
	if err := Write[Activity, *Activity](r, KindActivity, "2026-01/stale", a); err != nil {
		t.Fatalf("Write: %v", err)
	}

	rel, err := relPath(KindActivity, "2026-01/stale")
	if err != nil {
		t.Fatalf("relPath: %v", err)
	}
	lockBase := filepath.Join(r.Root(), rel)
	stale := lockFile{PID: 999999999, AcquiredAt: time.Now().Add(-time.Hour)}
	data, _ := yaml.Marshal(stale)
	if err := atomicWrite(lockBase+".lock", data); err != nil {
		t.Fatalf("seed stale lock: %v", err)
	}

	tunables := Tunables{LockTimeoutMS: 10, LockRetryCount: 3, LockRetryDelayMS: 10}
	r2, err := NewRepository(r.Root(), tunables)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	_, err = Update[Activity, *Activity](r2, KindActivity, "2026-01/stale", func(a *Activity) error {
		a.DurationMinutes = 99
		return nil
	})
	if err != nil {
		t.Fatalf("expected stale lock to be reclaimed, got %v", err)
	}
}
