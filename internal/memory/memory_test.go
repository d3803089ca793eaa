package memory

import (
	"testing"
	"time"

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

func TestCreateThenGet(t *testing.T) {
	repo := setupTestRepo(t)
	key, err := Create(repo, store.MemoryInjury, "tweaked left knee during trail run", []string{"knee", "injury"}, store.ConfidenceMedium, time.Now())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	fact, err := Get(repo, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fact.Content == "" || fact.Type != store.MemoryInjury {
		t.Errorf("unexpected fact: %+v", fact)
	}
}

func TestListByTag(t *testing.T) {
	repo := setupTestRepo(t)
	if _, err := Create(repo, store.MemoryInjury, "knee niggle", []string{"knee"}, store.ConfidenceLow, time.Now()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := Create(repo, store.MemoryPreference, "prefers morning runs", []string{"schedule"}, store.ConfidenceHigh, time.Now()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	matches, err := ListByTag(repo, "knee")
	if err != nil {
		t.Fatalf("ListByTag: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match for tag 'knee', got %d", len(matches))
	}
	if matches[0].Type != store.MemoryInjury {
		t.Errorf("matched fact type = %v, want injury", matches[0].Type)
	}
}

func TestCreateRejectsEmptyContent(t *testing.T) {
	repo := setupTestRepo(t)
	if _, err := Create(repo, store.MemoryContext, "", nil, store.ConfidenceLow, time.Now()); err == nil {
		t.Error("expected validation error for empty content")
	}
}
