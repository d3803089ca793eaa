package config

import (
	"errors"
	"os"
	"testing"

	"enduro/internal/store"
)

func setupTestRepo(t *testing.T) *store.Repository {
	t.Helper()
	dir, err := os.MkdirTemp("", "enduro-config-test")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	repo, err := store.NewRepository(dir, store.DefaultTunables())
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	return repo
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	repo := setupTestRepo(t)

	s, err := Load(repo)
	if !errors.Is(err, ErrNoConfig) {
		t.Fatalf("Load() error = %v, want ErrNoConfig", err)
	}
	if s.CTLTimeConstant != 42 {
		t.Errorf("CTLTimeConstant = %d, want 42", s.CTLTimeConstant)
	}
	if s.ATLTimeConstant != 7 {
		t.Errorf("ATLTimeConstant = %d, want 7", s.ATLTimeConstant)
	}
	if s.ACWRMinimumDays != 21 {
		t.Errorf("ACWRMinimumDays = %d, want 21", s.ACWRMinimumDays)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	repo := setupTestRepo(t)

	want := store.DefaultSettings()
	want.LockTimeoutMS = 60_000

	if err := Save(repo, &want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(repo)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.LockTimeoutMS != 60_000 {
		t.Errorf("LockTimeoutMS = %d, want 60000", got.LockTimeoutMS)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*store.Settings)
		expectError bool
	}{
		{
			name:        "defaults are valid",
			mutate:      func(s *store.Settings) {},
			expectError: false,
		},
		{
			name:        "zero ctl time constant",
			mutate:      func(s *store.Settings) { s.CTLTimeConstant = 0 },
			expectError: true,
		},
		{
			name:        "minimum days exceeds chronic window",
			mutate:      func(s *store.Settings) { s.ACWRMinimumDays = 29 },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadSecretsMissingReturnsEmpty(t *testing.T) {
	repo := setupTestRepo(t)

	s, err := LoadSecrets(repo)
	if err != nil {
		t.Fatalf("LoadSecrets() error = %v", err)
	}
	if s.ProviderClientID != "" {
		t.Errorf("ProviderClientID should be empty, got %q", s.ProviderClientID)
	}
}

func TestSaveSecretsThenLoadRoundTrips(t *testing.T) {
	repo := setupTestRepo(t)

	want := store.Secrets{ProviderClientID: "abc123", ProviderClientSecret: "shh"}
	if err := SaveSecrets(repo, &want); err != nil {
		t.Fatalf("SaveSecrets() error = %v", err)
	}

	got, err := LoadSecrets(repo)
	if err != nil {
		t.Fatalf("LoadSecrets() error = %v", err)
	}
	if got.ProviderClientID != "abc123" {
		t.Errorf("ProviderClientID = %q, want %q", got.ProviderClientID, "abc123")
	}
}
