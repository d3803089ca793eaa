// Package config loads and validates the non-secret tunables and importer
// credentials documents from the repository.
package config

import (
	"errors"
	"fmt"

	"enduro/internal/store"
)

// ErrNoConfig is returned when the settings document doesn't exist yet.
var ErrNoConfig = errors.New("settings document not found")

// Load reads config/settings from repo, falling back to DefaultSettings if
// the document has never been written.
func Load(repo *store.Repository) (*store.Settings, error) {
	s, err := store.Read[store.Settings, *store.Settings](repo, store.KindSettings, "")
	if err == nil {
		return s, nil
	}

	var se *store.Error
	if errors.As(err, &se) && se.Kind == store.KindNotFound {
		defaults := store.DefaultSettings()
		return &defaults, ErrNoConfig
	}
	return nil, fmt.Errorf("loading settings: %w", err)
}

// Save writes the settings document atomically via the repository.
func Save(repo *store.Repository, s *store.Settings) error {
	if err := store.Write[store.Settings, *store.Settings](repo, store.KindSettings, "", s); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// LoadSecrets reads config/secrets.local from repo. Unlike Load, a missing
// secrets document is not an error on its own — callers decide whether a
// credential they need is actually absent.
func LoadSecrets(repo *store.Repository) (*store.Secrets, error) {
	s, err := store.Read[store.Secrets, *store.Secrets](repo, store.KindSecrets, "")
	if err == nil {
		return s, nil
	}

	var se *store.Error
	if errors.As(err, &se) && se.Kind == store.KindNotFound {
		return &store.Secrets{Header: store.NewHeader(string(store.KindSecrets))}, nil
	}
	return nil, fmt.Errorf("loading secrets: %w", err)
}

// SaveSecrets writes the secrets document atomically via the repository.
func SaveSecrets(repo *store.Repository, s *store.Secrets) error {
	if err := store.Write[store.Secrets, *store.Secrets](repo, store.KindSecrets, "", s); err != nil {
		return fmt.Errorf("writing secrets: %w", err)
	}
	return nil
}

// TunablesFrom converts a Settings document into store.Tunables, the subset
// the repository itself needs at construction time.
func TunablesFrom(s *store.Settings) store.Tunables {
	return store.Tunables{
		LockTimeoutMS:    s.LockTimeoutMS,
		LockRetryCount:   s.LockRetryCount,
		LockRetryDelayMS: s.LockRetryDelayMS,
	}
}
