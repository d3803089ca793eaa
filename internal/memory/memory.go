// Package memory is a typed CRUD wrapper over tagged MemoryFact documents.
// The adaptation toolkit's only contract with this package is read-only
// consumption (ListByTag) — memories are advisory and never mutated by
// anything but explicit caller action.
package memory

import (
	"fmt"
	"time"

	"enduro/internal/store"
	"github.com/google/uuid"
)

// Create writes a new memory fact and returns its generated key.
func Create(repo *store.Repository, factType store.MemoryType, content string, tags []string, confidence store.Confidence, now time.Time) (string, error) {
	key := uuid.NewString()
	fact := &store.MemoryFact{
		Header:     store.NewHeader(string(store.KindMemory)),
		Type:       factType,
		Content:    content,
		Tags:       tags,
		Confidence: confidence,
		CreatedAt:  now,
	}
	if err := store.Write[store.MemoryFact, *store.MemoryFact](repo, store.KindMemory, key, fact); err != nil {
		return "", fmt.Errorf("memory: create: %w", err)
	}
	return key, nil
}

// Get reads one memory fact by key.
func Get(repo *store.Repository, key string) (*store.MemoryFact, error) {
	return store.Read[store.MemoryFact, *store.MemoryFact](repo, store.KindMemory, key)
}

// List returns every memory fact's key, loading each document.
func List(repo *store.Repository) ([]string, []*store.MemoryFact, error) {
	keys, err := repo.List(store.KindMemory, "*")
	if err != nil {
		return nil, nil, fmt.Errorf("memory: list: %w", err)
	}
	facts := make([]*store.MemoryFact, 0, len(keys))
	for _, key := range keys {
		f, err := Get(repo, key)
		if err != nil {
			return nil, nil, fmt.Errorf("memory: list: load %s: %w", key, err)
		}
		facts = append(facts, f)
	}
	return keys, facts, nil
}

// ListByTag returns every memory fact carrying tag, for the adaptation
// toolkit's read-only consumption (e.g. a past injury flag on a body part
// implicated by today's workout).
func ListByTag(repo *store.Repository, tag string) ([]*store.MemoryFact, error) {
	_, facts, err := List(repo)
	if err != nil {
		return nil, err
	}
	var matched []*store.MemoryFact
	for _, f := range facts {
		for _, t := range f.Tags {
			if t == tag {
				matched = append(matched, f)
				break
			}
		}
	}
	return matched, nil
}
