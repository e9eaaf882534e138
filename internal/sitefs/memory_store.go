package sitefs

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStore keeps files in memory. Useful for previews and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string][]byte

	// WriteErr, when set, is returned by Write for the matching path.
	WriteErr map[string]error
}

// NewMemoryStore returns a store seeded with the given files.
func NewMemoryStore(seed map[string][]byte) *MemoryStore {
	files := make(map[string][]byte, len(seed))
	maps.Copy(files, seed)
	return &MemoryStore{files: files, WriteErr: map[string]error{}}
}

func (s *MemoryStore) Exists(ctx context.Context, rel string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	cleaned, err := cleanRel(rel)
	if err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[cleaned]
	return ok, nil
}

func (s *MemoryStore) Write(ctx context.Context, rel string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cleaned, err := cleanRel(rel)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.WriteErr[cleaned]; err != nil {
		return err
	}
	s.files[cleaned] = slices.Clone(data)
	return nil
}

// Get returns the content stored at rel.
func (s *MemoryStore) Get(rel string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[rel]
	return data, ok
}

// Paths returns every stored path, sorted.
func (s *MemoryStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.files))
}
