package transport

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"gstbill/internal/store"
)

// Store persists canonical transport mode strings as a JSON array.
type Store struct {
	file *store.File
}

// NewStore creates a transport mode store over the given file.
func NewStore(file *store.File) *Store {
	return &Store{file: file}
}

// List returns the stored canonical strings.
func (s *Store) List() ([]string, error) {
	var modes []string
	if err := s.file.Load(&modes); err != nil {
		return nil, err
	}
	return modes, nil
}

// Cores returns the deduplicated core values, sorted. Stored entries that
// normalize to the same core collapse to one.
func (s *Store) Cores() ([]string, error) {
	modes, err := s.List()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var cores []string
	for _, mode := range modes {
		core := Core(mode)
		if core == "" || seen[strings.ToLower(core)] {
			continue
		}
		seen[strings.ToLower(core)] = true
		cores = append(cores, core)
	}
	sort.Strings(cores)
	return cores, nil
}

// SaveIfNew appends the canonical form of raw when no stored record shares
// its core (case-insensitively). Returns whether a record was added; repeated
// calls with equivalent input are no-ops.
func (s *Store) SaveIfNew(raw string) (bool, error) {
	core := Core(raw)
	if core == "" {
		return false, nil
	}

	added := false
	err := s.file.WithLock(func() error {
		var modes []string
		_ = s.file.Load(&modes)

		for _, mode := range modes {
			if strings.EqualFold(Core(mode), core) {
				return nil
			}
		}

		modes = append(modes, canonicalPrefix+core)
		if err := s.file.Save(modes); err != nil {
			return fmt.Errorf("saving transport modes: %w", err)
		}
		added = true
		log.Printf("transport.SaveIfNew: saved new transport mode %q", core)
		return nil
	})
	return added, err
}
