package profile

import (
	"log"
	"strings"

	"gstbill/internal/domain"
)

// Cleanup rewrites the store with invalid records dropped and duplicates
// merged, returning how many records were removed. Duplicate resolution runs
// in two passes: identical IDs (first record wins), then same buyer name
// ignoring case, where the record with more detail lines survives and a
// GSTIN breaks ties.
func (s *Store) Cleanup() (int, error) {
	removed := 0
	err := s.file.WithLock(func() error {
		var all []domain.BuyerProfile
		_ = s.file.Load(&all)

		cleaned := Deduplicate(all)
		removed = len(all) - len(cleaned)
		if removed == 0 {
			return nil
		}
		return s.file.Save(cleaned)
	})
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		log.Printf("profile.Cleanup: removed %d duplicate or invalid profiles", removed)
	}
	return removed, nil
}

// Deduplicate returns the cleaned copy of profiles without touching storage.
func Deduplicate(profiles []domain.BuyerProfile) []domain.BuyerProfile {
	// Pass 1: drop invalid records and identical IDs, first one wins.
	seenID := make(map[string]bool)
	byID := make([]domain.BuyerProfile, 0, len(profiles))
	for _, p := range profiles {
		if !p.Valid() || seenID[p.ProfileID] {
			continue
		}
		seenID[p.ProfileID] = true
		byID = append(byID, p)
	}

	// Pass 2: same buyer name means the same buyer; keep the richer record.
	byName := make(map[string]domain.BuyerProfile)
	order := make([]string, 0, len(byID))
	for _, p := range byID {
		key := strings.ToLower(strings.TrimSpace(p.BuyerName))
		existing, ok := byName[key]
		if !ok {
			byName[key] = p
			order = append(order, key)
			continue
		}
		if betterProfile(p, existing) {
			byName[key] = p
		}
	}

	cleaned := make([]domain.BuyerProfile, 0, len(order))
	for _, key := range order {
		cleaned = append(cleaned, byName[key])
	}
	sortByName(cleaned)
	return cleaned
}

// betterProfile reports whether candidate should replace current when both
// describe the same buyer.
func betterProfile(candidate, current domain.BuyerProfile) bool {
	if len(candidate.BuyerDetails) != len(current.BuyerDetails) {
		return len(candidate.BuyerDetails) > len(current.BuyerDetails)
	}
	return candidate.GSTIN != "" && current.GSTIN == ""
}
