// Package profile stores buyer profiles in a JSON flat file and keeps the
// collection clean: unique IDs, no near-duplicate buyers, stable sort order.
package profile

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"gstbill/internal/domain"
	"gstbill/internal/store"
)

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Store is the buyer profile collection over a JSON file.
type Store struct {
	file *store.File
}

// NewStore creates a profile store over the given file.
func NewStore(file *store.File) *Store {
	return &Store{file: file}
}

// List returns all valid profiles sorted by buyer name, case-insensitively.
// Invalid records on disk are skipped, not surfaced as errors.
func (s *Store) List() ([]domain.BuyerProfile, error) {
	var all []domain.BuyerProfile
	if err := s.file.Load(&all); err != nil {
		return nil, err
	}

	profiles := make([]domain.BuyerProfile, 0, len(all))
	for _, p := range all {
		if p.Valid() {
			profiles = append(profiles, p)
		}
	}
	sortByName(profiles)
	return profiles, nil
}

// Get returns the profile with the given ID.
func (s *Store) Get(profileID string) (*domain.BuyerProfile, error) {
	var all []domain.BuyerProfile
	if err := s.file.Load(&all); err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ProfileID == profileID {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("profile %q: %w", profileID, domain.ErrProfileNotFound)
}

// Create adds a new profile. An empty ProfileID is filled in: the GSTIN when
// present, otherwise a name-derived token with a random suffix.
func (s *Store) Create(p domain.BuyerProfile) (*domain.BuyerProfile, error) {
	if strings.TrimSpace(p.BuyerName) == "" {
		return nil, domain.NewValidationError("buyer_name", "must not be empty")
	}
	if len(p.BuyerDetails) > domain.MaxBuyerDetailLines {
		p.BuyerDetails = p.BuyerDetails[:domain.MaxBuyerDetailLines]
	}
	if p.ProfileID == "" {
		p.ProfileID = generateProfileID(&p)
	}
	if !p.DefaultTaxType.Valid() {
		p.DefaultTaxType = domain.TaxTypeIGST
	}

	err := s.file.WithLock(func() error {
		var all []domain.BuyerProfile
		_ = s.file.Load(&all)

		for i := range all {
			if all[i].ProfileID == p.ProfileID {
				return fmt.Errorf("profile %q: %w", p.ProfileID, domain.ErrDuplicateProfileID)
			}
		}

		all = append(all, p)
		return s.file.Save(all)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("profile.Create: created profile %s for %q", p.ProfileID, p.BuyerName)
	return &p, nil
}

// Update replaces the stored profile with the given ID.
func (s *Store) Update(profileID string, p domain.BuyerProfile) (*domain.BuyerProfile, error) {
	if strings.TrimSpace(p.BuyerName) == "" {
		return nil, domain.NewValidationError("buyer_name", "must not be empty")
	}
	p.ProfileID = profileID
	if len(p.BuyerDetails) > domain.MaxBuyerDetailLines {
		p.BuyerDetails = p.BuyerDetails[:domain.MaxBuyerDetailLines]
	}

	err := s.file.WithLock(func() error {
		var all []domain.BuyerProfile
		_ = s.file.Load(&all)

		for i := range all {
			if all[i].ProfileID == profileID {
				all[i] = p
				return s.file.Save(all)
			}
		}
		return fmt.Errorf("profile %q: %w", profileID, domain.ErrProfileNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the profile with the given ID.
func (s *Store) Delete(profileID string) error {
	return s.file.WithLock(func() error {
		var all []domain.BuyerProfile
		_ = s.file.Load(&all)

		for i := range all {
			if all[i].ProfileID == profileID {
				all = append(all[:i], all[i+1:]...)
				return s.file.Save(all)
			}
		}
		return fmt.Errorf("profile %q: %w", profileID, domain.ErrProfileNotFound)
	})
}

// generateProfileID prefers the GSTIN as the natural key. Without one, a
// sanitized name plus a short random suffix keeps IDs readable but unique.
func generateProfileID(p *domain.BuyerProfile) string {
	if gstin := strings.TrimSpace(p.GSTIN); gstin != "" {
		return gstin
	}
	safe := unsafeIDChars.ReplaceAllString(strings.TrimSpace(p.BuyerName), "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		safe = "profile"
	}
	return fmt.Sprintf("%s_%s", safe, uuid.NewString()[:8])
}

func sortByName(profiles []domain.BuyerProfile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		return strings.ToLower(profiles[i].BuyerName) < strings.ToLower(profiles[j].BuyerName)
	})
}
