package service

import (
	"gstbill/internal/domain"
	"gstbill/internal/profile"
)

// ProfileService defines buyer profile management.
type ProfileService interface {
	List() ([]domain.BuyerProfile, error)
	Get(profileID string) (*domain.BuyerProfile, error)
	Create(p domain.BuyerProfile) (*domain.BuyerProfile, error)
	Update(profileID string, p domain.BuyerProfile) (*domain.BuyerProfile, error)
	Delete(profileID string) error
	Cleanup() (int, error)
}

type profileService struct {
	store *profile.Store
}

// NewProfileService creates a ProfileService over the given store.
func NewProfileService(store *profile.Store) ProfileService {
	return &profileService{store: store}
}

func (s *profileService) List() ([]domain.BuyerProfile, error) {
	return s.store.List()
}

func (s *profileService) Get(profileID string) (*domain.BuyerProfile, error) {
	return s.store.Get(profileID)
}

func (s *profileService) Create(p domain.BuyerProfile) (*domain.BuyerProfile, error) {
	return s.store.Create(p)
}

func (s *profileService) Update(profileID string, p domain.BuyerProfile) (*domain.BuyerProfile, error) {
	return s.store.Update(profileID, p)
}

func (s *profileService) Delete(profileID string) error {
	return s.store.Delete(profileID)
}

func (s *profileService) Cleanup() (int, error) {
	return s.store.Cleanup()
}
