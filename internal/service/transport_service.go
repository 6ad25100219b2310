package service

import "gstbill/internal/transport"

// TransportService defines transport mode management.
type TransportService interface {
	Cores() ([]string, error)
	Save(raw string) (bool, error)
}

type transportService struct {
	store *transport.Store
}

// NewTransportService creates a TransportService over the given store.
func NewTransportService(store *transport.Store) TransportService {
	return &transportService{store: store}
}

func (s *transportService) Cores() ([]string, error) {
	return s.store.Cores()
}

func (s *transportService) Save(raw string) (bool, error) {
	return s.store.SaveIfNew(raw)
}
