package address

import (
	"context"
	"strings"
	"sync"

	"chefmarket-storefront/internal/backend"
	"chefmarket-storefront/internal/domain"
)

type backendClient interface {
	ListAddresses(ctx context.Context) ([]domain.Address, error)
	CreateAddress(ctx context.Context, in backend.AddressInput) (*domain.Address, error)
}

// ValidationError reports missing required fields on address creation; it is
// raised before any backend call.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "address is missing required fields" }

// Service caches the saved-address list per session. The cache is refreshed
// wholesale, never merged, so a stale partial list can't survive a create.
type Service struct {
	client backendClient

	mu    sync.Mutex
	cache map[string][]domain.Address
}

func New(client backendClient) *Service {
	return &Service{
		client: client,
		cache:  make(map[string][]domain.Address),
	}
}

// Fetch returns the cached list unless force is set or the cache is empty.
// On failure the cache entry is dropped so the next call retries.
func (s *Service) Fetch(ctx context.Context, sessionID string, force bool) ([]domain.Address, error) {
	s.mu.Lock()
	cached, ok := s.cache[sessionID]
	s.mu.Unlock()
	if ok && !force {
		return append([]domain.Address(nil), cached...), nil
	}

	list, err := s.client.ListAddresses(ctx)
	if err != nil {
		s.mu.Lock()
		delete(s.cache, sessionID)
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.cache[sessionID] = list
	s.mu.Unlock()
	return append([]domain.Address(nil), list...), nil
}

// CreateInput is the storefront-side address creation form.
type CreateInput struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

func (in CreateInput) validate() map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(in.Street) == "" {
		fields["street"] = "required"
	}
	if strings.TrimSpace(in.City) == "" {
		fields["city"] = "required"
	}
	if strings.TrimSpace(in.PostalCode) == "" {
		fields["postal_code"] = "required"
	}
	if strings.TrimSpace(in.Country) == "" {
		fields["country"] = "required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Create validates required fields, stores the address remotely, then
// re-fetches the full list. Returns the created record and the fresh list.
func (s *Service) Create(ctx context.Context, sessionID string, in CreateInput) (*domain.Address, []domain.Address, error) {
	if fields := in.validate(); fields != nil {
		return nil, nil, &ValidationError{Fields: fields}
	}

	created, err := s.client.CreateAddress(ctx, backend.AddressInput{
		Street:     strings.TrimSpace(in.Street),
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    strings.TrimSpace(in.Country),
	})
	if err != nil {
		return nil, nil, err
	}

	list, err := s.Fetch(ctx, sessionID, true)
	if err != nil {
		// The create itself succeeded; hand back the record with an empty
		// list so callers always see a slice.
		return created, []domain.Address{}, nil
	}
	return created, list, nil
}
