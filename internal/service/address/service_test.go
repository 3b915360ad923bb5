package address

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chefmarket-storefront/internal/backend"
	"chefmarket-storefront/internal/domain"
)

type stubClient struct {
	lists      [][]domain.Address
	listErr    error
	listCalls  int
	created    *domain.Address
	createErr  error
	lastCreate backend.AddressInput
}

func (s *stubClient) ListAddresses(_ context.Context) ([]domain.Address, error) {
	if s.listErr != nil {
		s.listCalls++
		return nil, s.listErr
	}
	var res []domain.Address
	if len(s.lists) > 0 {
		idx := s.listCalls
		if idx >= len(s.lists) {
			idx = len(s.lists) - 1
		}
		res = s.lists[idx]
	}
	s.listCalls++
	return res, nil
}

func (s *stubClient) CreateAddress(_ context.Context, in backend.AddressInput) (*domain.Address, error) {
	s.lastCreate = in
	return s.created, s.createErr
}

func TestFetchCachesList(t *testing.T) {
	client := &stubClient{lists: [][]domain.Address{{{ID: 1, Street: "12 Elm St"}}}}
	svc := New(client)

	first, err := svc.Fetch(context.Background(), "sess", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Fetch(context.Background(), "sess", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.listCalls != 1 {
		t.Fatalf("expected a single backend call, got %d", client.listCalls)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("cache returned a different list (-first +second):\n%s", diff)
	}
}

func TestFetchForceRefreshes(t *testing.T) {
	client := &stubClient{lists: [][]domain.Address{
		{{ID: 1, Street: "12 Elm St"}},
		{{ID: 1, Street: "12 Elm St"}, {ID: 2, Street: "9 Oak Ave"}},
	}}
	svc := New(client)

	if _, err := svc.Fetch(context.Background(), "sess", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refreshed, err := svc.Fetch(context.Background(), "sess", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.listCalls != 2 {
		t.Fatalf("expected 2 backend calls, got %d", client.listCalls)
	}
	if len(refreshed) != 2 {
		t.Fatalf("expected refreshed list of 2, got %d", len(refreshed))
	}
}

func TestFetchFailureClearsCache(t *testing.T) {
	client := &stubClient{lists: [][]domain.Address{{{ID: 1}}}}
	svc := New(client)
	if _, err := svc.Fetch(context.Background(), "sess", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	client.listErr = errors.New("backend down")
	if _, err := svc.Fetch(context.Background(), "sess", true); err == nil {
		t.Fatalf("expected error")
	}

	// Cache entry must be gone: the next non-forced fetch goes to the backend.
	client.listErr = nil
	if _, err := svc.Fetch(context.Background(), "sess", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.listCalls != 3 {
		t.Fatalf("expected 3 backend calls, got %d", client.listCalls)
	}
}

func TestFetchIsolatesSessions(t *testing.T) {
	client := &stubClient{lists: [][]domain.Address{{{ID: 1}}}}
	svc := New(client)
	if _, err := svc.Fetch(context.Background(), "a", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Fetch(context.Background(), "b", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.listCalls != 2 {
		t.Fatalf("expected per-session cache misses, got %d calls", client.listCalls)
	}
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	client := &stubClient{}
	svc := New(client)

	_, _, err := svc.Create(context.Background(), "sess", CreateInput{State: "NY"})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"street", "city", "postal_code", "country"} {
		if validationErr.Fields[field] == "" {
			t.Fatalf("expected %s to be flagged, got %v", field, validationErr.Fields)
		}
	}
	if client.listCalls != 0 {
		t.Fatalf("validation failure must not hit the backend")
	}
}

func TestCreateRefetchFailureReturnsEmptyList(t *testing.T) {
	created := domain.Address{ID: 7, Street: "3 Rue Cler", City: "Paris", PostalCode: "75007", Country: "FR"}
	client := &stubClient{
		created: &created,
		listErr: errors.New("backend down"),
	}
	svc := New(client)

	got, list, err := svc.Create(context.Background(), "sess", CreateInput{
		Street:     "3 Rue Cler",
		City:       "Paris",
		PostalCode: "75007",
		Country:    "FR",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("expected created address, got %+v", got)
	}
	if list == nil {
		t.Fatalf("expected empty list, got nil")
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	created := domain.Address{ID: 7, Street: "3 Rue Cler", City: "Paris", PostalCode: "75007", Country: "FR"}
	client := &stubClient{
		created: &created,
		lists: [][]domain.Address{
			{{ID: 1, Street: "12 Elm St"}},
			{{ID: 1, Street: "12 Elm St"}, created},
		},
	}
	svc := New(client)
	if _, err := svc.Fetch(context.Background(), "sess", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, list, err := svc.Create(context.Background(), "sess", CreateInput{
		Street:     " 3 Rue Cler ",
		City:       "Paris",
		PostalCode: "75007",
		Country:    "FR",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.lastCreate.Street != "3 Rue Cler" {
		t.Fatalf("expected trimmed street, got %q", client.lastCreate.Street)
	}
	if diff := cmp.Diff(&created, got); diff != "" {
		t.Fatalf("unexpected created address (-want +got):\n%s", diff)
	}

	var found bool
	for _, a := range list {
		if a.ID == created.ID && a.Street == created.Street && a.City == created.City &&
			a.PostalCode == created.PostalCode && a.Country == created.Country {
			found = true
		}
	}
	if !found {
		t.Fatalf("created address missing from re-fetched list: %+v", list)
	}
}
