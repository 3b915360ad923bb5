package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"chefmarket-storefront/internal/domain"
)

const addressesPath = "/auth/api/address_details/"

type wireAddress struct {
	ID         int64  `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (w wireAddress) toDomain() domain.Address {
	return domain.Address{
		ID:         w.ID,
		Street:     w.Street,
		City:       w.City,
		State:      w.State,
		PostalCode: w.PostalCode,
		Country:    w.Country,
	}
}

// AddressInput is the creation payload for a saved address.
type AddressInput struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ListAddresses fetches the caller's saved addresses. The endpoint has
// shipped several envelope shapes (bare array, {results}, {addresses});
// all are accepted.
func (c *Client) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, addressesPath, nil, &raw); err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	wires, err := decodeAddressList(raw)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	out := make([]domain.Address, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func decodeAddressList(raw json.RawMessage) ([]wireAddress, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []wireAddress
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode address list: %w", err)
		}
		return list, nil
	}
	var envelope struct {
		Results   []wireAddress `json:"results"`
		Addresses []wireAddress `json:"addresses"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode address envelope: %w", err)
	}
	if envelope.Results != nil {
		return envelope.Results, nil
	}
	return envelope.Addresses, nil
}

// CreateAddress stores a new saved address and returns the created record.
func (c *Client) CreateAddress(ctx context.Context, in AddressInput) (*domain.Address, error) {
	var created wireAddress
	if err := c.do(ctx, http.MethodPost, addressesPath, in, &created); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	addr := created.toDomain()
	return &addr, nil
}
