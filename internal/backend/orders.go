package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// OrderUpdate is the partial-update payload for a draft order. Zero-valued
// optional fields are omitted; the server echoes the normalized record back.
type OrderUpdate struct {
	HouseholdSize       int               `json:"household_size"`
	ServiceDate         string            `json:"service_date,omitempty"`
	ServiceStartTime    string            `json:"service_start_time,omitempty"`
	DurationMinutes     int               `json:"duration_minutes,omitempty"`
	AddressID           *int64            `json:"address_id,omitempty"`
	SpecialRequests     string            `json:"special_requests,omitempty"`
	SchedulePreferences map[string]string `json:"schedule_preferences,omitempty"`
}

// Order is the server-authoritative draft order record.
type Order struct {
	ID               int64  `json:"id"`
	Status           string `json:"status"`
	HouseholdSize    int    `json:"household_size"`
	ServiceDate      string `json:"service_date,omitempty"`
	ServiceStartTime string `json:"service_start_time,omitempty"`
	DurationMinutes  int    `json:"duration_minutes,omitempty"`
	AddressID        *int64 `json:"address_id,omitempty"`
}

// UpdateOrder patches booking fields onto a draft order.
func (c *Client) UpdateOrder(ctx context.Context, orderID int64, upd OrderUpdate) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/chef-services/orders/%d/update/", orderID)
	if err := c.do(ctx, http.MethodPatch, path, upd, &order); err != nil {
		return nil, fmt.Errorf("update order %d: %w", orderID, err)
	}
	return &order, nil
}

// CheckoutResult is the outcome of a checkout-session request. Server-side
// validation failures arrive in ValidationErrors and are not transport
// errors: the caller surfaces them per item.
type CheckoutResult struct {
	SessionID        string
	URL              string
	ValidationErrors map[string]string
}

type checkoutResponse struct {
	SessionID        string            `json:"session_id"`
	SessionURL       string            `json:"session_url"`
	URL              string            `json:"url"`
	ValidationErrors map[string]string `json:"validation_errors"`
}

// CreateCheckoutSession finalizes a draft order into an external payment
// session. A 4xx carrying validation_errors is decoded into the result
// rather than returned as an error.
func (c *Client) CreateCheckoutSession(ctx context.Context, orderID int64) (*CheckoutResult, error) {
	path := fmt.Sprintf("/chef-services/orders/%d/checkout", orderID)
	var decoded checkoutResponse
	err := c.do(ctx, http.MethodPost, path, struct{}{}, &decoded)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			var failed checkoutResponse
			if jsonErr := json.Unmarshal(apiErr.Body, &failed); jsonErr == nil && len(failed.ValidationErrors) > 0 {
				return &CheckoutResult{ValidationErrors: failed.ValidationErrors}, nil
			}
		}
		return nil, fmt.Errorf("checkout order %d: %w", orderID, err)
	}
	if len(decoded.ValidationErrors) > 0 {
		return &CheckoutResult{ValidationErrors: decoded.ValidationErrors}, nil
	}
	url := decoded.SessionURL
	if url == "" {
		url = decoded.URL
	}
	return &CheckoutResult{SessionID: decoded.SessionID, URL: url}, nil
}
