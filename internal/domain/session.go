package domain

import "time"

// CheckoutSession remembers a server-issued payment session so it can be
// reconciled after the redirect.
type CheckoutSession struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	OrderID   int64     `json:"orderId"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
