package session

import (
	"context"

	"chefmarket-storefront/internal/domain"
)

// Repository is the checkout-session ledger: session IDs remembered at
// checkout time so payments can be reconciled after the redirect.
type Repository interface {
	Record(ctx context.Context, s domain.CheckoutSession) error
	ListRecent(ctx context.Context, limit int) ([]domain.CheckoutSession, error)
}
