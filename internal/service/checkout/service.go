package checkout

import (
	"context"
	"errors"
	"log"
	"strings"

	"chefmarket-storefront/internal/backend"
	"chefmarket-storefront/internal/domain"
	cartsvc "chefmarket-storefront/internal/service/cart"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnsupportedItems marks the meal-event and quote-request checkout
	// branches, which are not wired to payment yet.
	ErrUnsupportedItems = errors.New("checkout for meal events and quote requests is coming soon")
)

// FieldErrors maps a field name to a human-readable message.
type FieldErrors map[string]string

// ItemErrors collects field errors per cart-item index. Client-side and
// server-side validation failures land in the same structure so the
// storefront renders both identically.
type ItemErrors map[int]FieldErrors

// OrderClient is the slice of the backend client the orchestrator needs.
type OrderClient interface {
	UpdateOrder(ctx context.Context, orderID int64, upd backend.OrderUpdate) (*backend.Order, error)
	CreateCheckoutSession(ctx context.Context, orderID int64) (*backend.CheckoutResult, error)
}

// CartStore is the slice of the cart service the orchestrator needs.
type CartStore interface {
	Get(cartID string) domain.Cart
	UpdateItem(cartID string, index int, upd cartsvc.ItemUpdate) (domain.CartItem, error)
	Clear(cartID string)
}

// SessionRecorder remembers checkout session IDs for later reconciliation.
type SessionRecorder interface {
	Record(ctx context.Context, s domain.CheckoutSession) error
}

// Result is what the storefront needs to render: either a redirect target,
// or errors keyed the way the cart sidebar displays them.
type Result struct {
	RedirectURL string
	ItemErrors  ItemErrors
	// Committed lists draft orders already finalized server-side when a
	// later item failed. There is no compensating rollback; drafts are
	// retry-safe.
	Committed []int64
}

// Service converts cart state into committed remote orders.
type Service struct {
	carts    CartStore
	strategy CommitStrategy
	logger   *log.Logger
}

func New(carts CartStore, orders OrderClient, sessions SessionRecorder, logger *log.Logger) *Service {
	return &Service{
		carts: carts,
		strategy: &sequentialCommit{
			orders:   orders,
			sessions: sessions,
			carts:    carts,
			logger:   logger,
		},
		logger: logger,
	}
}

type indexedItem struct {
	index int
	item  domain.ServiceTierItem
}

// Checkout validates every service-tier item locally, and only if all pass
// does it start committing. A non-nil error is a transport-level failure;
// validation failures come back inside Result.ItemErrors.
func (s *Service) Checkout(ctx context.Context, cartID string) (*Result, error) {
	cart := s.carts.Get(cartID)
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var tiers []indexedItem
	for i, raw := range cart.Items {
		switch item := raw.(type) {
		case domain.ServiceTierItem:
			tiers = append(tiers, indexedItem{index: i, item: item})
		case domain.MealEventItem, domain.QuoteRequestItem:
			// Only one type group is processed per attempt.
		}
	}
	if len(tiers) == 0 {
		return nil, ErrUnsupportedItems
	}

	// All-or-nothing local gate: no network call is made while any item
	// fails validation.
	itemErrors := ItemErrors{}
	for _, ii := range tiers {
		if fields := validateServiceTier(ii.item); len(fields) > 0 {
			itemErrors[ii.index] = fields
		}
	}
	if len(itemErrors) > 0 {
		return &Result{ItemErrors: itemErrors}, nil
	}

	outcome, err := s.strategy.Commit(ctx, cartID, tiers)
	if err != nil {
		if outcome != nil {
			return &Result{ItemErrors: outcome.ItemErrors, Committed: outcome.Committed}, err
		}
		return nil, err
	}
	if len(outcome.ItemErrors) > 0 {
		return &Result{ItemErrors: outcome.ItemErrors, Committed: outcome.Committed}, nil
	}

	s.carts.Clear(cartID)
	return &Result{RedirectURL: outcome.RedirectURL, Committed: outcome.Committed}, nil
}

func validateServiceTier(item domain.ServiceTierItem) FieldErrors {
	fields := FieldErrors{}
	if item.OrderID == nil {
		fields["order_id"] = "booking has no draft order"
	}
	if item.RequiresDateTime {
		if strings.TrimSpace(item.ServiceDate) == "" {
			fields["service_date"] = "required"
		}
		if strings.TrimSpace(item.ServiceStartTime) == "" {
			fields["service_start_time"] = "required"
		}
	}
	if item.TierRecurring && strings.TrimSpace(item.ScheduleNotes) == "" {
		fields["schedule_notes"] = "required"
	}
	if item.AddressID == nil {
		fields["address_id"] = "required"
	}
	return fields
}
