package checkout

import (
	"context"
	"fmt"
	"log"

	"chefmarket-storefront/internal/backend"
	"chefmarket-storefront/internal/domain"
	cartsvc "chefmarket-storefront/internal/service/cart"
)

// CommitStrategy turns validated items into committed remote orders. The
// sequential strategy mirrors the backend's draft-order expectations; a
// compensating or all-or-nothing strategy can replace it without touching
// callers.
type CommitStrategy interface {
	Commit(ctx context.Context, cartID string, items []indexedItem) (*commitOutcome, error)
}

type commitOutcome struct {
	RedirectURL string
	ItemErrors  ItemErrors
	Committed   []int64
}

type sequentialCommit struct {
	orders   OrderClient
	sessions SessionRecorder
	carts    CartStore
	logger   *log.Logger
}

// Commit walks items in cart order, strictly sequentially: update the draft
// order, then open its checkout session. The first failure stops the walk;
// earlier items stay committed.
func (c *sequentialCommit) Commit(ctx context.Context, cartID string, items []indexedItem) (*commitOutcome, error) {
	out := &commitOutcome{ItemErrors: ItemErrors{}}

	for _, ii := range items {
		orderID := *ii.item.OrderID

		order, err := c.orders.UpdateOrder(ctx, orderID, orderUpdateFrom(ii.item))
		if err != nil {
			return out, fmt.Errorf("item %d: %w", ii.index, err)
		}
		c.mergeEcho(cartID, ii.index, order)

		res, err := c.orders.CreateCheckoutSession(ctx, orderID)
		if err != nil {
			return out, fmt.Errorf("item %d: %w", ii.index, err)
		}
		if len(res.ValidationErrors) > 0 {
			out.ItemErrors[ii.index] = FieldErrors(res.ValidationErrors)
			return out, nil
		}

		if res.SessionID != "" {
			record := domain.CheckoutSession{
				SessionID: res.SessionID,
				OrderID:   orderID,
				URL:       res.URL,
			}
			if err := c.sessions.Record(ctx, record); err != nil {
				// The payment session exists either way; losing the local
				// record must not block the redirect.
				c.logger.Printf("record checkout session %s: %v", res.SessionID, err)
			}
		}
		if res.URL != "" {
			out.RedirectURL = res.URL
		}
		out.Committed = append(out.Committed, orderID)
	}

	return out, nil
}

// mergeEcho writes the server-normalized order fields back into the cart;
// the server is authoritative.
func (c *sequentialCommit) mergeEcho(cartID string, index int, order *backend.Order) {
	upd := cartsvc.ServiceTierUpdate{
		OrderStatus:   &order.Status,
		HouseholdSize: &order.HouseholdSize,
	}
	if order.ServiceDate != "" {
		upd.ServiceDate = &order.ServiceDate
	}
	if order.ServiceStartTime != "" {
		upd.ServiceStartTime = &order.ServiceStartTime
	}
	if order.DurationMinutes > 0 {
		upd.DurationMinutes = &order.DurationMinutes
	}
	if order.AddressID != nil {
		upd.AddressID = order.AddressID
	}
	if _, err := c.carts.UpdateItem(cartID, index, cartsvc.ItemUpdate{ServiceTier: &upd}); err != nil {
		c.logger.Printf("merge order %d echo into cart %s item %d: %v", order.ID, cartID, index, err)
	}
}

func orderUpdateFrom(item domain.ServiceTierItem) backend.OrderUpdate {
	upd := backend.OrderUpdate{
		HouseholdSize:    domain.NormalizeInteger(item.HouseholdSize, 1),
		ServiceDate:      item.ServiceDate,
		ServiceStartTime: item.ServiceStartTime,
		DurationMinutes:  item.DurationMinutes,
		AddressID:        item.AddressID,
		SpecialRequests:  item.SpecialRequests,
	}
	// Schedule notes travel inside the preferences map.
	if len(item.SchedulePreferences) > 0 || item.ScheduleNotes != "" {
		prefs := make(map[string]string, len(item.SchedulePreferences)+1)
		for k, v := range item.SchedulePreferences {
			prefs[k] = v
		}
		if item.ScheduleNotes != "" {
			prefs["notes"] = item.ScheduleNotes
		}
		upd.SchedulePreferences = prefs
	}
	return upd
}
