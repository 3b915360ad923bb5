package httpserver

import (
	"fmt"

	"chefmarket-storefront/internal/domain"
	cartsvc "chefmarket-storefront/internal/service/cart"
)

// wireItem is the tagged-union JSON shape of a cart item on the storefront
// contract: a type discriminant plus the union of per-variant fields.
type wireItem struct {
	Type         string `json:"type"`
	ID           string `json:"id,omitempty"`
	PriceCents   int64  `json:"price_cents"`
	ChefUsername string `json:"chef_username,omitempty"`

	// service_tier
	OfferingTitle       string            `json:"offering_title,omitempty"`
	TierLabel           string            `json:"tier_label,omitempty"`
	OrderID             *int64            `json:"order_id,omitempty"`
	OrderStatus         string            `json:"order_status,omitempty"`
	HouseholdSize       interface{}       `json:"household_size,omitempty"`
	AddressID           *int64            `json:"address_id,omitempty"`
	RequiresDateTime    bool              `json:"requires_date_time,omitempty"`
	ServiceDate         string            `json:"service_date,omitempty"`
	ServiceStartTime    string            `json:"service_start_time,omitempty"`
	DurationMinutes     int               `json:"duration_minutes,omitempty"`
	SpecialRequests     string            `json:"special_requests,omitempty"`
	TierRecurring       bool              `json:"tier_recurring,omitempty"`
	ScheduleNotes       string            `json:"schedule_notes,omitempty"`
	SchedulePreferences map[string]string `json:"schedule_preferences,omitempty"`

	// meal_event
	MealName  string `json:"meal_name,omitempty"`
	EventDate string `json:"event_date,omitempty"`
	EventTime string `json:"event_time,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`

	// quote_request
	Description string `json:"description,omitempty"`
}

func itemFromWire(w wireItem) (domain.CartItem, error) {
	switch domain.ItemKind(w.Type) {
	case domain.KindServiceTier:
		return domain.ServiceTierItem{
			ID:                  w.ID,
			OfferingTitle:       w.OfferingTitle,
			TierLabel:           w.TierLabel,
			Price:               w.PriceCents,
			OrderID:             w.OrderID,
			OrderStatus:         w.OrderStatus,
			HouseholdSize:       domain.NormalizeInteger(w.HouseholdSize, 1),
			AddressID:           w.AddressID,
			RequiresDateTime:    w.RequiresDateTime,
			ServiceDate:         w.ServiceDate,
			ServiceStartTime:    w.ServiceStartTime,
			DurationMinutes:     w.DurationMinutes,
			SpecialRequests:     w.SpecialRequests,
			TierRecurring:       w.TierRecurring,
			ScheduleNotes:       w.ScheduleNotes,
			SchedulePreferences: w.SchedulePreferences,
		}, nil
	case domain.KindMealEvent:
		return domain.MealEventItem{
			ID:        w.ID,
			MealName:  w.MealName,
			EventDate: w.EventDate,
			EventTime: w.EventTime,
			Price:     w.PriceCents,
			Qty:       w.Quantity,
		}, nil
	case domain.KindQuoteRequest:
		return domain.QuoteRequestItem{
			ID:          w.ID,
			Description: w.Description,
			Price:       w.PriceCents,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported item type %q", w.Type)
	}
}

func toWireItem(item domain.CartItem) wireItem {
	switch it := item.(type) {
	case domain.ServiceTierItem:
		return wireItem{
			Type:                string(domain.KindServiceTier),
			ID:                  it.ID,
			PriceCents:          it.Price,
			OfferingTitle:       it.OfferingTitle,
			TierLabel:           it.TierLabel,
			OrderID:             it.OrderID,
			OrderStatus:         it.OrderStatus,
			HouseholdSize:       it.HouseholdSize,
			AddressID:           it.AddressID,
			RequiresDateTime:    it.RequiresDateTime,
			ServiceDate:         it.ServiceDate,
			ServiceStartTime:    it.ServiceStartTime,
			DurationMinutes:     it.DurationMinutes,
			SpecialRequests:     it.SpecialRequests,
			TierRecurring:       it.TierRecurring,
			ScheduleNotes:       it.ScheduleNotes,
			SchedulePreferences: it.SchedulePreferences,
		}
	case domain.MealEventItem:
		return wireItem{
			Type:       string(domain.KindMealEvent),
			ID:         it.ID,
			PriceCents: it.Price,
			MealName:   it.MealName,
			EventDate:  it.EventDate,
			EventTime:  it.EventTime,
			Quantity:   it.ItemQuantity(),
		}
	case domain.QuoteRequestItem:
		return wireItem{
			Type:        string(domain.KindQuoteRequest),
			ID:          it.ID,
			PriceCents:  it.Price,
			Description: it.Description,
		}
	default:
		return wireItem{Type: string(item.Kind()), ID: item.ItemID(), PriceCents: item.PriceCents()}
	}
}

type wireCart struct {
	ChefUsername string     `json:"chef_username,omitempty"`
	Items        []wireItem `json:"items"`
	TotalCents   int64      `json:"total_cents"`
}

func toWireCart(c domain.Cart) wireCart {
	items := make([]wireItem, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, toWireItem(it))
	}
	return wireCart{
		ChefUsername: c.ChefUsername,
		Items:        items,
		TotalCents:   c.TotalCents(),
	}
}

// wireItemUpdate is the partial-update body: nil means "leave untouched".
type wireItemUpdate struct {
	OrderID             *int64            `json:"order_id"`
	OrderStatus         *string           `json:"order_status"`
	HouseholdSize       interface{}       `json:"household_size"`
	AddressID           *int64            `json:"address_id"`
	ServiceDate         *string           `json:"service_date"`
	ServiceStartTime    *string           `json:"service_start_time"`
	DurationMinutes     *int              `json:"duration_minutes"`
	SpecialRequests     *string           `json:"special_requests"`
	ScheduleNotes       *string           `json:"schedule_notes"`
	SchedulePreferences map[string]string `json:"schedule_preferences"`
	EventDate           *string           `json:"event_date"`
	EventTime           *string           `json:"event_time"`
	Quantity            *int              `json:"quantity"`
	Description         *string           `json:"description"`
}

// updateFromWire builds every variant the body could apply to; UpdateItem
// picks the one matching the item's kind.
func updateFromWire(w wireItemUpdate) cartsvc.ItemUpdate {
	upd := cartsvc.ItemUpdate{}

	hasTierFields := w.OrderID != nil || w.OrderStatus != nil || w.HouseholdSize != nil ||
		w.AddressID != nil || w.ServiceDate != nil || w.ServiceStartTime != nil ||
		w.DurationMinutes != nil || w.SpecialRequests != nil || w.ScheduleNotes != nil ||
		len(w.SchedulePreferences) > 0
	if hasTierFields {
		tier := &cartsvc.ServiceTierUpdate{
			OrderID:             w.OrderID,
			OrderStatus:         w.OrderStatus,
			AddressID:           w.AddressID,
			ServiceDate:         w.ServiceDate,
			ServiceStartTime:    w.ServiceStartTime,
			DurationMinutes:     w.DurationMinutes,
			SpecialRequests:     w.SpecialRequests,
			ScheduleNotes:       w.ScheduleNotes,
			SchedulePreferences: w.SchedulePreferences,
		}
		if w.HouseholdSize != nil {
			size := domain.NormalizeInteger(w.HouseholdSize, 1)
			tier.HouseholdSize = &size
		}
		upd.ServiceTier = tier
	}

	if w.EventDate != nil || w.EventTime != nil || w.Quantity != nil {
		upd.MealEvent = &cartsvc.MealEventUpdate{
			EventDate: w.EventDate,
			EventTime: w.EventTime,
			Qty:       w.Quantity,
		}
	}

	if w.Description != nil {
		upd.QuoteRequest = &cartsvc.QuoteRequestUpdate{Description: w.Description}
	}

	return upd
}
