package cart

import (
	"errors"
	"sync"

	"github.com/gofrs/uuid"

	"chefmarket-storefront/internal/domain"
)

var ErrKindMismatch = errors.New("update does not match item kind")

// Service holds every live cart, keyed by session cart ID. Carts are
// process-lifetime state: nothing here touches the network or disk.
type Service struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func New() *Service {
	return &Service{carts: make(map[string]*domain.Cart)}
}

// Get returns a copy of the cart; a missing cart reads as empty.
func (s *Service) Get(cartID string) domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[cartID]
	if !ok {
		return domain.Cart{}
	}
	out := domain.Cart{ChefUsername: c.ChefUsername}
	out.Items = append(out.Items, c.Items...)
	return out
}

// AddItem appends an item (no dedup). The first add tags the cart with the
// chef; later adds for another chef keep the original tag.
func (s *Service) AddItem(cartID, chefUsername string, item domain.CartItem) (domain.CartItem, error) {
	item, err := withItemID(item)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartID]
	if !ok {
		c = &domain.Cart{}
		s.carts[cartID] = c
	}
	if c.ChefUsername == "" {
		c.ChefUsername = chefUsername
	}
	c.Items = append(c.Items, item)
	return item, nil
}

// ServiceTierUpdate carries the mutable booking fields of a service tier
// item; nil fields are left untouched.
type ServiceTierUpdate struct {
	OrderID             *int64
	OrderStatus         *string
	HouseholdSize       *int
	AddressID           *int64
	ServiceDate         *string
	ServiceStartTime    *string
	DurationMinutes     *int
	SpecialRequests     *string
	ScheduleNotes       *string
	SchedulePreferences map[string]string
}

type MealEventUpdate struct {
	EventDate *string
	EventTime *string
	Qty       *int
}

type QuoteRequestUpdate struct {
	Description *string
}

// ItemUpdate is a partial update for one cart item; exactly one variant
// field should be set and it must match the item's kind.
type ItemUpdate struct {
	ServiceTier  *ServiceTierUpdate
	MealEvent    *MealEventUpdate
	QuoteRequest *QuoteRequestUpdate
}

// UpdateItem shallow-merges upd into the item at index. An out-of-range
// index is a precondition failure, not a silent no-op.
func (s *Service) UpdateItem(cartID string, index int, upd ItemUpdate) (domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartID]
	if !ok || index < 0 || index >= len(c.Items) {
		return nil, domain.ErrNotFound
	}

	switch item := c.Items[index].(type) {
	case domain.ServiceTierItem:
		if upd.ServiceTier == nil {
			return nil, ErrKindMismatch
		}
		applyServiceTier(&item, upd.ServiceTier)
		c.Items[index] = item
		return item, nil
	case domain.MealEventItem:
		if upd.MealEvent == nil {
			return nil, ErrKindMismatch
		}
		applyMealEvent(&item, upd.MealEvent)
		c.Items[index] = item
		return item, nil
	case domain.QuoteRequestItem:
		if upd.QuoteRequest == nil {
			return nil, ErrKindMismatch
		}
		if upd.QuoteRequest.Description != nil {
			item.Description = *upd.QuoteRequest.Description
		}
		c.Items[index] = item
		return item, nil
	default:
		return nil, ErrKindMismatch
	}
}

// RemoveItem drops the item at index.
func (s *Service) RemoveItem(cartID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartID]
	if !ok || index < 0 || index >= len(c.Items) {
		return domain.ErrNotFound
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

// Clear empties the cart in bulk.
func (s *Service) Clear(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
}

// TotalCents sums price times quantity for the cart.
func (s *Service) TotalCents(cartID string) int64 {
	return s.Get(cartID).TotalCents()
}

func withItemID(item domain.CartItem) (domain.CartItem, error) {
	if item.ItemID() != "" {
		return item, nil
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	switch it := item.(type) {
	case domain.ServiceTierItem:
		it.ID = id.String()
		return it, nil
	case domain.MealEventItem:
		it.ID = id.String()
		return it, nil
	case domain.QuoteRequestItem:
		it.ID = id.String()
		return it, nil
	default:
		return item, nil
	}
}

func applyServiceTier(item *domain.ServiceTierItem, upd *ServiceTierUpdate) {
	if upd.OrderID != nil {
		item.OrderID = upd.OrderID
	}
	if upd.OrderStatus != nil {
		item.OrderStatus = *upd.OrderStatus
	}
	if upd.HouseholdSize != nil {
		item.HouseholdSize = *upd.HouseholdSize
	}
	if upd.AddressID != nil {
		item.AddressID = upd.AddressID
	}
	if upd.ServiceDate != nil {
		item.ServiceDate = *upd.ServiceDate
	}
	if upd.ServiceStartTime != nil {
		item.ServiceStartTime = *upd.ServiceStartTime
	}
	if upd.DurationMinutes != nil {
		item.DurationMinutes = *upd.DurationMinutes
	}
	if upd.SpecialRequests != nil {
		item.SpecialRequests = *upd.SpecialRequests
	}
	if upd.ScheduleNotes != nil {
		item.ScheduleNotes = *upd.ScheduleNotes
	}
	if len(upd.SchedulePreferences) > 0 {
		// Merge into a fresh map: snapshots handed out by Get alias the
		// stored map, so it must never be written in place.
		merged := make(map[string]string, len(item.SchedulePreferences)+len(upd.SchedulePreferences))
		for k, v := range item.SchedulePreferences {
			merged[k] = v
		}
		for k, v := range upd.SchedulePreferences {
			merged[k] = v
		}
		item.SchedulePreferences = merged
	}
}

func applyMealEvent(item *domain.MealEventItem, upd *MealEventUpdate) {
	if upd.EventDate != nil {
		item.EventDate = *upd.EventDate
	}
	if upd.EventTime != nil {
		item.EventTime = *upd.EventTime
	}
	if upd.Qty != nil {
		item.Qty = *upd.Qty
	}
}
