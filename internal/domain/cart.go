package domain

// ItemKind discriminates the closed set of cart item variants.
type ItemKind string

const (
	KindServiceTier  ItemKind = "service_tier"
	KindMealEvent    ItemKind = "meal_event"
	KindQuoteRequest ItemKind = "quote_request"
)

// CartItem is the sum type over everything a storefront cart can hold.
// Switches over Kind() are expected to be exhaustive.
type CartItem interface {
	ItemID() string
	Kind() ItemKind
	PriceCents() int64
	ItemQuantity() int
}

// ServiceTierItem books a priced tier under a chef's service offering. It
// references a remote draft order that stays mutable until checkout.
type ServiceTierItem struct {
	ID                  string            `json:"id"`
	OfferingTitle       string            `json:"offeringTitle"`
	TierLabel           string            `json:"tierLabel"`
	Price               int64             `json:"priceCents"`
	OrderID             *int64            `json:"orderId,omitempty"`
	OrderStatus         string            `json:"orderStatus,omitempty"`
	HouseholdSize       int               `json:"householdSize"`
	AddressID           *int64            `json:"addressId,omitempty"`
	RequiresDateTime    bool              `json:"requiresDateTime"`
	ServiceDate         string            `json:"serviceDate,omitempty"`
	ServiceStartTime    string            `json:"serviceStartTime,omitempty"`
	DurationMinutes     int               `json:"durationMinutes,omitempty"`
	SpecialRequests     string            `json:"specialRequests,omitempty"`
	TierRecurring       bool              `json:"tierRecurring"`
	ScheduleNotes       string            `json:"scheduleNotes,omitempty"`
	SchedulePreferences map[string]string `json:"schedulePreferences,omitempty"`
}

func (i ServiceTierItem) ItemID() string    { return i.ID }
func (i ServiceTierItem) Kind() ItemKind    { return KindServiceTier }
func (i ServiceTierItem) PriceCents() int64 { return i.Price }
func (i ServiceTierItem) ItemQuantity() int { return 1 }

// MealEventItem reserves seats at a scheduled meal event.
type MealEventItem struct {
	ID        string `json:"id"`
	MealName  string `json:"mealName"`
	EventDate string `json:"eventDate"`
	EventTime string `json:"eventTime"`
	Price     int64  `json:"priceCents"`
	Qty       int    `json:"quantity"`
}

func (i MealEventItem) ItemID() string    { return i.ID }
func (i MealEventItem) Kind() ItemKind    { return KindMealEvent }
func (i MealEventItem) PriceCents() int64 { return i.Price }

// ItemQuantity defaults to 1 when unset, matching cart-total math.
func (i MealEventItem) ItemQuantity() int {
	if i.Qty > 0 {
		return i.Qty
	}
	return 1
}

// QuoteRequestItem is an unpriced inquiry for custom chef pricing.
type QuoteRequestItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Price       int64  `json:"priceCents"`
}

func (i QuoteRequestItem) ItemID() string    { return i.ID }
func (i QuoteRequestItem) Kind() ItemKind    { return KindQuoteRequest }
func (i QuoteRequestItem) PriceCents() int64 { return i.Price }
func (i QuoteRequestItem) ItemQuantity() int { return 1 }

// Cart is an ordered sequence of items tagged with the chef they belong to.
// The single-chef tag is advisory: it is tracked, not enforced.
type Cart struct {
	ChefUsername string     `json:"chefUsername,omitempty"`
	Items        []CartItem `json:"items"`
}

// TotalCents sums price times quantity across all items. Pure; order of
// items does not matter.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.PriceCents() * int64(it.ItemQuantity())
	}
	return total
}
