package domain

// Address is an externally owned saved-address record; the gateway only
// caches the list and forwards creations.
type Address struct {
	ID         int64  `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}
