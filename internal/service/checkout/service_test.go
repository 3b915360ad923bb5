package checkout

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chefmarket-storefront/internal/backend"
	"chefmarket-storefront/internal/domain"
	cartsvc "chefmarket-storefront/internal/service/cart"
)

type stubOrders struct {
	updateCalls   int
	checkoutCalls int
	lastUpdate    backend.OrderUpdate
	updateErr     error
	orders        map[int64]*backend.Order
	results       map[int64]*backend.CheckoutResult
	checkoutErr   error
}

func (s *stubOrders) UpdateOrder(_ context.Context, orderID int64, upd backend.OrderUpdate) (*backend.Order, error) {
	s.updateCalls++
	s.lastUpdate = upd
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if order, ok := s.orders[orderID]; ok {
		return order, nil
	}
	return &backend.Order{ID: orderID, Status: "draft", HouseholdSize: upd.HouseholdSize}, nil
}

func (s *stubOrders) CreateCheckoutSession(_ context.Context, orderID int64) (*backend.CheckoutResult, error) {
	s.checkoutCalls++
	if s.checkoutErr != nil {
		return nil, s.checkoutErr
	}
	if res, ok := s.results[orderID]; ok {
		return res, nil
	}
	return &backend.CheckoutResult{}, nil
}

type stubRecorder struct {
	records []domain.CheckoutSession
	err     error
}

func (s *stubRecorder) Record(_ context.Context, rec domain.CheckoutSession) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, rec)
	return nil
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "[test] ", log.LstdFlags)
}

func int64Ptr(v int64) *int64 { return &v }

func validTierItem(orderID int64) domain.ServiceTierItem {
	return domain.ServiceTierItem{
		OfferingTitle: "Weekly Dinners",
		TierLabel:     "Family",
		Price:         15000,
		OrderID:       int64Ptr(orderID),
		HouseholdSize: 4,
		AddressID:     int64Ptr(9),
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	carts := cartsvc.New()
	svc := New(carts, &stubOrders{}, &stubRecorder{}, testLogger())

	_, err := svc.Checkout(context.Background(), "cart1")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutUnsupportedKinds(t *testing.T) {
	carts := cartsvc.New()
	_, err := carts.AddItem("cart1", "chef_anna", domain.MealEventItem{MealName: "Paella Night", Price: 3000, Qty: 2})
	require.NoError(t, err)

	orders := &stubOrders{}
	svc := New(carts, orders, &stubRecorder{}, testLogger())

	_, err = svc.Checkout(context.Background(), "cart1")
	require.ErrorIs(t, err, ErrUnsupportedItems)
	assert.Zero(t, orders.updateCalls)
	assert.Zero(t, orders.checkoutCalls)
}

func TestCheckoutMissingAddressBlocksAllNetworkCalls(t *testing.T) {
	carts := cartsvc.New()
	item := validTierItem(41)
	item.AddressID = nil
	_, err := carts.AddItem("cart1", "chef_anna", item)
	require.NoError(t, err)

	orders := &stubOrders{}
	svc := New(carts, orders, &stubRecorder{}, testLogger())

	result, err := svc.Checkout(context.Background(), "cart1")
	require.NoError(t, err)
	require.Contains(t, result.ItemErrors, 0)
	assert.Equal(t, "required", result.ItemErrors[0]["address_id"])
	assert.Zero(t, orders.updateCalls, "local validation failure must not reach the backend")
	assert.Zero(t, orders.checkoutCalls)
	assert.Empty(t, result.RedirectURL)
}

func TestCheckoutAllOrNothingGate(t *testing.T) {
	carts := cartsvc.New()
	_, err := carts.AddItem("cart1", "chef_anna", validTierItem(41))
	require.NoError(t, err)
	broken := validTierItem(42)
	broken.RequiresDateTime = true
	_, err = carts.AddItem("cart1", "chef_anna", broken)
	require.NoError(t, err)

	orders := &stubOrders{}
	svc := New(carts, orders, &stubRecorder{}, testLogger())

	result, err := svc.Checkout(context.Background(), "cart1")
	require.NoError(t, err)
	assert.NotContains(t, result.ItemErrors, 0, "valid item must not be flagged")
	require.Contains(t, result.ItemErrors, 1)
	assert.Equal(t, "required", result.ItemErrors[1]["service_date"])
	assert.Equal(t, "required", result.ItemErrors[1]["service_start_time"])
	assert.Zero(t, orders.updateCalls, "one invalid item must block the whole checkout")
}

func TestCheckoutValidationRules(t *testing.T) {
	missingOrder := validTierItem(41)
	missingOrder.OrderID = nil

	recurring := validTierItem(41)
	recurring.TierRecurring = true

	fields := validateServiceTier(missingOrder)
	assert.Contains(t, fields, "order_id")

	fields = validateServiceTier(recurring)
	assert.Equal(t, "required", fields["schedule_notes"])

	recurring.ScheduleNotes = "Mondays and Thursdays, evenings"
	assert.Empty(t, validateServiceTier(recurring))
}

func TestCheckoutHappyPath(t *testing.T) {
	carts := cartsvc.New()
	item := validTierItem(41)
	item.HouseholdSize = 0 // must normalize to the fallback, never stay non-positive
	item.ScheduleNotes = "weeknights"
	_, err := carts.AddItem("cart1", "chef_anna", item)
	require.NoError(t, err)

	orders := &stubOrders{
		orders: map[int64]*backend.Order{
			41: {ID: 41, Status: "pending_payment", HouseholdSize: 1},
		},
		results: map[int64]*backend.CheckoutResult{
			41: {SessionID: "sess_123", URL: "https://pay.example/sess_123"},
		},
	}
	recorder := &stubRecorder{}
	svc := New(carts, orders, recorder, testLogger())

	result, err := svc.Checkout(context.Background(), "cart1")
	require.NoError(t, err)
	assert.Empty(t, result.ItemErrors)
	assert.Equal(t, "https://pay.example/sess_123", result.RedirectURL)
	assert.Equal(t, []int64{41}, result.Committed)

	assert.Equal(t, 1, orders.lastUpdate.HouseholdSize, "household size must normalize to fallback")
	assert.Equal(t, "weeknights", orders.lastUpdate.SchedulePreferences["notes"])

	require.Len(t, recorder.records, 1)
	assert.Equal(t, "sess_123", recorder.records[0].SessionID)
	assert.Equal(t, int64(41), recorder.records[0].OrderID)

	assert.Empty(t, carts.Get("cart1").Items, "cart must be cleared after success")
}

func TestCheckoutServerValidationErrors(t *testing.T) {
	carts := cartsvc.New()
	_, err := carts.AddItem("cart1", "chef_anna", validTierItem(41))
	require.NoError(t, err)

	orders := &stubOrders{
		results: map[int64]*backend.CheckoutResult{
			41: {ValidationErrors: map[string]string{"service_date": "required"}},
		},
	}
	svc := New(carts, orders, &stubRecorder{}, testLogger())

	result, err := svc.Checkout(context.Background(), "cart1")
	require.NoError(t, err)
	require.Contains(t, result.ItemErrors, 0)
	assert.Equal(t, "required", result.ItemErrors[0]["service_date"])
	assert.Empty(t, result.RedirectURL)
	assert.Len(t, carts.Get("cart1").Items, 1, "cart must not be cleared on server validation failure")
}

func TestCheckoutMergesEchoedFields(t *testing.T) {
	carts := cartsvc.New()
	_, err := carts.AddItem("cart1", "chef_anna", validTierItem(41))
	require.NoError(t, err)

	orders := &stubOrders{
		orders: map[int64]*backend.Order{
			41: {ID: 41, Status: "pending_payment", HouseholdSize: 6, ServiceDate: "2026-09-01"},
		},
		results: map[int64]*backend.CheckoutResult{
			41: {ValidationErrors: map[string]string{"address_id": "address belongs to another account"}},
		},
	}
	svc := New(carts, orders, &stubRecorder{}, testLogger())

	_, err = svc.Checkout(context.Background(), "cart1")
	require.NoError(t, err)

	// Cart survives, with the server-normalized fields merged back in.
	kept := carts.Get("cart1").Items[0].(domain.ServiceTierItem)
	assert.Equal(t, "pending_payment", kept.OrderStatus)
	assert.Equal(t, 6, kept.HouseholdSize)
	assert.Equal(t, "2026-09-01", kept.ServiceDate)
}

func TestCheckoutPartialCommitStopsAtFailure(t *testing.T) {
	carts := cartsvc.New()
	_, err := carts.AddItem("cart1", "chef_anna", validTierItem(41))
	require.NoError(t, err)
	_, err = carts.AddItem("cart1", "chef_anna", validTierItem(42))
	require.NoError(t, err)

	orders := &stubOrders{
		results: map[int64]*backend.CheckoutResult{
			41: {SessionID: "sess_41", URL: "https://pay.example/sess_41"},
			42: {ValidationErrors: map[string]string{"service_date": "required"}},
		},
	}
	recorder := &stubRecorder{}
	svc := New(carts, orders, recorder, testLogger())

	result, err := svc.Checkout(context.Background(), "cart1")
	require.NoError(t, err)
	assert.Equal(t, []int64{41}, result.Committed, "earlier items stay committed")
	require.Contains(t, result.ItemErrors, 1)
	assert.NotContains(t, result.ItemErrors, 0)
	require.Len(t, recorder.records, 1)
	assert.Len(t, carts.Get("cart1").Items, 2, "cart is kept when any item fails")
}

func TestCheckoutTransportErrorSurfaces(t *testing.T) {
	carts := cartsvc.New()
	_, err := carts.AddItem("cart1", "chef_anna", validTierItem(41))
	require.NoError(t, err)

	boom := errors.New("connection refused")
	orders := &stubOrders{updateErr: boom}
	svc := New(carts, orders, &stubRecorder{}, testLogger())

	_, err = svc.Checkout(context.Background(), "cart1")
	require.ErrorIs(t, err, boom)
	assert.Len(t, carts.Get("cart1").Items, 1)
}

func TestCheckoutRecorderFailureDoesNotBlockRedirect(t *testing.T) {
	carts := cartsvc.New()
	_, err := carts.AddItem("cart1", "chef_anna", validTierItem(41))
	require.NoError(t, err)

	orders := &stubOrders{
		results: map[int64]*backend.CheckoutResult{
			41: {SessionID: "sess_41", URL: "https://pay.example/sess_41"},
		},
	}
	svc := New(carts, orders, &stubRecorder{err: errors.New("db down")}, testLogger())

	result, err := svc.Checkout(context.Background(), "cart1")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/sess_41", result.RedirectURL)
}
