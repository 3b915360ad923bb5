package domain

import "testing"

func int64Ptr(v int64) *int64 { return &v }

func TestCartTotalCents(t *testing.T) {
	items := []CartItem{
		ServiceTierItem{ID: "a", Price: 15000, OrderID: int64Ptr(1)},
		MealEventItem{ID: "b", Price: 2500, Qty: 3},
		QuoteRequestItem{ID: "c", Description: "tasting menu"},
	}
	cart := Cart{Items: items}
	want := int64(15000 + 2500*3)
	if got := cart.TotalCents(); got != want {
		t.Fatalf("expected total %d, got %d", want, got)
	}

	// Order-independent.
	reversed := Cart{Items: []CartItem{items[2], items[1], items[0]}}
	if got := reversed.TotalCents(); got != want {
		t.Fatalf("expected reversed total %d, got %d", want, got)
	}
}

func TestCartTotalQuantityDefaults(t *testing.T) {
	cart := Cart{Items: []CartItem{
		MealEventItem{ID: "a", Price: 1200},         // quantity unset
		MealEventItem{ID: "b", Price: 1200, Qty: 0}, // explicit zero
	}}
	if got := cart.TotalCents(); got != 2400 {
		t.Fatalf("expected unset quantities to count as 1, got total %d", got)
	}
}

func TestNormalizeInteger(t *testing.T) {
	cases := []struct {
		name     string
		raw      interface{}
		fallback int
		want     int
	}{
		{"positive int", 4, 1, 4},
		{"zero", 0, 1, 1},
		{"negative", -2, 3, 3},
		{"float", float64(6), 1, 6},
		{"numeric string", " 5 ", 1, 5},
		{"non-numeric string", "household", 2, 2},
		{"nil", nil, 1, 1},
		{"bool", true, 7, 7},
		{"negative string", "-4", 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeInteger(tc.raw, tc.fallback)
			if got != tc.want {
				t.Fatalf("NormalizeInteger(%v, %d) = %d, want %d", tc.raw, tc.fallback, got, tc.want)
			}
			if got <= 0 {
				t.Fatalf("normalized value must be positive, got %d", got)
			}
		})
	}
}
