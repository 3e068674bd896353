package models

import "testing"

func TestOrderTotal(t *testing.T) {
	t.Run("sums item totals", func(t *testing.T) {
		items := []OrderItem{
			{FabricType: "Cotton", Quantity: 100, UnitPrice: 50, TotalPrice: 5000},
			{FabricType: "Silk", Quantity: 20, UnitPrice: 300, TotalPrice: 6000},
		}
		if got := OrderTotal(items); got != 11000 {
			t.Errorf("OrderTotal = %v, want 11000", got)
		}
	})

	t.Run("empty order totals zero", func(t *testing.T) {
		if got := OrderTotal(nil); got != 0 {
			t.Errorf("OrderTotal(nil) = %v, want 0", got)
		}
	})
}

func TestCreateOrderRequestValidate(t *testing.T) {
	t.Run("order with items passes", func(t *testing.T) {
		req := CreateOrderRequest{
			Items: []OrderItem{{FabricType: "Cotton", Quantity: 10, UnitPrice: 5}},
		}
		if errs := req.Validate(); len(errs) != 0 {
			t.Errorf("Validate() = %v, want no errors", errs)
		}
	})

	t.Run("order without items is rejected", func(t *testing.T) {
		req := CreateOrderRequest{}
		if errs := req.Validate(); errs["items"] == "" {
			t.Error("expected items error")
		}
	})
}

func TestOrderStatusCatalog(t *testing.T) {
	// The pipeline statuses the production floor depends on.
	for _, status := range []string{
		"Order Received", "In Production", "Quality Check",
		"Ready for Dispatch", "Delivered", "Cancelled",
	} {
		if !ValidOrderStatuses[status] {
			t.Errorf("status %q should be valid", status)
		}
	}
	if ValidOrderStatuses["Shipped"] {
		t.Error("unknown status accepted")
	}
}
