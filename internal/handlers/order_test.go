package handlers

import (
	"strings"
	"testing"

	"textile-backend/internal/models"
)

func TestNewOrderNumber(t *testing.T) {
	t.Run("has the expected shape", func(t *testing.T) {
		num := newOrderNumber()

		parts := strings.Split(num, "-")
		if len(parts) != 3 {
			t.Fatalf("order number %q has %d parts, want 3", num, len(parts))
		}
		if parts[0] != "ORD" {
			t.Errorf("prefix = %q, want ORD", parts[0])
		}
		if len(parts[2]) != 6 {
			t.Errorf("suffix %q has length %d, want 6", parts[2], len(parts[2]))
		}
		if parts[2] != strings.ToUpper(parts[2]) {
			t.Errorf("suffix %q is not uppercase", parts[2])
		}
	})

	t.Run("successive numbers differ", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			num := newOrderNumber()
			if seen[num] {
				t.Fatalf("duplicate order number %q", num)
			}
			seen[num] = true
		}
	})
}

func TestPriceItems(t *testing.T) {
	t.Run("missing total is computed from quantity and unit price", func(t *testing.T) {
		items := priceItems([]models.OrderItem{
			{FabricType: "Cotton", Quantity: 10, UnitPrice: 25},
		})
		if items[0].TotalPrice != 250 {
			t.Errorf("totalPrice = %v, want 250", items[0].TotalPrice)
		}
	})

	t.Run("supplied total is kept", func(t *testing.T) {
		items := priceItems([]models.OrderItem{
			{FabricType: "Silk", Quantity: 10, UnitPrice: 25, TotalPrice: 230},
		})
		if items[0].TotalPrice != 230 {
			t.Errorf("totalPrice = %v, want the supplied 230", items[0].TotalPrice)
		}
	})

	t.Run("order total sums the item totals", func(t *testing.T) {
		items := priceItems([]models.OrderItem{
			{FabricType: "Silk", Quantity: 2, UnitPrice: 100, TotalPrice: 180},
			{FabricType: "Cotton", Quantity: 3, UnitPrice: 50},
		})
		if got := models.OrderTotal(items); got != 330 {
			t.Errorf("OrderTotal = %v, want 330", got)
		}
	})
}
