package models

// FabricTypes is the catalog of fabrics offered for client orders.
var FabricTypes = []string{
	"Cotton", "Silk", "Linen", "Wool", "Polyester", "Blend", "Rayon",
	"Denim", "Tencel", "Modal", "Lycra", "Flannel", "Voile", "Oxford",
	"Chambray",
}

// ValidOrderStatuses tracks an order through the production pipeline.
var ValidOrderStatuses = map[string]bool{
	"Order Received":     true,
	"In Production":      true,
	"Quality Check":      true,
	"Ready for Dispatch": true,
	"Delivered":          true,
	"Cancelled":          true,
}

// OrderItem is one fabric line on a client order. Items are stored
// embedded in the order document (a JSONB column).
type OrderItem struct {
	FabricType     string  `json:"fabricType"`
	Quantity       float64 `json:"quantity"`
	Color          string  `json:"color"`
	Specifications string  `json:"specifications,omitempty"`
	UnitPrice      float64 `json:"unitPrice"`
	TotalPrice     float64 `json:"totalPrice"`
}

// ClientOrder is an order placed by (or on behalf of) a client.
type ClientOrder struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	ClientID        string      `json:"clientId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	AdvanceAmount   float64     `json:"advanceAmount"`
	Status          string      `json:"status"`
	Priority        string      `json:"priority"`
	OrderDate       string      `json:"orderDate"`
	Deadline        *string     `json:"deadline"`
	DeliveryDate    *string     `json:"deliveryDate"`
	DeliveryAddress *string     `json:"deliveryAddress,omitempty"`
	Remarks         *string     `json:"remarks,omitempty"`
	InvoiceNumber   *string     `json:"invoiceNumber,omitempty"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}

// OrderWithClient expands the client reference for order listings.
type OrderWithClient struct {
	ClientOrder
	ClientUsername *string `json:"clientUsername"`
	ClientEmail    *string `json:"clientEmail"`
}

// OrderTotal sums the per-item totals; the stored totalAmount is derived
// from the items at creation time.
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.TotalPrice
	}
	return total
}

// CreateOrderRequest places a new order. Client callers order for
// themselves; admins must name the client explicitly.
type CreateOrderRequest struct {
	Client          string      `json:"client,omitempty"`
	Items           []OrderItem `json:"items"`
	Deadline        *string     `json:"deadline,omitempty"`
	DeliveryAddress *string     `json:"deliveryAddress,omitempty"`
	Priority        string      `json:"priority,omitempty"`
	Remarks         *string     `json:"remarks,omitempty"`
}

// Validate checks required fields for order creation.
func (r *CreateOrderRequest) Validate() map[string]string {
	errors := map[string]string{}
	if len(r.Items) == 0 {
		errors["items"] = "At least one order item is required"
	}
	return errors
}

// UpdateOrderRequest holds the fields that can be updated. Supplying
// items replaces the whole item list.
type UpdateOrderRequest struct {
	Status          *string      `json:"status,omitempty"`
	TotalAmount     *float64     `json:"totalAmount,omitempty"`
	AdvanceAmount   *float64     `json:"advanceAmount,omitempty"`
	Deadline        *string      `json:"deadline,omitempty"`
	DeliveryDate    *string      `json:"deliveryDate,omitempty"`
	DeliveryAddress *string      `json:"deliveryAddress,omitempty"`
	Remarks         *string      `json:"remarks,omitempty"`
	InvoiceNumber   *string      `json:"invoiceNumber,omitempty"`
	Priority        *string      `json:"priority,omitempty"`
	Items           *[]OrderItem `json:"items,omitempty"`
}
