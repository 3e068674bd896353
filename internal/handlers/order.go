package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"textile-backend/internal/ctxkeys"
	"textile-backend/internal/database"
	"textile-backend/internal/models"
)

// OrderHandler handles client order HTTP requests.
type OrderHandler struct {
	db database.Service
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(db database.Service) *OrderHandler {
	return &OrderHandler{db: db}
}

const orderCols = `o.id, o.order_number, o.client_id, o.items,
	o.total_amount, o.advance_amount, o.status, o.priority,
	o.order_date::text, o.deadline::text, o.delivery_date::text,
	o.delivery_address, o.remarks, o.invoice_number,
	o.created_at::text, o.updated_at::text`

const orderRetCols = `id, order_number, client_id, items,
	total_amount, advance_amount, status, priority,
	order_date::text, deadline::text, delivery_date::text,
	delivery_address, remarks, invoice_number,
	created_at::text, updated_at::text`

func scanOrder(scanner interface {
	Scan(dest ...interface{}) error
}, o *models.ClientOrder) error {
	return scanner.Scan(
		&o.ID, &o.OrderNumber, &o.ClientID, &o.Items,
		&o.TotalAmount, &o.AdvanceAmount, &o.Status, &o.Priority,
		&o.OrderDate, &o.Deadline, &o.DeliveryDate,
		&o.DeliveryAddress, &o.Remarks, &o.InvoiceNumber,
		&o.CreatedAt, &o.UpdatedAt,
	)
}

func scanOrderWithClient(scanner interface {
	Scan(dest ...interface{}) error
}, o *models.OrderWithClient) error {
	return scanner.Scan(
		&o.ID, &o.OrderNumber, &o.ClientID, &o.Items,
		&o.TotalAmount, &o.AdvanceAmount, &o.Status, &o.Priority,
		&o.OrderDate, &o.Deadline, &o.DeliveryDate,
		&o.DeliveryAddress, &o.Remarks, &o.InvoiceNumber,
		&o.CreatedAt, &o.UpdatedAt,
		&o.ClientUsername, &o.ClientEmail,
	)
}

const orderWithClientQuery = `
	SELECT ` + orderCols + `,
		u.username, u.email
	FROM client_orders o
	LEFT JOIN users u ON u.id = o.client_id`

// newOrderNumber builds a human-readable, collision-resistant order
// number from the current time and a random suffix.
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// priceItems fills in missing item totals. A total the caller supplied
// stands as-is; only items with no total get quantity times unit price.
func priceItems(src []models.OrderItem) []models.OrderItem {
	items := make([]models.OrderItem, len(src))
	for i, item := range src {
		if item.TotalPrice == 0 {
			item.TotalPrice = item.Quantity * item.UnitPrice
		}
		items[i] = item
	}
	return items
}

// Create handles POST /api/orders
// Clients always order for themselves; admins must name the client.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		JSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Validation failed",
			"details": errs,
		})
		return
	}

	clientID := req.Client
	if ctxkeys.CallerRole(r.Context()) == ctxkeys.RoleClient {
		clientID = ctxkeys.CallerID(r.Context())
	}
	if clientID == "" {
		JSONError(w, http.StatusBadRequest, "Client is required")
		return
	}

	items := priceItems(req.Items)

	priority := req.Priority
	if priority == "" {
		priority = "Medium"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	var order models.ClientOrder
	err := scanOrder(pool.QueryRow(ctx, `
		INSERT INTO client_orders (
			order_number, client_id, items, total_amount,
			priority, deadline, delivery_address, remarks
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+orderRetCols,
		newOrderNumber(), clientID, items, models.OrderTotal(items),
		priority, req.Deadline, req.DeliveryAddress, req.Remarks,
	), &order)
	if err != nil {
		if isDuplicateKeyError(err) {
			JSONError(w, http.StatusBadRequest, "Duplicate order number")
			return
		}
		log.Printf("Error creating order: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	JSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders
// Clients only see their own orders; admins can filter by client,
// status, and order date.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	b := &whereBuilder{}
	scopeClient(r.Context(), b, "o.client_id")
	if ctxkeys.CallerRole(r.Context()) != ctxkeys.RoleClient {
		if client := q.Get("client"); client != "" {
			b.Eq("o.client_id", client)
		}
	}
	if status := q.Get("status"); status != "" {
		b.Eq("o.status", status)
	}
	if err := applyDateFilters(b, "o.order_date", q); err != nil {
		JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := pool.Query(ctx,
		orderWithClientQuery+b.Clause()+" ORDER BY o.order_date DESC",
		b.Args()...)
	if err != nil {
		log.Printf("Error querying orders: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer rows.Close()

	orders := []models.OrderWithClient{}
	for rows.Next() {
		var o models.OrderWithClient
		if err := scanOrderWithClient(rows, &o); err != nil {
			log.Printf("Error scanning order: %v", err)
			continue
		}
		orders = append(orders, o)
	}

	JSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id}
// A client asking for someone else's order gets a 404, not a hint that
// the order exists.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	b := &whereBuilder{}
	b.Eq("o.id", id)
	scopeClient(r.Context(), b, "o.client_id")

	var order models.OrderWithClient
	err := scanOrderWithClient(pool.QueryRow(ctx,
		orderWithClientQuery+b.Clause(), b.Args()...), &order)
	if err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("Error fetching order %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	JSON(w, http.StatusOK, order)
}

// Update handles PUT /api/orders/{id}
// Supplying items replaces the whole item list and recomputes the total.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Status != nil && !models.ValidOrderStatuses[*req.Status] {
		JSONError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	addField := func(col string, val interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	if req.Items != nil {
		items := priceItems(*req.Items)
		addField("items", items)
		if req.TotalAmount == nil {
			addField("total_amount", models.OrderTotal(items))
		}
	}
	if req.TotalAmount != nil {
		addField("total_amount", *req.TotalAmount)
	}
	if req.AdvanceAmount != nil {
		addField("advance_amount", *req.AdvanceAmount)
	}
	if req.Status != nil {
		addField("status", *req.Status)
	}
	if req.Priority != nil {
		addField("priority", *req.Priority)
	}
	if req.Deadline != nil {
		addField("deadline", *req.Deadline)
	}
	if req.DeliveryDate != nil {
		addField("delivery_date", *req.DeliveryDate)
	}
	if req.DeliveryAddress != nil {
		addField("delivery_address", *req.DeliveryAddress)
	}
	if req.Remarks != nil {
		addField("remarks", *req.Remarks)
	}
	if req.InvoiceNumber != nil {
		addField("invoice_number", *req.InvoiceNumber)
	}

	if len(setClauses) == 0 {
		JSONError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE client_orders SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), argIdx, orderRetCols)
	args = append(args, id)

	var order models.ClientOrder
	if err := scanOrder(pool.QueryRow(ctx, query, args...), &order); err != nil {
		if isNotFoundError(err) {
			JSONError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("Error updating order %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	JSON(w, http.StatusOK, order)
}

// Delete handles DELETE /api/orders/{id}
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pool := h.db.GetPool()

	tag, err := pool.Exec(ctx, "DELETE FROM client_orders WHERE id = $1", id)
	if err != nil {
		log.Printf("Error deleting order %s: %v", id, err)
		JSONError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	if tag.RowsAffected() == 0 {
		JSONError(w, http.StatusNotFound, "Order not found")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": "Order deleted successfully",
	})
}

// FabricTypes handles GET /api/orders/fabric-types
func (h *OrderHandler) FabricTypes(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, models.FabricTypes)
}
