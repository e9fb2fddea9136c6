package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shulsoft/gabbai/internal/model"
	"github.com/shulsoft/gabbai/internal/store"
	"github.com/shulsoft/gabbai/internal/ws"
)

var orderStatuses = map[string]bool{
	model.OrderStatusReceived:  true,
	model.OrderStatusPacked:    true,
	model.OrderStatusDelivered: true,
	model.OrderStatusPaid:      true,
}

type OrderHandler struct {
	orders   *store.OrderStore
	products *store.ProductStore
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewOrderHandler(os *store.OrderStore, ps *store.ProductStore, hub *ws.Hub, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: os, products: ps, hub: hub, logger: logger}
}

// Create accepts a storefront order. Unit prices and the total are taken
// from the product catalog, never from the client.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var o model.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	o.FirstName = strings.TrimSpace(o.FirstName)
	if o.FirstName == "" {
		writeError(w, http.StatusBadRequest, "first_name is required")
		return
	}
	if len(o.Items) == 0 {
		writeError(w, http.StatusBadRequest, "order must contain items")
		return
	}

	o.Status = model.OrderStatusReceived
	o.Discount = 0
	o.TotalCost = 0
	for i := range o.Items {
		item := &o.Items[i]
		if item.Amount <= 0 {
			writeError(w, http.StatusBadRequest, "item amount must be positive")
			return
		}
		p, err := h.products.GetByID(item.ProductID)
		if err != nil {
			h.logger.Error("get product", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load product")
			return
		}
		if p == nil || !p.Active {
			writeError(w, http.StatusBadRequest, "unknown product: "+item.ProductID)
			return
		}
		item.UnitPrice = p.Price
		o.TotalCost += p.Price * float64(item.Amount)
	}

	created, err := h.orders.Create(o)
	if err != nil {
		h.logger.Error("create order", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	for _, item := range created.Items {
		if err := h.products.AdjustStock(item.ProductID, -item.Amount); err != nil {
			h.logger.Error("adjust stock", "error", err, "product_id", item.ProductID)
		}
	}

	h.hub.Broadcast(ws.NewMessage("order", "created", created.ID, nil))
	writeJSON(w, http.StatusCreated, created)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get order", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !orderStatuses[status] {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if email := r.URL.Query().Get("email"); email != "" {
		orders, err := h.orders.ListByEmail(email)
		if err != nil {
			h.logger.Error("list orders by email", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list orders")
			return
		}
		if orders == nil {
			orders = []model.Order{}
		}
		writeJSON(w, http.StatusOK, orders)
		return
	}

	orders, err := h.orders.List(status)
	if err != nil {
		h.logger.Error("list orders", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !orderStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	existing, err := h.orders.GetByID(id)
	if err != nil {
		h.logger.Error("get order", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get order")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	updated, err := h.orders.UpdateStatus(id, req.Status)
	if err != nil {
		h.logger.Error("update order status", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update order")
		return
	}
	h.hub.Broadcast(ws.NewMessage("order", "updated", id, map[string]any{"status": req.Status}))
	writeJSON(w, http.StatusOK, updated)
}

func (h *OrderHandler) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Discount float64 `json:"discount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Discount < 0 {
		writeError(w, http.StatusBadRequest, "discount must not be negative")
		return
	}

	updated, err := h.orders.UpdateDiscount(id, req.Discount)
	if err != nil {
		h.logger.Error("update order discount", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update order")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	h.hub.Broadcast(ws.NewMessage("order", "updated", id, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.orders.Delete(id); err != nil {
		h.logger.Error("delete order", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete order")
		return
	}
	h.hub.Broadcast(ws.NewMessage("order", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
