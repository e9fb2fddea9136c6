package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shulsoft/gabbai/internal/auth"
	"github.com/shulsoft/gabbai/internal/model"
	"github.com/shulsoft/gabbai/internal/store"
	"github.com/shulsoft/gabbai/internal/ws"
)

var productKinds = map[string]bool{
	model.KindTights:  true,
	model.KindLace:    true,
	model.KindShort:   true,
	model.KindThermal: true,
}

type ProductHandler struct {
	products  *store.ProductStore
	locations *store.PickupLocationStore
	hub       *ws.Hub
	logger    *slog.Logger
}

func NewProductHandler(ps *store.ProductStore, ls *store.PickupLocationStore, hub *ws.Hub, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: ps, locations: ls, hub: hub, logger: logger}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !productKinds[p.Kind] {
		writeError(w, http.StatusBadRequest, "invalid kind")
		return
	}

	created, err := h.products.Create(p)
	if err != nil {
		h.logger.Error("create product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	h.hub.Broadcast(ws.NewMessage("product", "created", created.ID, nil))
	writeJSON(w, http.StatusCreated, created)
}

// List shows the full catalog to staff and only active products to everyone
// else.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := !auth.IsGabbai(r.Context())
	products, err := h.products.List(activeOnly)
	if err != nil {
		h.logger.Error("list products", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.products.GetByID(id)
	if err != nil {
		h.logger.Error("get product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	p.ID = id
	if !productKinds[p.Kind] {
		writeError(w, http.StatusBadRequest, "invalid kind")
		return
	}

	updated, err := h.products.Update(p)
	if err != nil {
		h.logger.Error("update product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	h.hub.Broadcast(ws.NewMessage("product", "updated", id, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.products.Delete(id); err != nil {
		h.logger.Error("delete product", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	h.hub.Broadcast(ws.NewMessage("product", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var l model.PickupLocation
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.locations.Create(l)
	if err != nil {
		h.logger.Error("create pickup location", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create pickup location")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	activeOnly := !auth.IsGabbai(r.Context())
	locations, err := h.locations.List(activeOnly)
	if err != nil {
		h.logger.Error("list pickup locations", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list pickup locations")
		return
	}
	if locations == nil {
		locations = []model.PickupLocation{}
	}
	writeJSON(w, http.StatusOK, locations)
}

func (h *ProductHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.locations.GetByID(id)
	if err != nil {
		h.logger.Error("get pickup location", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get pickup location")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "pickup location not found")
		return
	}

	var l model.PickupLocation
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	l.ID = id

	updated, err := h.locations.Update(l)
	if err != nil {
		h.logger.Error("update pickup location", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update pickup location")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := h.locations.Delete(r.PathValue("id")); err != nil {
		h.logger.Error("delete pickup location", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete pickup location")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
