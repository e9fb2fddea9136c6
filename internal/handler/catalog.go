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

// CatalogHandler serves the three admin-maintained catalogs: aliya types,
// aliya type categories, and prayer event types.
type CatalogHandler struct {
	types      *store.AliyaTypeStore
	categories *store.AliyaTypeCategoryStore
	eventTypes *store.EventTypeStore
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewCatalogHandler(ts *store.AliyaTypeStore, cs *store.AliyaTypeCategoryStore, es *store.EventTypeStore, hub *ws.Hub, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{types: ts, categories: cs, eventTypes: es, hub: hub, logger: logger}
}

func (h *CatalogHandler) CreateAliyaType(w http.ResponseWriter, r *http.Request) {
	var t model.AliyaType
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	t.DisplayName = strings.TrimSpace(t.DisplayName)
	if t.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "display_name is required")
		return
	}
	if t.Weight == 0 {
		t.Weight = 1
	}

	created, err := h.types.Create(t)
	if err != nil {
		h.logger.Error("create aliya type", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create aliya type")
		return
	}
	h.hub.Broadcast(ws.NewMessage("aliya_type", "created", created.ID, nil))
	writeJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) ListAliyaTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.types.List()
	if err != nil {
		h.logger.Error("list aliya types", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list aliya types")
		return
	}
	if types == nil {
		types = []model.AliyaType{}
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *CatalogHandler) UpdateAliyaType(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.types.GetByID(id)
	if err != nil {
		h.logger.Error("get aliya type", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get aliya type")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "aliya type not found")
		return
	}

	var t model.AliyaType
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	t.ID = id

	updated, err := h.types.Update(t)
	if err != nil {
		h.logger.Error("update aliya type", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update aliya type")
		return
	}
	h.hub.Broadcast(ws.NewMessage("aliya_type", "updated", id, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteAliyaType(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.types.Delete(id); err != nil {
		h.logger.Error("delete aliya type", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete aliya type")
		return
	}
	h.hub.Broadcast(ws.NewMessage("aliya_type", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c model.AliyaTypeCategory
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.categories.Create(c)
	if err != nil {
		h.logger.Error("create category", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	h.hub.Broadcast(ws.NewMessage("aliya_type_category", "created", created.ID, nil))
	writeJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List()
	if err != nil {
		h.logger.Error("list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if cats == nil {
		cats = []model.AliyaTypeCategory{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.categories.GetByID(id)
	if err != nil {
		h.logger.Error("get category", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get category")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	var c model.AliyaTypeCategory
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	c.ID = id

	updated, err := h.categories.Update(c)
	if err != nil {
		h.logger.Error("update category", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update category")
		return
	}
	h.hub.Broadcast(ws.NewMessage("aliya_type_category", "updated", id, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.categories.Delete(id); err != nil {
		h.logger.Error("delete category", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	h.hub.Broadcast(ws.NewMessage("aliya_type_category", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) CreateEventType(w http.ResponseWriter, r *http.Request) {
	var t model.PrayerEventType
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	t.DisplayName = strings.TrimSpace(t.DisplayName)
	if t.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "display_name is required")
		return
	}
	if t.RecurrenceType != "" && t.RecurrenceType != "none" && t.RecurrenceType != "yearly" {
		writeError(w, http.StatusBadRequest, "recurrence_type must be none or yearly")
		return
	}

	created, err := h.eventTypes.Create(t)
	if err != nil {
		h.logger.Error("create event type", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create event type")
		return
	}
	h.hub.Broadcast(ws.NewMessage("event_type", "created", created.ID, nil))
	writeJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) ListEventTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.eventTypes.List()
	if err != nil {
		h.logger.Error("list event types", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list event types")
		return
	}
	if types == nil {
		types = []model.PrayerEventType{}
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *CatalogHandler) UpdateEventType(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.eventTypes.GetByID(id)
	if err != nil {
		h.logger.Error("get event type", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get event type")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "event type not found")
		return
	}

	var t model.PrayerEventType
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	t.ID = id

	updated, err := h.eventTypes.Update(t)
	if err != nil {
		h.logger.Error("update event type", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update event type")
		return
	}
	h.hub.Broadcast(ws.NewMessage("event_type", "updated", id, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) DeleteEventType(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.eventTypes.Delete(id); err != nil {
		h.logger.Error("delete event type", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete event type")
		return
	}
	h.hub.Broadcast(ws.NewMessage("event_type", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
