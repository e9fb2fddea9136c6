package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shulsoft/gabbai/internal/aliya"
	"github.com/shulsoft/gabbai/internal/model"
	"github.com/shulsoft/gabbai/internal/store"
	"github.com/shulsoft/gabbai/internal/ws"
)

type AliyaGroupHandler struct {
	groups *store.AliyaGroupStore
	cards  *store.PrayerCardStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewAliyaGroupHandler(gs *store.AliyaGroupStore, cs *store.PrayerCardStore, hub *ws.Hub, logger *slog.Logger) *AliyaGroupHandler {
	return &AliyaGroupHandler{groups: gs, cards: cs, hub: hub, logger: logger}
}

func (h *AliyaGroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var g model.AliyaGroup
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	g.Label = strings.TrimSpace(g.Label)
	if g.Label == "" {
		writeError(w, http.StatusBadRequest, "label is required")
		return
	}
	if !g.HebrewDate.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid hebrew_date")
		return
	}

	created, err := h.groups.Create(g)
	if err != nil {
		h.logger.Error("create aliya group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create aliya group")
		return
	}

	h.hub.Broadcast(ws.NewMessage("aliya_group", "created", created.ID, nil))
	writeJSON(w, http.StatusCreated, created)
}

func (h *AliyaGroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.groups.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get aliya group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get aliya group")
		return
	}
	if g == nil {
		writeError(w, http.StatusNotFound, "aliya group not found")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *AliyaGroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List()
	if err != nil {
		h.logger.Error("list aliya groups", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list aliya groups")
		return
	}
	if groups == nil {
		groups = []model.AliyaGroup{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *AliyaGroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.groups.GetByID(id)
	if err != nil {
		h.logger.Error("get aliya group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get aliya group")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "aliya group not found")
		return
	}

	var g model.AliyaGroup
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	g.ID = id
	if !g.HebrewDate.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid hebrew_date")
		return
	}

	updated, err := h.groups.Update(g)
	if err != nil {
		h.logger.Error("update aliya group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update aliya group")
		return
	}

	h.hub.Broadcast(ws.NewMessage("aliya_group", "updated", id, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *AliyaGroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.groups.Delete(id); err != nil {
		h.logger.Error("delete aliya group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete aliya group")
		return
	}
	h.hub.Broadcast(ws.NewMessage("aliya_group", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *AliyaGroupHandler) SetAssignment(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	typeID := r.PathValue("typeID")

	var req struct {
		PrayerID string `json:"prayer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.PrayerID == "" {
		writeError(w, http.StatusBadRequest, "prayer_id is required")
		return
	}

	if ok := h.requireGroup(w, groupID); !ok {
		return
	}
	if err := h.groups.SetAssignment(groupID, typeID, req.PrayerID); err != nil {
		h.logger.Error("set assignment", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to set assignment")
		return
	}

	h.hub.Broadcast(ws.NewMessage("aliya_group", "updated", groupID, map[string]any{"aliya_type_id": typeID}))
	h.respondWithGroup(w, groupID)
}

// RemoveAssignment unbinds a type from the group. Removing an absent
// assignment succeeds.
func (h *AliyaGroupHandler) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	typeID := r.PathValue("typeID")

	if ok := h.requireGroup(w, groupID); !ok {
		return
	}
	if err := h.groups.RemoveAssignment(groupID, typeID); err != nil {
		h.logger.Error("remove assignment", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove assignment")
		return
	}

	h.hub.Broadcast(ws.NewMessage("aliya_group", "updated", groupID, map[string]any{"aliya_type_id": typeID}))
	h.respondWithGroup(w, groupID)
}

// UpdateAssignments applies a batch of deletions and upserts atomically.
func (h *AliyaGroupHandler) UpdateAssignments(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")

	var req struct {
		Deletions []string          `json:"deletions"`
		Upserts   map[string]string `json:"upserts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if ok := h.requireGroup(w, groupID); !ok {
		return
	}
	if err := h.groups.UpdateAssignments(groupID, req.Deletions, req.Upserts); err != nil {
		h.logger.Error("update assignments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update assignments")
		return
	}

	h.hub.Broadcast(ws.NewMessage("aliya_group", "updated", groupID, nil))
	h.respondWithGroup(w, groupID)
}

func (h *AliyaGroupHandler) requireGroup(w http.ResponseWriter, groupID string) bool {
	g, err := h.groups.GetByID(groupID)
	if err != nil {
		h.logger.Error("get aliya group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get aliya group")
		return false
	}
	if g == nil {
		writeError(w, http.StatusNotFound, "aliya group not found")
		return false
	}
	return true
}

func (h *AliyaGroupHandler) respondWithGroup(w http.ResponseWriter, groupID string) {
	g, err := h.groups.GetByID(groupID)
	if err != nil || g == nil {
		h.logger.Error("reload aliya group", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load aliya group")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// ListFlat joins every assignment in every group against the roster.
func (h *AliyaGroupHandler) ListFlat(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List()
	if err != nil {
		h.logger.Error("list aliya groups", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list aliya groups")
		return
	}
	cards, err := h.cards.List()
	if err != nil {
		h.logger.Error("list prayer cards", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list prayer cards")
		return
	}

	flat := aliya.Flatten(groups, cards)
	if flat == nil {
		flat = []aliya.FlatAssignment{}
	}
	writeJSON(w, http.StatusOK, flat)
}

// ListForPrayer returns the assignments bound to one congregant.
func (h *AliyaGroupHandler) ListForPrayer(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List()
	if err != nil {
		h.logger.Error("list aliya groups", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list aliya groups")
		return
	}

	assignments := aliya.ForPrayer(r.PathValue("id"), groups)
	if assignments == nil {
		assignments = []aliya.Assignment{}
	}
	writeJSON(w, http.StatusOK, assignments)
}
