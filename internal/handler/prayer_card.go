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

type PrayerCardHandler struct {
	cards  *store.PrayerCardStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewPrayerCardHandler(cs *store.PrayerCardStore, hub *ws.Hub, logger *slog.Logger) *PrayerCardHandler {
	return &PrayerCardHandler{cards: cs, hub: hub, logger: logger}
}

func (h *PrayerCardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var card model.PrayerCard
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	card.Prayer.FirstName = strings.TrimSpace(card.Prayer.FirstName)
	if card.Prayer.FirstName == "" {
		writeError(w, http.StatusBadRequest, "first_name is required")
		return
	}

	created, err := h.cards.Create(card)
	if err != nil {
		h.logger.Error("create prayer card", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create prayer card")
		return
	}

	h.hub.Broadcast(ws.NewMessage("prayer_card", "created", created.ID, nil))
	writeJSON(w, http.StatusCreated, created)
}

func (h *PrayerCardHandler) Get(w http.ResponseWriter, r *http.Request) {
	card, err := h.cards.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get prayer card", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get prayer card")
		return
	}
	if card == nil {
		writeError(w, http.StatusNotFound, "prayer card not found")
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *PrayerCardHandler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List()
	if err != nil {
		h.logger.Error("list prayer cards", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list prayer cards")
		return
	}
	if cards == nil {
		cards = []model.PrayerCard{}
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *PrayerCardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var card model.PrayerCard
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	card.ID = id

	updated, err := h.cards.Update(card)
	if err != nil {
		h.logger.Error("update prayer card", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update prayer card")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "prayer card not found")
		return
	}

	h.hub.Broadcast(ws.NewMessage("prayer_card", "updated", id, nil))
	writeJSON(w, http.StatusOK, updated)
}

func (h *PrayerCardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.cards.Delete(id); err != nil {
		h.logger.Error("delete prayer card", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete prayer card")
		return
	}
	h.hub.Broadcast(ws.NewMessage("prayer_card", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *PrayerCardHandler) AddDonation(w http.ResponseWriter, r *http.Request) {
	prayerID := r.PathValue("id")

	var d model.Donation
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if d.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if ac, ok := auth.FromContext(r.Context()); ok {
		d.CreatedBy = ac.Email
	}

	created, err := h.cards.AddDonation(prayerID, d)
	if err != nil {
		h.logger.Error("add donation", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add donation")
		return
	}

	h.hub.Broadcast(ws.NewMessage("donation", "created", created.ID, map[string]any{"prayer_id": prayerID}))
	writeJSON(w, http.StatusCreated, created)
}

func (h *PrayerCardHandler) SetDonationPaid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Paid bool `json:"paid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	id := r.PathValue("donationID")
	if err := h.cards.SetDonationPaid(id, req.Paid); err != nil {
		h.logger.Error("set donation paid", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update donation")
		return
	}
	h.hub.Broadcast(ws.NewMessage("donation", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *PrayerCardHandler) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("donationID")
	if err := h.cards.DeleteDonation(id); err != nil {
		h.logger.Error("delete donation", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete donation")
		return
	}
	h.hub.Broadcast(ws.NewMessage("donation", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
