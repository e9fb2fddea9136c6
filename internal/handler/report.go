package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shulsoft/gabbai/internal/aliya"
	"github.com/shulsoft/gabbai/internal/donation"
	"github.com/shulsoft/gabbai/internal/export"
	"github.com/shulsoft/gabbai/internal/hebdate"
	"github.com/shulsoft/gabbai/internal/model"
	"github.com/shulsoft/gabbai/internal/store"
	"github.com/shulsoft/gabbai/internal/upcoming"
)

const defaultDaysAhead = 30

// ReportHandler serves the read-only reporting surface: the aliya history
// export, the upcoming-events window, and donation statistics. Everything
// is recomputed from the stores on each request.
type ReportHandler struct {
	cards      *store.PrayerCardStore
	groups     *store.AliyaGroupStore
	types      *store.AliyaTypeStore
	categories *store.AliyaTypeCategoryStore
	eventTypes *store.EventTypeStore
	clock      upcoming.Clock
	logger     *slog.Logger
}

func NewReportHandler(
	cs *store.PrayerCardStore,
	gs *store.AliyaGroupStore,
	ts *store.AliyaTypeStore,
	cats *store.AliyaTypeCategoryStore,
	es *store.EventTypeStore,
	clock upcoming.Clock,
	logger *slog.Logger,
) *ReportHandler {
	return &ReportHandler{
		cards:      cs,
		groups:     gs,
		types:      ts,
		categories: cats,
		eventTypes: es,
		clock:      clock,
		logger:     logger,
	}
}

func daysAheadParam(r *http.Request) (int, bool) {
	s := r.URL.Query().Get("days")
	if s == "" {
		return defaultDaysAhead, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// AliyaHistory builds the full export payload.
func (h *ReportHandler) AliyaHistory(w http.ResponseWriter, r *http.Request) {
	daysAhead, ok := daysAheadParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid days")
		return
	}

	cards, err := h.cards.List()
	if err != nil {
		h.logger.Error("list prayer cards", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list prayer cards")
		return
	}
	groups, err := h.groups.List()
	if err != nil {
		h.logger.Error("list aliya groups", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list aliya groups")
		return
	}
	types, err := h.types.List()
	if err != nil {
		h.logger.Error("list aliya types", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list aliya types")
		return
	}
	categories, err := h.categories.List()
	if err != nil {
		h.logger.Error("list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	eventTypes, err := h.eventTypes.List()
	if err != nil {
		h.logger.Error("list event types", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list event types")
		return
	}

	histories := aliya.BuildHistory(cards, groups, types, categories)
	earliest, hasEarliest := aliya.EarliestDate(groups)
	items := upcoming.Compute(cards, daysAhead, h.clock)

	data := export.Prepare(export.Input{
		Histories:      histories,
		Columns:        columnSources(types, categories),
		UpcomingItems:  items,
		EventTypeNames: eventTypeNames(eventTypes),
		Categories:     categories,
		EarliestDate:   earliest,
		HasEarliest:    hasEarliest,
		Now:            hebdate.FromGregorian(h.clock.Now()),
	})
	writeJSON(w, http.StatusOK, data)
}

// columnSources names every report column: categories under their own
// names, uncategorized types under their display names.
func columnSources(types []model.AliyaType, categories []model.AliyaTypeCategory) map[string]export.ColumnSource {
	categorized := make(map[string]bool)
	columns := make(map[string]export.ColumnSource)
	for i := range categories {
		columns[categories[i].ID] = export.ColumnSource{Name: categories[i].Name, IsCategory: true}
		for _, typeID := range categories[i].AliyaTypeIDs {
			categorized[typeID] = true
		}
	}
	for i := range types {
		if !categorized[types[i].ID] {
			columns[types[i].ID] = export.ColumnSource{Name: types[i].DisplayName, IsCategory: false}
		}
	}
	return columns
}

func eventTypeNames(types []model.PrayerEventType) map[string]string {
	names := make(map[string]string, len(types))
	for i := range types {
		names[types[i].ID] = types[i].DisplayName
	}
	return names
}

// Upcoming returns the raw upcoming-events window.
func (h *ReportHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	daysAhead, ok := daysAheadParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid days")
		return
	}

	cards, err := h.cards.List()
	if err != nil {
		h.logger.Error("list prayer cards", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list prayer cards")
		return
	}

	items := upcoming.Compute(cards, daysAhead, h.clock)
	if items == nil {
		items = []upcoming.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Donations returns the roster-wide donation summary.
func (h *ReportHandler) Donations(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List()
	if err != nil {
		h.logger.Error("list prayer cards", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list prayer cards")
		return
	}

	stats := donation.Compute(donation.AllPrayersFromCards(cards))
	writeJSON(w, http.StatusOK, stats)
}

// AliyotExport returns every group with its rendered Hebrew date and the
// assignment names resolved, shaped for an offline snapshot of the ledger.
func (h *ReportHandler) AliyotExport(w http.ResponseWriter, r *http.Request) {
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
	types, err := h.types.List()
	if err != nil {
		h.logger.Error("list aliya types", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list aliya types")
		return
	}

	typeNames := make(map[string]string, len(types))
	for i := range types {
		typeNames[types[i].ID] = types[i].DisplayName
	}
	prayerNames := make(map[string]string)
	for i := range cards {
		prayerNames[cards[i].Prayer.ID] = cards[i].Prayer.FullName()
		for j := range cards[i].Children {
			prayerNames[cards[i].Children[j].ID] = cards[i].Children[j].FullName()
		}
	}

	type exportEntry struct {
		TypeName   string `json:"type_name"`
		PrayerName string `json:"prayer_name"`
	}
	type exportGroup struct {
		Label       string        `json:"label"`
		HebrewDate  string        `json:"hebrew_date"`
		Assignments []exportEntry `json:"assignments"`
	}

	out := make([]exportGroup, 0, len(groups))
	for i := range groups {
		g := &groups[i]
		eg := exportGroup{
			Label:       g.Label,
			HebrewDate:  g.HebrewDate.String(),
			Assignments: []exportEntry{},
		}
		for typeID, prayerID := range g.Assignments {
			name, ok := prayerNames[prayerID]
			if !ok {
				continue
			}
			typeName, ok := typeNames[typeID]
			if !ok {
				typeName = typeID
			}
			eg.Assignments = append(eg.Assignments, exportEntry{TypeName: typeName, PrayerName: name})
		}
		out = append(out, eg)
	}
	writeJSON(w, http.StatusOK, out)
}

// DonationList returns every donation with its owner attached.
func (h *ReportHandler) DonationList(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List()
	if err != nil {
		h.logger.Error("list prayer cards", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list prayer cards")
		return
	}

	out := donation.AllWithContext(cards)
	if out == nil {
		out = []donation.WithContext{}
	}
	writeJSON(w, http.StatusOK, out)
}
