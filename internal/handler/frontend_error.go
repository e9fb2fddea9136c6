package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shulsoft/gabbai/internal/model"
	"github.com/shulsoft/gabbai/internal/store"
)

var errorTypes = map[string]bool{
	model.ErrorTypeJavascript: true,
	model.ErrorTypeReact:      true,
	model.ErrorTypePromise:    true,
	model.ErrorTypeConsole:    true,
}

type FrontendErrorHandler struct {
	errors *store.FrontendErrorStore
	logger *slog.Logger
}

func NewFrontendErrorHandler(es *store.FrontendErrorStore, logger *slog.Logger) *FrontendErrorHandler {
	return &FrontendErrorHandler{errors: es, logger: logger}
}

// Create accepts an error report from the web client. Unknown error types
// are stored as javascript errors rather than rejected; the client is
// already in a failing state.
func (h *FrontendErrorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e model.FrontendError
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if e.ErrorMessage == "" {
		writeError(w, http.StatusBadRequest, "error_message is required")
		return
	}
	if !errorTypes[e.ErrorType] {
		e.ErrorType = model.ErrorTypeJavascript
	}
	if e.UserAgent == "" {
		e.UserAgent = r.UserAgent()
	}

	created, err := h.errors.Create(e)
	if err != nil {
		h.logger.Error("store frontend error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *FrontendErrorHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	errs, err := h.errors.List(limit)
	if err != nil {
		h.logger.Error("list frontend errors", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list errors")
		return
	}
	if errs == nil {
		errs = []model.FrontendError{}
	}
	writeJSON(w, http.StatusOK, errs)
}
