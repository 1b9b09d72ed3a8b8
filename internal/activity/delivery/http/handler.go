package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/activity/usecase/query"
	userhttp "github.com/adilet-dev/campus-inventory/internal/user/delivery/http"
	"github.com/adilet-dev/campus-inventory/pkg/logger"
)

// ActivityHandler serves the audit trail. All routes are admin only.
type ActivityHandler struct {
	listHandler *query.ListActivityHandler
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(repo domain.LogRepository) *ActivityHandler {
	return &ActivityHandler{
		listHandler: query.NewListActivityHandler(repo),
	}
}

func (h *ActivityHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/admin/activity", userhttp.AdminMiddleware(h.ListActivity)).Methods("GET")
}

// ListActivity handles GET /admin/activity
func (h *ActivityHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	q := query.ListActivityQuery{
		Action: r.URL.Query().Get("action"),
		Page:   page,
		Size:   size,
	}

	result, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list activity")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to list activity",
			Kind:    "Internal",
		})
		return
	}

	respondJSON(w, http.StatusOK, userhttp.Response{
		Success: true,
		Data:    result,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
