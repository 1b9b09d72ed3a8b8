package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/adilet-dev/campus-inventory/internal/assignment/domain"
	"github.com/adilet-dev/campus-inventory/internal/assignment/usecase/command"
	"github.com/adilet-dev/campus-inventory/internal/assignment/usecase/query"
	userhttp "github.com/adilet-dev/campus-inventory/internal/user/delivery/http"
	"github.com/adilet-dev/campus-inventory/kafka"
	"github.com/adilet-dev/campus-inventory/pkg/logger"
)

// AssignmentHandler handles HTTP requests for product assignments
type AssignmentHandler struct {
	assignHandler *command.AssignProductHandler
	returnHandler *command.ReturnProductHandler

	listHandler    *query.ListAssignmentsHandler
	overdueHandler *query.OverdueAssignmentsHandler

	repo      domain.AssignmentRepository
	publisher *kafka.Publisher

	assignCounter   *prometheus.CounterVec
	openAssignments prometheus.Gauge
}

// NewAssignmentHandler creates a new assignment handler. The Kafka
// publisher may be nil; events are then skipped.
func NewAssignmentHandler(repo domain.AssignmentRepository, publisher *kafka.Publisher) *AssignmentHandler {
	assignHandler := command.NewAssignProductHandler(repo)
	returnHandler := command.NewReturnProductHandler(repo)
	listHandler := query.NewListAssignmentsHandler(repo)
	overdueHandler := query.NewOverdueAssignmentsHandler(repo)

	return newAssignmentHandler(assignHandler, returnHandler, listHandler, overdueHandler, repo, publisher)
}

// NewAssignmentHandlerWithDI creates a new assignment handler using dependency injection
// This is used by Wire for automatic dependency injection
func NewAssignmentHandlerWithDI(
	assignHandler *command.AssignProductHandler,
	returnHandler *command.ReturnProductHandler,
	listHandler *query.ListAssignmentsHandler,
	overdueHandler *query.OverdueAssignmentsHandler,
	repo domain.AssignmentRepository,
	publisher *kafka.Publisher,
) *AssignmentHandler {
	return newAssignmentHandler(assignHandler, returnHandler, listHandler, overdueHandler, repo, publisher)
}

func newAssignmentHandler(
	assignHandler *command.AssignProductHandler,
	returnHandler *command.ReturnProductHandler,
	listHandler *query.ListAssignmentsHandler,
	overdueHandler *query.OverdueAssignmentsHandler,
	repo domain.AssignmentRepository,
	publisher *kafka.Publisher,
) *AssignmentHandler {
	assignCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_assignments_total",
			Help: "Total number of assignment operations by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	openAssignments := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_open_assignments",
			Help: "Number of currently open product assignments",
		},
	)

	prometheus.MustRegister(assignCounter)
	prometheus.MustRegister(openAssignments)

	return &AssignmentHandler{
		assignHandler:   assignHandler,
		returnHandler:   returnHandler,
		listHandler:     listHandler,
		overdueHandler:  overdueHandler,
		repo:            repo,
		publisher:       publisher,
		assignCounter:   assignCounter,
		openAssignments: openAssignments,
	}
}

func (h *AssignmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/assignments", userhttp.AuthMiddleware(h.ListAssignments)).Methods("GET")
	router.HandleFunc("/assignments/overdue", userhttp.AuthMiddleware(h.OverdueAssignments)).Methods("GET")
	router.HandleFunc("/assignments/{id}", userhttp.AuthMiddleware(h.GetAssignment)).Methods("GET")

	router.HandleFunc("/assignments", userhttp.AuthMiddleware(h.AssignProduct)).Methods("POST")
	router.HandleFunc("/returns", userhttp.AuthMiddleware(h.ReturnProduct)).Methods("POST")
}

// AssignProduct handles POST /assignments
func (h *AssignmentHandler) AssignProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID uint `json:"student_id"`
		ProductID uint `json:"product_id"`
		Force     bool `json:"force"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   "Invalid request body",
			Kind:    "Validation",
		})
		return
	}

	cmd := command.AssignProductCommand{
		StudentID: req.StudentID,
		ProductID: req.ProductID,
		Force:     req.Force,
		Actor:     userhttp.ActorFromRequest(r),
	}

	result, err := h.assignHandler.Handle(cmd)
	if err != nil {
		h.assignCounter.WithLabelValues("assign", "error").Inc()
		h.respondAssignmentError(w, r, err, "Failed to assign product")
		return
	}

	h.assignCounter.WithLabelValues("assign", "ok").Inc()
	h.updateOpenAssignmentsMetric()

	if err := h.publisher.PublishProductAssigned(r.Context(), kafka.ProductAssignedEvent{
		AssignmentID:      result.AssignmentID,
		ProductID:         req.ProductID,
		StudentID:         req.StudentID,
		RemainingQuantity: result.RemainingQuantity,
	}); err != nil {
		// The assignment is already committed; the event is best effort.
		logger.Warn(r.Context()).Err(err).Msg("Failed to publish assignment event")
	}

	respondJSON(w, http.StatusCreated, userhttp.Response{
		Success: true,
		Message: "Product assigned successfully",
		Data:    result,
	})
}

// ReturnProduct handles POST /returns
func (h *AssignmentHandler) ReturnProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID uint `json:"student_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   "Invalid request body",
			Kind:    "Validation",
		})
		return
	}

	cmd := command.ReturnProductCommand{
		StudentID: req.StudentID,
		Actor:     userhttp.ActorFromRequest(r),
	}

	result, err := h.returnHandler.Handle(cmd)
	if err != nil {
		h.assignCounter.WithLabelValues("return", "error").Inc()
		h.respondAssignmentError(w, r, err, "Failed to return product")
		return
	}

	h.assignCounter.WithLabelValues("return", "ok").Inc()
	h.updateOpenAssignmentsMetric()

	if err := h.publisher.PublishProductReturned(r.Context(), kafka.ProductReturnedEvent{
		ProductID:       result.ProductID,
		StudentID:       req.StudentID,
		UpdatedQuantity: result.Quantity,
	}); err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Failed to publish return event")
	}

	respondJSON(w, http.StatusOK, userhttp.Response{
		Success: true,
		Message: "Product returned successfully",
		Data:    result,
	})
}

// ListAssignments handles GET /assignments
func (h *AssignmentHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	studentID, _ := strconv.ParseUint(r.URL.Query().Get("student_id"), 10, 32)
	productID, _ := strconv.ParseUint(r.URL.Query().Get("product_id"), 10, 32)

	q := query.ListAssignmentsQuery{
		StudentID: uint(studentID),
		ProductID: uint(productID),
		Status:    r.URL.Query().Get("status"),
		Limit:     limit,
		Offset:    offset,
	}

	assignments, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list assignments")
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    "Validation",
		})
		return
	}

	respondJSON(w, http.StatusOK, userhttp.Response{
		Success: true,
		Data: map[string]interface{}{
			"assignments": assignments,
			"count":       len(assignments),
		},
	})
}

// GetAssignment handles GET /assignments/{id}
func (h *AssignmentHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   "Invalid assignment ID",
			Kind:    "Validation",
		})
		return
	}

	a, err := h.repo.FindByID(uint(id))
	if err != nil {
		respondJSON(w, http.StatusNotFound, userhttp.Response{
			Success: false,
			Error:   "Assignment not found",
			Kind:    "NotFound",
		})
		return
	}

	respondJSON(w, http.StatusOK, userhttp.Response{
		Success: true,
		Data:    a,
	})
}

// OverdueAssignments handles GET /assignments/overdue
func (h *AssignmentHandler) OverdueAssignments(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	q := query.OverdueAssignmentsQuery{}
	if days > 0 {
		q.OlderThan = time.Duration(days) * 24 * time.Hour
	}

	assignments, err := h.overdueHandler.Handle(q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list overdue assignments")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to list overdue assignments",
			Kind:    "Internal",
		})
		return
	}

	respondJSON(w, http.StatusOK, userhttp.Response{
		Success: true,
		Data: map[string]interface{}{
			"assignments": assignments,
			"count":       len(assignments),
		},
	})
}

// respondAssignmentError maps domain errors to HTTP status codes.
func (h *AssignmentHandler) respondAssignmentError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondJSON(w, http.StatusNotFound, userhttp.Response{
			Success: false,
			Error:   "Record not found",
			Kind:    "NotFound",
		})
	case errors.Is(err, domain.ErrOutOfStock):
		respondJSON(w, http.StatusConflict, userhttp.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    "OutOfStock",
		})
	case errors.Is(err, domain.ErrAlreadyAssigned):
		respondJSON(w, http.StatusConflict, userhttp.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    "AlreadyAssigned",
		})
	case errors.Is(err, domain.ErrHolderConflict):
		respondJSON(w, http.StatusConflict, userhttp.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    "Conflict",
		})
	case errors.Is(err, domain.ErrNoActiveAssignment):
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    "NoActiveAssignment",
		})
	default:
		logger.Error(r.Context()).Err(err).Msg(fallback)
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    "Validation",
		})
	}
}

// updateOpenAssignmentsMetric refreshes the open assignments gauge
func (h *AssignmentHandler) updateOpenAssignmentsMetric() {
	count, err := h.repo.CountOpen()
	if err != nil {
		return
	}
	h.openAssignments.Set(float64(count))
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
