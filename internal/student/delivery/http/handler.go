package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/adilet-dev/campus-inventory/internal/student/domain"
	"github.com/adilet-dev/campus-inventory/internal/student/usecase/command"
	"github.com/adilet-dev/campus-inventory/internal/student/usecase/query"
	userhttp "github.com/adilet-dev/campus-inventory/internal/user/delivery/http"
	"github.com/adilet-dev/campus-inventory/pkg/logger"
)

// StudentHandler handles HTTP requests for students
type StudentHandler struct {
	createHandler *command.CreateStudentHandler

	getStudentHandler *query.GetStudentHandler
	listHandler       *query.ListStudentsHandler

	repo domain.StudentRepository
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(repo domain.StudentRepository) *StudentHandler {
	return &StudentHandler{
		createHandler:     command.NewCreateStudentHandler(repo),
		getStudentHandler: query.NewGetStudentHandler(repo),
		listHandler:       query.NewListStudentsHandler(repo),
		repo:              repo,
	}
}

func (h *StudentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/students", userhttp.AuthMiddleware(h.ListStudents)).Methods("GET")
	router.HandleFunc("/students/{id}", userhttp.AuthMiddleware(h.GetStudent)).Methods("GET")
	router.HandleFunc("/students", userhttp.AuthMiddleware(h.CreateStudent)).Methods("POST")
}

// CreateStudent handles POST /students
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName   string `json:"full_name"`
		RollNumber string `json:"roll_number"`
		Department string `json:"department"`
		Email      string `json:"email"`
		Phone      string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   "Invalid request body",
			Kind:    "Validation",
		})
		return
	}

	cmd := command.CreateStudentCommand{
		FullName:   req.FullName,
		RollNumber: req.RollNumber,
		Department: req.Department,
		Email:      req.Email,
		Phone:      req.Phone,
		Actor:      userhttp.ActorFromRequest(r),
	}

	student, err := h.createHandler.Handle(cmd)
	switch {
	case err == nil:
		respondJSON(w, http.StatusCreated, userhttp.Response{
			Success: true,
			Message: "Student registered successfully",
			Data:    student,
		})
	case errors.Is(err, domain.ErrDuplicateRollNumber), errors.Is(err, domain.ErrDuplicateEmail):
		respondJSON(w, http.StatusConflict, userhttp.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    "Conflict",
		})
	default:
		logger.Error(r.Context()).Err(err).Msg("Failed to create student")
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    "Validation",
		})
	}
}

// ListStudents handles GET /students
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	students, err := h.listHandler.Handle(query.ListStudentsQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list students")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to list students",
			Kind:    "Internal",
		})
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, userhttp.Response{
		Success: true,
		Data: map[string]interface{}{
			"students": students,
			"total":    count,
		},
	})
}

// GetStudent handles GET /students/{id}
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   "Invalid student ID",
			Kind:    "Validation",
		})
		return
	}

	student, err := h.getStudentHandler.Handle(query.GetStudentQuery{ID: uint(id)})
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, userhttp.Response{
			Success: true,
			Data:    student,
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondJSON(w, http.StatusNotFound, userhttp.Response{
			Success: false,
			Error:   "Student not found",
			Kind:    "NotFound",
		})
	default:
		logger.Error(r.Context()).Err(err).Msg("Failed to get student")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to get student",
			Kind:    "Internal",
		})
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
