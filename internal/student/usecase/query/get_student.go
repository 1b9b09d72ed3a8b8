package query

import (
	"github.com/adilet-dev/campus-inventory/internal/student/domain"
)

// GetStudentQuery represents the query to get a student by ID
type GetStudentQuery struct {
	ID uint
}

// GetStudentHandler handles get student query
type GetStudentHandler struct {
	repo domain.StudentRepository
}

// NewGetStudentHandler creates a new get student handler
func NewGetStudentHandler(repo domain.StudentRepository) *GetStudentHandler {
	return &GetStudentHandler{repo: repo}
}

// Handle executes the get student query
func (h *GetStudentHandler) Handle(q GetStudentQuery) (*domain.Student, error) {
	return h.repo.FindByID(q.ID)
}
