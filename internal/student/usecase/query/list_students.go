package query

import (
	"fmt"

	"github.com/adilet-dev/campus-inventory/internal/student/domain"
)

// ListStudentsQuery represents the query to list students
type ListStudentsQuery struct {
	Limit  int
	Offset int
}

// ListStudentsHandler handles list students query
type ListStudentsHandler struct {
	repo domain.StudentRepository
}

// NewListStudentsHandler creates a new list students handler
func NewListStudentsHandler(repo domain.StudentRepository) *ListStudentsHandler {
	return &ListStudentsHandler{repo: repo}
}

// Handle executes the list students query
func (h *ListStudentsHandler) Handle(q ListStudentsQuery) ([]domain.Student, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	students, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}
