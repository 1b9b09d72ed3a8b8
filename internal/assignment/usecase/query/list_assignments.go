package query

import (
	"fmt"

	"github.com/adilet-dev/campus-inventory/internal/assignment/domain"
)

// ListAssignmentsQuery represents the query to list assignments
type ListAssignmentsQuery struct {
	StudentID uint
	ProductID uint
	Status    string
	Limit     int
	Offset    int
}

// ListAssignmentsHandler handles list assignments query
type ListAssignmentsHandler struct {
	repo domain.AssignmentRepository
}

// NewListAssignmentsHandler creates a new list assignments handler
func NewListAssignmentsHandler(repo domain.AssignmentRepository) *ListAssignmentsHandler {
	return &ListAssignmentsHandler{repo: repo}
}

// Handle executes the list assignments query
func (h *ListAssignmentsHandler) Handle(q ListAssignmentsQuery) ([]domain.Assignment, error) {
	if q.Status != "" && q.Status != domain.StatusAssigned && q.Status != domain.StatusReturned {
		return nil, fmt.Errorf("invalid status filter: %s", q.Status)
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}

	return h.repo.FindAll(domain.ListFilter{
		StudentID: q.StudentID,
		ProductID: q.ProductID,
		Status:    q.Status,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
}
