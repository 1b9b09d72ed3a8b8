package query

import (
	"time"

	"github.com/adilet-dev/campus-inventory/internal/assignment/domain"
)

// DefaultOverdueAfter is how long a loan may stay open before it is
// considered overdue.
const DefaultOverdueAfter = 30 * 24 * time.Hour

// OverdueAssignmentsQuery represents the query for loans open longer
// than the given duration
type OverdueAssignmentsQuery struct {
	OlderThan time.Duration
}

// OverdueAssignmentsHandler handles overdue assignments query
type OverdueAssignmentsHandler struct {
	repo domain.AssignmentRepository
}

// NewOverdueAssignmentsHandler creates a new overdue assignments handler
func NewOverdueAssignmentsHandler(repo domain.AssignmentRepository) *OverdueAssignmentsHandler {
	return &OverdueAssignmentsHandler{repo: repo}
}

// Handle executes the overdue assignments query
func (h *OverdueAssignmentsHandler) Handle(q OverdueAssignmentsQuery) ([]domain.Assignment, error) {
	olderThan := q.OlderThan
	if olderThan <= 0 {
		olderThan = DefaultOverdueAfter
	}
	cutoff := time.Now().UTC().Add(-olderThan)
	return h.repo.FindOverdue(cutoff)
}
