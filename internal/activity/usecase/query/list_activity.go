package query

import (
	"fmt"

	"github.com/adilet-dev/campus-inventory/internal/activity/domain"
)

// ListActivityQuery represents the query for the paginated audit trail,
// newest first
type ListActivityQuery struct {
	Action string // Optional: filter by action tag
	Page   int
	Size   int
}

// ListActivityResult is one page of the audit trail.
type ListActivityResult struct {
	Logs  []domain.Log `json:"logs"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Size  int          `json:"size"`
}

// ListActivityHandler handles list activity query
type ListActivityHandler struct {
	repo domain.LogRepository
}

// NewListActivityHandler creates a new list activity handler
func NewListActivityHandler(repo domain.LogRepository) *ListActivityHandler {
	return &ListActivityHandler{repo: repo}
}

// Handle executes the list activity query
func (h *ListActivityHandler) Handle(q ListActivityQuery) (*ListActivityResult, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 100 {
		q.Size = 20
	}
	offset := (q.Page - 1) * q.Size

	var logs []domain.Log
	var err error
	if q.Action != "" {
		logs, err = h.repo.FindByAction(q.Action, q.Size, offset)
	} else {
		logs, err = h.repo.FindAll(q.Size, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	total, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count activity: %w", err)
	}

	return &ListActivityResult{Logs: logs, Total: total, Page: q.Page, Size: q.Size}, nil
}
