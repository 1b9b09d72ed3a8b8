package query

import (
	"fmt"

	"github.com/adilet-dev/campus-inventory/internal/user/domain"
)

// ListUsersQuery represents the query to list users
type ListUsersQuery struct {
	Limit  int
	Offset int
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(q ListUsersQuery) ([]domain.User, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	users, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
