package command

import (
	"fmt"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/assignment/domain"
)

// ReturnProductCommand represents the command to return the product a
// student currently holds
type ReturnProductCommand struct {
	StudentID uint
	Actor     activity.Actor
}

// ReturnProductHandler handles the return command
type ReturnProductHandler struct {
	repo domain.AssignmentRepository
}

// NewReturnProductHandler creates a new return product handler
func NewReturnProductHandler(repo domain.AssignmentRepository) *ReturnProductHandler {
	return &ReturnProductHandler{repo: repo}
}

// Handle executes the return command
func (h *ReturnProductHandler) Handle(cmd ReturnProductCommand) (*domain.ReturnResult, error) {
	if cmd.StudentID == 0 {
		return nil, fmt.Errorf("student id is required")
	}

	return h.repo.Return(cmd.StudentID, cmd.Actor)
}
