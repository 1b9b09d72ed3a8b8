package command

import (
	"fmt"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/assignment/domain"
)

// AssignProductCommand represents the command to loan a product unit to
// a student. Force overwrites an existing holder pointer instead of
// failing with a conflict; it exists for reconciling legacy data and is
// never the default.
type AssignProductCommand struct {
	StudentID uint
	ProductID uint
	Force     bool
	Actor     activity.Actor
}

// AssignProductHandler handles the assign command
type AssignProductHandler struct {
	repo domain.AssignmentRepository
}

// NewAssignProductHandler creates a new assign product handler
func NewAssignProductHandler(repo domain.AssignmentRepository) *AssignProductHandler {
	return &AssignProductHandler{repo: repo}
}

// Handle executes the assign command
func (h *AssignProductHandler) Handle(cmd AssignProductCommand) (*domain.AssignResult, error) {
	if cmd.StudentID == 0 {
		return nil, fmt.Errorf("student id is required")
	}
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product id is required")
	}

	return h.repo.Assign(cmd.StudentID, cmd.ProductID, cmd.Force, cmd.Actor)
}
