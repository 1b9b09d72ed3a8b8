package command

import (
	"fmt"
	"time"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/product/domain"
)

// CreateProductCommand represents the command to add a product to stock
type CreateProductCommand struct {
	Name          string
	Category      string
	Quantity      int
	MinStockLevel int
	Description   string
	Actor         activity.Actor
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.Category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}
	if cmd.MinStockLevel < 1 {
		return nil, fmt.Errorf("minimum stock level must be at least 1")
	}

	issued := time.Now().UTC()
	product := &domain.Product{
		Name:          cmd.Name,
		Category:      cmd.Category,
		Quantity:      cmd.Quantity,
		MinStockLevel: cmd.MinStockLevel,
		Description:   cmd.Description,
		DateOfIssue:   &issued,
		IsAssigned:    false,
	}

	entry := activity.NewLog(cmd.Actor, activity.ActionAddProduct,
		fmt.Sprintf("Added product: %s", cmd.Name))

	if err := h.repo.Create(product, entry); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
