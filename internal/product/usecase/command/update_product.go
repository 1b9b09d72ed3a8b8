package command

import (
	"fmt"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/product/domain"
)

// UpdateProductCommand represents the command to update a product
type UpdateProductCommand struct {
	ID            uint
	Name          string
	Category      string
	Quantity      int
	MinStockLevel int
	Description   string
	Actor         activity.Actor
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command. A direct quantity edit is
// audited as its own entry on top of the product update itself.
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.Quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}
	if cmd.MinStockLevel < 1 {
		return nil, fmt.Errorf("minimum stock level must be at least 1")
	}

	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	oldQuantity := product.Quantity
	product.Name = cmd.Name
	product.Category = cmd.Category
	product.Quantity = cmd.Quantity
	product.MinStockLevel = cmd.MinStockLevel
	product.Description = cmd.Description
	if product.Quantity > 0 {
		product.IsAssigned = false
	}

	entries := []*activity.Log{
		activity.NewLog(cmd.Actor, activity.ActionUpdateProduct,
			fmt.Sprintf("Updated product: %s", product.Name)),
	}
	if oldQuantity != product.Quantity {
		entries = append(entries, activity.NewLog(cmd.Actor, activity.ActionUpdateQuantity,
			fmt.Sprintf("Updated quantity for %s from %d to %d", product.Name, oldQuantity, product.Quantity)))
	}

	if err := h.repo.Update(product, entries...); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
