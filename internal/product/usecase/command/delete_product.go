package command

import (
	"fmt"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/product/domain"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID    uint
	Actor activity.Actor
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command. Deletion is refused while
// any loan of the product is still open.
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("invalid product id")
	}

	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return err
	}

	entry := activity.NewLog(cmd.Actor, activity.ActionDeleteProduct,
		fmt.Sprintf("Deleted product: %s", product.Name))

	return h.repo.Delete(cmd.ID, entry)
}
