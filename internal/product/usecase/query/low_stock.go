package query

import (
	"fmt"

	"github.com/adilet-dev/campus-inventory/internal/product/domain"
)

// LowStockQuery represents the query for products at or below their
// minimum stock level
type LowStockQuery struct {
	Limit int
}

// LowStockHandler handles low stock query
type LowStockHandler struct {
	repo domain.ProductRepository
}

// NewLowStockHandler creates a new low stock handler
func NewLowStockHandler(repo domain.ProductRepository) *LowStockHandler {
	return &LowStockHandler{repo: repo}
}

// Handle executes the low stock query
func (h *LowStockHandler) Handle(q LowStockQuery) ([]ProductView, error) {
	products, err := h.repo.FindLowStock(q.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views, nil
}
