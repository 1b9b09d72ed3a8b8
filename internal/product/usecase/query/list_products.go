package query

import (
	"fmt"

	"github.com/adilet-dev/campus-inventory/internal/product/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Limit    int
	Offset   int
	Category string // Optional: filter by category
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(q ListProductsQuery) ([]ProductView, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	var products []domain.Product
	var err error
	if q.Category != "" {
		products, err = h.repo.FindByCategory(q.Category, q.Limit, q.Offset)
	} else {
		products, err = h.repo.FindAll(q.Limit, q.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	return views, nil
}
