package query

import (
	"github.com/adilet-dev/campus-inventory/internal/product/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID uint
}

// ProductView is a product plus its derived stock flag.
type ProductView struct {
	domain.Product
	IsLowStock bool `json:"is_low_stock"`
}

// NewProductView attaches the derived low-stock flag to a product.
func NewProductView(p domain.Product) ProductView {
	return ProductView{Product: p, IsLowStock: p.IsLowStock()}
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(q GetProductQuery) (*ProductView, error) {
	product, err := h.repo.FindByID(q.ID)
	if err != nil {
		return nil, err
	}
	view := NewProductView(*product)
	return &view, nil
}
