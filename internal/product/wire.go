//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/adilet-dev/campus-inventory/internal/product/delivery/http"
	"github.com/adilet-dev/campus-inventory/internal/product/domain"
	"github.com/adilet-dev/campus-inventory/internal/product/repository"
	"github.com/adilet-dev/campus-inventory/internal/product/usecase/command"
	"github.com/adilet-dev/campus-inventory/internal/product/usecase/query"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// Command Handlers Providers
func ProvideCreateProductHandler(repo domain.ProductRepository) *command.CreateProductHandler {
	return command.NewCreateProductHandler(repo)
}

func ProvideUpdateProductHandler(repo domain.ProductRepository) *command.UpdateProductHandler {
	return command.NewUpdateProductHandler(repo)
}

func ProvideDeleteProductHandler(repo domain.ProductRepository) *command.DeleteProductHandler {
	return command.NewDeleteProductHandler(repo)
}

// Query Handlers Providers
func ProvideGetProductHandler(repo domain.ProductRepository) *query.GetProductHandler {
	return query.NewGetProductHandler(repo)
}

func ProvideListProductsHandler(repo domain.ProductRepository) *query.ListProductsHandler {
	return query.NewListProductsHandler(repo)
}

func ProvideLowStockHandler(repo domain.ProductRepository) *query.LowStockHandler {
	return query.NewLowStockHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateProductHandler,
	ProvideUpdateProductHandler,
	ProvideDeleteProductHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetProductHandler,
	ProvideListProductsHandler,
	ProvideLowStockHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.ProductHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewProductHandlerWithDI,
	)
	return nil, nil
}
