//go:build wireinject
// +build wireinject

package assignment

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/adilet-dev/campus-inventory/internal/assignment/delivery/http"
	"github.com/adilet-dev/campus-inventory/internal/assignment/domain"
	"github.com/adilet-dev/campus-inventory/internal/assignment/repository"
	"github.com/adilet-dev/campus-inventory/internal/assignment/usecase/command"
	"github.com/adilet-dev/campus-inventory/internal/assignment/usecase/query"
	"github.com/adilet-dev/campus-inventory/kafka"
)

// ProvideAssignmentRepository provides the assignment repository
func ProvideAssignmentRepository(db *gorm.DB) domain.AssignmentRepository {
	return repository.NewGormAssignmentRepository(db)
}

// Command Handlers Providers
func ProvideAssignProductHandler(repo domain.AssignmentRepository) *command.AssignProductHandler {
	return command.NewAssignProductHandler(repo)
}

func ProvideReturnProductHandler(repo domain.AssignmentRepository) *command.ReturnProductHandler {
	return command.NewReturnProductHandler(repo)
}

// Query Handlers Providers
func ProvideListAssignmentsHandler(repo domain.AssignmentRepository) *query.ListAssignmentsHandler {
	return query.NewListAssignmentsHandler(repo)
}

func ProvideOverdueAssignmentsHandler(repo domain.AssignmentRepository) *query.OverdueAssignmentsHandler {
	return query.NewOverdueAssignmentsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideAssignmentRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAssignProductHandler,
	ProvideReturnProductHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListAssignmentsHandler,
	ProvideOverdueAssignmentsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.AssignmentHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewAssignmentHandlerWithDI,
	)
	return nil, nil
}
