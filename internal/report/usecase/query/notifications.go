package query

import (
	"fmt"

	assignment "github.com/adilet-dev/campus-inventory/internal/assignment/domain"
	assignmentquery "github.com/adilet-dev/campus-inventory/internal/assignment/usecase/query"
	product "github.com/adilet-dev/campus-inventory/internal/product/domain"
	productquery "github.com/adilet-dev/campus-inventory/internal/product/usecase/query"
)

// NotificationsQuery represents the query for actionable warnings
type NotificationsQuery struct{}

// Notifications lists what needs operator attention: items running low
// and loans open past the overdue window.
type Notifications struct {
	LowStockProducts   []productquery.ProductView `json:"low_stock_products"`
	OverdueAssignments []assignment.Assignment    `json:"overdue_assignments"`
}

// NotificationsHandler handles the notifications query
type NotificationsHandler struct {
	products *productquery.LowStockHandler
	overdue  *assignmentquery.OverdueAssignmentsHandler
}

// NewNotificationsHandler creates a new notifications handler
func NewNotificationsHandler(products product.ProductRepository, assignments assignment.AssignmentRepository) *NotificationsHandler {
	return &NotificationsHandler{
		products: productquery.NewLowStockHandler(products),
		overdue:  assignmentquery.NewOverdueAssignmentsHandler(assignments),
	}
}

// Handle executes the notifications query
func (h *NotificationsHandler) Handle(NotificationsQuery) (*Notifications, error) {
	lowStock, err := h.products.Handle(productquery.LowStockQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}

	overdue, err := h.overdue.Handle(assignmentquery.OverdueAssignmentsQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue assignments: %w", err)
	}

	return &Notifications{LowStockProducts: lowStock, OverdueAssignments: overdue}, nil
}
