package query

import (
	"fmt"

	assignment "github.com/adilet-dev/campus-inventory/internal/assignment/domain"
	product "github.com/adilet-dev/campus-inventory/internal/product/domain"
	productquery "github.com/adilet-dev/campus-inventory/internal/product/usecase/query"
	"github.com/adilet-dev/campus-inventory/internal/report/domain"
	student "github.com/adilet-dev/campus-inventory/internal/student/domain"
)

const dashboardPreviewSize = 5

// DashboardQuery represents the query for the dashboard snapshot
type DashboardQuery struct{}

// Dashboard is the aggregate snapshot rendered on the landing page.
// Every field is recomputed from current rows on each request.
type Dashboard struct {
	TotalProducts     int64                      `json:"total_products"`
	TotalStudents     int64                      `json:"total_students"`
	TotalQuantity     int64                      `json:"total_quantity"`
	ActiveAssignments int64                      `json:"active_assignments"`
	LowStockCount     int64                      `json:"low_stock_count"`
	RecentAssignments []assignment.Assignment    `json:"recent_assignments"`
	LowStockProducts  []productquery.ProductView `json:"low_stock_products"`
	ByCategory        []domain.CategoryCount     `json:"products_by_category"`
}

// DashboardHandler handles the dashboard query
type DashboardHandler struct {
	products    product.ProductRepository
	students    student.StudentRepository
	assignments assignment.AssignmentRepository
	reports     domain.ReportRepository
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	products product.ProductRepository,
	students student.StudentRepository,
	assignments assignment.AssignmentRepository,
	reports domain.ReportRepository,
) *DashboardHandler {
	return &DashboardHandler{
		products:    products,
		students:    students,
		assignments: assignments,
		reports:     reports,
	}
}

// Handle executes the dashboard query
func (h *DashboardHandler) Handle(DashboardQuery) (*Dashboard, error) {
	d := &Dashboard{}

	var err error
	if d.TotalProducts, err = h.products.Count(); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if d.TotalStudents, err = h.students.Count(); err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if d.TotalQuantity, err = h.reports.TotalQuantity(); err != nil {
		return nil, fmt.Errorf("failed to sum quantity: %w", err)
	}
	if d.ActiveAssignments, err = h.assignments.CountOpen(); err != nil {
		return nil, fmt.Errorf("failed to count open assignments: %w", err)
	}
	if d.LowStockCount, err = h.reports.CountLowStock(); err != nil {
		return nil, fmt.Errorf("failed to count low stock: %w", err)
	}
	if d.RecentAssignments, err = h.assignments.FindRecent(dashboardPreviewSize); err != nil {
		return nil, fmt.Errorf("failed to list recent assignments: %w", err)
	}

	lowStock, err := h.products.FindLowStock(dashboardPreviewSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	d.LowStockProducts = make([]productquery.ProductView, 0, len(lowStock))
	for _, p := range lowStock {
		d.LowStockProducts = append(d.LowStockProducts, productquery.NewProductView(p))
	}

	if d.ByCategory, err = h.reports.ProductsByCategory(); err != nil {
		return nil, fmt.Errorf("failed to group by category: %w", err)
	}

	return d, nil
}
