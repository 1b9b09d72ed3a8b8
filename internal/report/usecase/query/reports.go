package query

import (
	"fmt"
	"time"

	assignment "github.com/adilet-dev/campus-inventory/internal/assignment/domain"
	product "github.com/adilet-dev/campus-inventory/internal/product/domain"
	"github.com/adilet-dev/campus-inventory/internal/report/domain"
	student "github.com/adilet-dev/campus-inventory/internal/student/domain"
)

const recentWindow = 30 * 24 * time.Hour

// ReportsQuery represents the query for the reports page
type ReportsQuery struct{}

// Reports carries the distributions and counters of the reports page.
type Reports struct {
	TotalProducts     int64                    `json:"total_products"`
	TotalStudents     int64                    `json:"total_students"`
	AssignedProducts  int64                    `json:"assigned_products"`
	LowStockProducts  int64                    `json:"low_stock_products"`
	CategoryData      []domain.CategoryCount   `json:"category_data"`
	DepartmentData    []domain.DepartmentCount `json:"department_data"`
	RecentAssignments int64                    `json:"recent_assignments"`
}

// ReportsHandler handles the reports query
type ReportsHandler struct {
	products    product.ProductRepository
	students    student.StudentRepository
	assignments assignment.AssignmentRepository
	reports     domain.ReportRepository
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(
	products product.ProductRepository,
	students student.StudentRepository,
	assignments assignment.AssignmentRepository,
	reports domain.ReportRepository,
) *ReportsHandler {
	return &ReportsHandler{
		products:    products,
		students:    students,
		assignments: assignments,
		reports:     reports,
	}
}

// Handle executes the reports query
func (h *ReportsHandler) Handle(ReportsQuery) (*Reports, error) {
	r := &Reports{}

	var err error
	if r.TotalProducts, err = h.products.Count(); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if r.TotalStudents, err = h.students.Count(); err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	if r.AssignedProducts, err = h.assignments.CountOpen(); err != nil {
		return nil, fmt.Errorf("failed to count open assignments: %w", err)
	}
	if r.LowStockProducts, err = h.reports.CountLowStock(); err != nil {
		return nil, fmt.Errorf("failed to count low stock: %w", err)
	}
	if r.CategoryData, err = h.reports.ProductsByCategory(); err != nil {
		return nil, fmt.Errorf("failed to group by category: %w", err)
	}
	if r.DepartmentData, err = h.reports.StudentsByDepartment(); err != nil {
		return nil, fmt.Errorf("failed to group by department: %w", err)
	}

	since := time.Now().UTC().Add(-recentWindow)
	if r.RecentAssignments, err = h.assignments.CountAssignedSince(since); err != nil {
		return nil, fmt.Errorf("failed to count recent assignments: %w", err)
	}

	return r, nil
}
