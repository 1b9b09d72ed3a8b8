package domain

// CategoryCount is one row of a grouped distribution.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// DepartmentCount is one row of the students-by-department distribution.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// ReportRepository aggregates current rows on every call. Nothing here
// is cached or incrementally maintained.
type ReportRepository interface {
	TotalQuantity() (int64, error)
	CountLowStock() (int64, error)
	ProductsByCategory() ([]CategoryCount, error)
	StudentsByDepartment() ([]DepartmentCount, error)
}
