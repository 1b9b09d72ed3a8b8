package repository

import (
	product "github.com/adilet-dev/campus-inventory/internal/product/domain"
	"github.com/adilet-dev/campus-inventory/internal/report/domain"
	student "github.com/adilet-dev/campus-inventory/internal/student/domain"
	"gorm.io/gorm"
)

type GormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) TotalQuantity() (int64, error) {
	var total *int64
	err := r.db.Model(&product.Product{}).
		Select("SUM(quantity)").
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *GormReportRepository) CountLowStock() (int64, error) {
	var count int64
	err := r.db.Model(&product.Product{}).
		Where("quantity <= min_stock_level").
		Count(&count).Error
	return count, err
}

func (r *GormReportRepository) ProductsByCategory() ([]domain.CategoryCount, error) {
	var rows []domain.CategoryCount
	err := r.db.Model(&product.Product{}).
		Select("category, COUNT(id) AS count").
		Group("category").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormReportRepository) StudentsByDepartment() ([]domain.DepartmentCount, error) {
	var rows []domain.DepartmentCount
	err := r.db.Model(&student.Student{}).
		Select("department, COUNT(id) AS count").
		Where("department <> ''").
		Group("department").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}
