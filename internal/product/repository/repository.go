package repository

import (
	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	assignment "github.com/adilet-dev/campus-inventory/internal/assignment/domain"
	"github.com/adilet-dev/campus-inventory/internal/product/domain"
	"gorm.io/gorm"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(product *domain.Product, entry *activity.Log) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		if entry != nil {
			return tx.Create(entry).Error
		}
		return nil
	})
}

func (r *GormProductRepository) Update(product *domain.Product, entries ...*activity.Log) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(product).Error; err != nil {
			return err
		}
		for _, entry := range entries {
			if entry == nil {
				continue
			}
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a product unless an open assignment still references it.
// Historical assignment rows are kept for audit, never cascaded.
func (r *GormProductRepository) Delete(id uint, entry *activity.Log) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}

		var open int64
		if err := tx.Model(&assignment.Assignment{}).
			Where("product_id = ? AND status = ?", id, assignment.StatusAssigned).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return domain.ErrHasOpenAssignments
		}

		if err := tx.Delete(&domain.Product{}, id).Error; err != nil {
			return err
		}
		if entry != nil {
			return tx.Create(entry).Error
		}
		return nil
	})
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindByCategory(category string, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("category = ?", category).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindLowStock(limit int) ([]domain.Product, error) {
	var products []domain.Product
	q := r.db.Where("quantity <= min_stock_level").Order("quantity ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Count(&count).Error
	return count, err
}
