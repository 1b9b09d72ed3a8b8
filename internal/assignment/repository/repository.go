package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/assignment/domain"
	product "github.com/adilet-dev/campus-inventory/internal/product/domain"
	student "github.com/adilet-dev/campus-inventory/internal/student/domain"
	"github.com/adilet-dev/campus-inventory/pkg/logger"
	"gorm.io/gorm"
)

type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func (r *GormAssignmentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Assignment{})
}

// Assign loans one unit of a product to a student. The whole effect is a
// single transaction: the quantity decrement is conditional on stock
// remaining, so two racing assigns of the last unit cannot both succeed.
func (r *GormAssignmentRepository) Assign(studentID, productID uint, force bool, actor activity.Actor) (*domain.AssignResult, error) {
	var result *domain.AssignResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var s student.Student
		if err := tx.First(&s, studentID).Error; err != nil {
			return err
		}
		var p product.Product
		if err := tx.First(&p, productID).Error; err != nil {
			return err
		}

		if s.ProductID != nil && !force {
			return domain.ErrHolderConflict
		}
		if p.Quantity <= 0 {
			return domain.ErrOutOfStock
		}
		// Legacy single-unit guard kept from the old system: a committed
		// item with at most one unit on the books cannot be handed out twice.
		if p.IsAssigned && p.Quantity <= 1 {
			return domain.ErrAlreadyAssigned
		}

		res := tx.Model(&product.Product{}).
			Where("id = ? AND quantity > 0", productID).
			UpdateColumn("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrOutOfStock
		}
		if err := tx.Model(&product.Product{}).
			Where("id = ?", productID).
			UpdateColumn("is_assigned", gorm.Expr("quantity = 0")).Error; err != nil {
			return err
		}
		if err := tx.First(&p, productID).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		a := domain.Assignment{
			ProductID:    productID,
			StudentID:    studentID,
			AssignedDate: now,
			Status:       domain.StatusAssigned,
		}
		if err := tx.Create(&a).Error; err != nil {
			return err
		}

		if err := tx.Model(&student.Student{}).
			Where("id = ?", studentID).
			Updates(map[string]interface{}{
				"product_id":      productID,
				"assignment_date": now,
				"return_date":     nil,
			}).Error; err != nil {
			return err
		}

		entry := activity.NewLog(actor, activity.ActionAssignProduct,
			fmt.Sprintf("Assigned %s to %s (ID: %d)", p.Name, s.FullName, s.ID))
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		result = &domain.AssignResult{
			AssignmentID:      a.ID,
			RemainingQuantity: p.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Return closes the student's current loan. A missing open assignment row
// is tolerated (pre-existing data drift): the product and student records
// are still released and a warning is logged.
func (r *GormAssignmentRepository) Return(studentID uint, actor activity.Actor) (*domain.ReturnResult, error) {
	var result *domain.ReturnResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var s student.Student
		if err := tx.First(&s, studentID).Error; err != nil {
			return err
		}
		if s.ProductID == nil {
			return domain.ErrNoActiveAssignment
		}
		productID := *s.ProductID

		now := time.Now().UTC()

		var a domain.Assignment
		err := tx.Where("product_id = ? AND student_id = ? AND status = ?",
			productID, studentID, domain.StatusAssigned).
			Order("assigned_date DESC").
			First(&a).Error
		switch {
		case err == nil:
			a.ReturnedDate = &now
			a.Status = domain.StatusReturned
			if err := tx.Save(&a).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			logger.Warn(context.Background()).
				Uint("student_id", studentID).
				Uint("product_id", productID).
				Msg("no open assignment row found on return, releasing anyway")
		default:
			return err
		}

		quantity := 0
		res := tx.Model(&product.Product{}).
			Where("id = ?", productID).
			UpdateColumns(map[string]interface{}{
				"quantity":    gorm.Expr("quantity + 1"),
				"is_assigned": false,
			})
		if res.Error != nil {
			return res.Error
		}
		productName := "item"
		if res.RowsAffected > 0 {
			var p product.Product
			if err := tx.First(&p, productID).Error; err != nil {
				return err
			}
			quantity = p.Quantity
			productName = p.Name
		}

		if err := tx.Model(&student.Student{}).
			Where("id = ?", studentID).
			Updates(map[string]interface{}{
				"product_id":      nil,
				"assignment_date": nil,
				"return_date":     now,
			}).Error; err != nil {
			return err
		}

		entry := activity.NewLog(actor, activity.ActionReturnProduct,
			fmt.Sprintf("Returned %s from %s (ID: %d)", productName, s.FullName, s.ID))
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		result = &domain.ReturnResult{ProductID: productID, Quantity: quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *GormAssignmentRepository) FindByID(id uint) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAssignmentRepository) FindAll(filter domain.ListFilter) ([]domain.Assignment, error) {
	q := r.db.Model(&domain.Assignment{}).Order("assigned_date DESC")
	if filter.StudentID != 0 {
		q = q.Where("student_id = ?", filter.StudentID)
	}
	if filter.ProductID != 0 {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var assignments []domain.Assignment
	err := q.Offset(filter.Offset).Find(&assignments).Error
	return assignments, err
}

func (r *GormAssignmentRepository) FindRecent(limit int) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	err := r.db.Order("assigned_date DESC").Limit(limit).Find(&assignments).Error
	return assignments, err
}

func (r *GormAssignmentRepository) FindOverdue(before time.Time) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	err := r.db.Where("status = ? AND assigned_date < ?", domain.StatusAssigned, before).
		Order("assigned_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *GormAssignmentRepository) CountOpen() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Assignment{}).
		Where("status = ?", domain.StatusAssigned).
		Count(&count).Error
	return count, err
}

func (r *GormAssignmentRepository) CountAssignedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Assignment{}).
		Where("assigned_date >= ?", since).
		Count(&count).Error
	return count, err
}
