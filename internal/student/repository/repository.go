package repository

import (
	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/student/domain"
	"gorm.io/gorm"
)

type GormStudentRepository struct {
	db *gorm.DB
}

func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

func (r *GormStudentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Student{})
}

func (r *GormStudentRepository) Create(student *domain.Student, entry *activity.Log) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&domain.Student{}).
			Where("roll_number = ?", student.RollNumber).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return domain.ErrDuplicateRollNumber
		}

		// Email is optional but unique when present.
		if student.Email != "" {
			if err := tx.Model(&domain.Student{}).
				Where("email = ?", student.Email).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				return domain.ErrDuplicateEmail
			}
		}

		if err := tx.Create(student).Error; err != nil {
			return err
		}
		if entry != nil {
			return tx.Create(entry).Error
		}
		return nil
	})
}

func (r *GormStudentRepository) FindByID(id uint) (*domain.Student, error) {
	var student domain.Student
	err := r.db.First(&student, id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *GormStudentRepository) FindByRollNumber(rollNumber string) (*domain.Student, error) {
	var student domain.Student
	err := r.db.Where("roll_number = ?", rollNumber).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *GormStudentRepository) FindAll(limit, offset int) ([]domain.Student, error) {
	var students []domain.Student
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&students).Error
	return students, err
}

func (r *GormStudentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Student{}).Count(&count).Error
	return count, err
}
