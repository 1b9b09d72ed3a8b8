package repository

import (
	"github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"gorm.io/gorm"
)

type GormLogRepository struct {
	db *gorm.DB
}

func NewGormLogRepository(db *gorm.DB) *GormLogRepository {
	return &GormLogRepository{db: db}
}

func (r *GormLogRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Log{})
}

func (r *GormLogRepository) FindAll(limit, offset int) ([]domain.Log, error) {
	var logs []domain.Log
	err := r.db.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, err
}

func (r *GormLogRepository) FindByAction(action string, limit, offset int) ([]domain.Log, error) {
	var logs []domain.Log
	err := r.db.Where("action = ?", action).
		Order("timestamp DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, err
}

func (r *GormLogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Log{}).Count(&count).Error
	return count, err
}
