package domain

import (
	"errors"
	"time"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
)

// ErrHasOpenAssignments is returned when a product cannot be deleted
// because at least one loan of it is still open.
var ErrHasOpenAssignments = errors.New("product has open assignments")

// Product represents a stocked item that can be loaned to students.
type Product struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Name          string     `json:"name" gorm:"size:100;not null"`
	Category      string     `json:"category" gorm:"size:50;index"`
	Description   string     `json:"description" gorm:"type:text"`
	Quantity      int        `json:"quantity" gorm:"not null;default:0"`
	MinStockLevel int        `json:"min_stock_level" gorm:"not null;default:5"`
	DateOfIssue   *time.Time `json:"date_of_issue,omitempty"`
	IsAssigned    bool       `json:"is_assigned" gorm:"not null;default:false"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether quantity sits at or below the configured
// minimum. Derived on read, never stored.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStockLevel
}

// ProductRepository defines the contract for product data access.
// Mutating methods write the given audit entry in the same transaction
// as the change itself.
type ProductRepository interface {
	Create(product *Product, entry *activity.Log) error
	Update(product *Product, entries ...*activity.Log) error
	Delete(id uint, entry *activity.Log) error
	FindByID(id uint) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	FindByCategory(category string, limit, offset int) ([]Product, error)
	FindLowStock(limit int) ([]Product, error)
	Count() (int64, error)
}
