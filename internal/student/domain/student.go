package domain

import (
	"errors"
	"time"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
)

// Duplicate-identity errors surfaced by Create.
var (
	ErrDuplicateRollNumber = errors.New("roll number already exists")
	ErrDuplicateEmail      = errors.New("email already exists")
)

// Student represents a registered student who can borrow products.
// ProductID, AssignmentDate and ReturnDate are a denormalized projection
// of the student's current open assignment; the assignment rows stay the
// source of truth and the projection is updated in the same transaction.
type Student struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	FullName   string `json:"full_name" gorm:"size:100;not null"`
	RollNumber string `json:"roll_number" gorm:"size:20;uniqueIndex;not null"`
	Email      string `json:"email,omitempty" gorm:"size:120"`
	Phone      string `json:"phone,omitempty" gorm:"size:20"`
	Department string `json:"department,omitempty" gorm:"size:50;index"`

	ProductID      *uint      `json:"product_id,omitempty" gorm:"index"`
	AssignmentDate *time.Time `json:"assignment_date,omitempty"`
	ReturnDate     *time.Time `json:"return_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Student) TableName() string {
	return "students"
}

// HasActiveAssignment reports whether the student currently holds a product.
func (s *Student) HasActiveAssignment() bool {
	return s.ProductID != nil
}

// StudentRepository defines the contract for student data access.
type StudentRepository interface {
	Create(student *Student, entry *activity.Log) error
	FindByID(id uint) (*Student, error)
	FindByRollNumber(rollNumber string) (*Student, error)
	FindAll(limit, offset int) ([]Student, error)
	Count() (int64, error)
}
