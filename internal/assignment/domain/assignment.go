package domain

import (
	"errors"
	"time"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
)

// Assignment status values. A returned assignment is terminal; loaning
// the product again creates a new row.
const (
	StatusAssigned = "assigned"
	StatusReturned = "returned"
)

// Business errors of the loan state machine.
var (
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrAlreadyAssigned    = errors.New("product is already assigned")
	ErrHolderConflict     = errors.New("student already holds a product; return it first")
	ErrNoActiveAssignment = errors.New("student has no product assigned")
)

// Assignment is a single loan record linking one product unit to one student.
type Assignment struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	ProductID    uint       `json:"product_id" gorm:"not null;index"`
	StudentID    uint       `json:"student_id" gorm:"not null;index"`
	AssignedDate time.Time  `json:"assigned_date" gorm:"not null;index"`
	ReturnedDate *time.Time `json:"returned_date,omitempty"`
	Status       string     `json:"status" gorm:"size:20;not null;default:'assigned';index"`
	Notes        string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TableName specifies the table name
func (Assignment) TableName() string {
	return "product_assignments"
}

// IsOpen reports whether the loan has not been returned yet.
func (a *Assignment) IsOpen() bool {
	return a.Status == StatusAssigned
}

// AssignResult is the outcome of a successful Assign.
type AssignResult struct {
	AssignmentID      uint `json:"assignment_id"`
	RemainingQuantity int  `json:"remaining_quantity"`
}

// ReturnResult is the outcome of a successful Return. Quantity is 0 when
// the product row no longer exists.
type ReturnResult struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"updated_quantity"`
}

// ListFilter narrows an assignment listing.
type ListFilter struct {
	StudentID uint
	ProductID uint
	Status    string
	Limit     int
	Offset    int
}

// AssignmentRepository is the loan state machine plus its read side.
// Assign and Return are single transactions covering the assignment row,
// the product counters, the student projection and the audit entry.
type AssignmentRepository interface {
	Assign(studentID, productID uint, force bool, actor activity.Actor) (*AssignResult, error)
	Return(studentID uint, actor activity.Actor) (*ReturnResult, error)

	FindByID(id uint) (*Assignment, error)
	FindAll(filter ListFilter) ([]Assignment, error)
	FindRecent(limit int) ([]Assignment, error)
	FindOverdue(before time.Time) ([]Assignment, error)
	CountOpen() (int64, error)
	CountAssignedSince(since time.Time) (int64, error)
}
