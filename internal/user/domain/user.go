package domain

import (
	"time"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
)

// User represents an operator account. It exists for authentication and
// for attributing audit entries; it carries no inventory state.
type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Username  string     `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"size:128;not null"`
	IsAdmin   bool       `json:"is_admin" gorm:"not null;default:false"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// Actor converts the user into an audit actor for the given client IP.
func (u *User) Actor(ip string) activity.Actor {
	id := u.ID
	return activity.Actor{UserID: &id, Username: u.Username, IP: ip}
}

// UserRepository defines the contract for user data access.
type UserRepository interface {
	Create(user *User, entry *activity.Log) error
	FindByID(id uint) (*User, error)
	FindByUsername(username string) (*User, error)
	FindAll(limit, offset int) ([]User, error)
	TouchLastLogin(id uint, entry *activity.Log) error
	Delete(id uint, entry *activity.Log) error
	Count() (int64, error)
}
