package domain

import "time"

// Action tags recorded in the audit trail.
const (
	ActionLogin          = "login"
	ActionRegister       = "register"
	ActionAddProduct     = "add_product"
	ActionUpdateProduct  = "update_product"
	ActionUpdateQuantity = "update_quantity"
	ActionDeleteProduct  = "delete_product"
	ActionAddStudent     = "add_student"
	ActionAssignProduct  = "assign_product"
	ActionReturnProduct  = "return_product"
	ActionDeleteUser     = "delete_user"
)

// Log is one append-only audit record. Rows are written inside the same
// transaction as the state change they describe and are never updated
// or deleted afterwards.
type Log struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id,omitempty" gorm:"index"`
	Action    string    `json:"action" gorm:"size:100;not null;index"`
	Details   string    `json:"details" gorm:"type:text"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	IPAddress string    `json:"ip_address" gorm:"size:45"`
}

// TableName specifies the table name
func (Log) TableName() string {
	return "activity_logs"
}

// Actor identifies who performed an operation, for audit attribution.
// A zero Actor records an unattributed (system) action.
type Actor struct {
	UserID   *uint
	Username string
	IP       string
}

// NewLog builds an audit record for the given actor and action.
func NewLog(actor Actor, action, details string) *Log {
	return &Log{
		UserID:    actor.UserID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now().UTC(),
		IPAddress: actor.IP,
	}
}

// LogRepository defines the contract for reading the audit trail.
type LogRepository interface {
	FindAll(limit, offset int) ([]Log, error)
	FindByAction(action string, limit, offset int) ([]Log, error)
	Count() (int64, error)
}
