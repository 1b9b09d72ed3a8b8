package kafka

import "time"

// ProductAssignedEvent is emitted after a product is handed to a student.
type ProductAssignedEvent struct {
	EventID           string    `json:"event_id"`
	EventType         string    `json:"event_type"`
	AssignmentID      uint      `json:"assignment_id"`
	ProductID         uint      `json:"product_id"`
	StudentID         uint      `json:"student_id"`
	RemainingQuantity int       `json:"remaining_quantity"`
	Timestamp         time.Time `json:"timestamp"`
}

// ProductReturnedEvent is emitted after a student returns a product.
type ProductReturnedEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	ProductID       uint      `json:"product_id"`
	StudentID       uint      `json:"student_id"`
	UpdatedQuantity int       `json:"updated_quantity"`
	Timestamp       time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeProductAssigned = "product.assigned"
	EventTypeProductReturned = "product.returned"
)

// Kafka topics
const (
	TopicAssignments = "inventory-assignments"
)
