package command

import (
	"fmt"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/student/domain"
)

// CreateStudentCommand represents the command to register a student
type CreateStudentCommand struct {
	FullName   string
	RollNumber string
	Department string
	Email      string
	Phone      string
	Actor      activity.Actor
}

// CreateStudentHandler handles student registration command
type CreateStudentHandler struct {
	repo domain.StudentRepository
}

// NewCreateStudentHandler creates a new create student handler
func NewCreateStudentHandler(repo domain.StudentRepository) *CreateStudentHandler {
	return &CreateStudentHandler{repo: repo}
}

// Handle executes the create student command
func (h *CreateStudentHandler) Handle(cmd CreateStudentCommand) (*domain.Student, error) {
	if cmd.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if cmd.RollNumber == "" {
		return nil, fmt.Errorf("roll number is required")
	}
	if cmd.Department == "" {
		return nil, fmt.Errorf("department is required")
	}

	student := &domain.Student{
		FullName:   cmd.FullName,
		RollNumber: cmd.RollNumber,
		Department: cmd.Department,
		Email:      cmd.Email,
		Phone:      cmd.Phone,
	}

	entry := activity.NewLog(cmd.Actor, activity.ActionAddStudent,
		fmt.Sprintf("Added student: %s", cmd.FullName))

	if err := h.repo.Create(student, entry); err != nil {
		return nil, err
	}

	return student, nil
}
