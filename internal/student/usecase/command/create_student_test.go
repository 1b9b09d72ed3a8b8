package command

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/student/domain"
	"github.com/adilet-dev/campus-inventory/internal/student/repository"
)

func setupRepo(t *testing.T) domain.StudentRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Student{}, &activity.Log{}))
	return repository.NewGormStudentRepository(db)
}

func TestCreateStudentValidation(t *testing.T) {
	repo := setupRepo(t)
	handler := NewCreateStudentHandler(repo)

	cases := []struct {
		name string
		cmd  CreateStudentCommand
	}{
		{"missing name", CreateStudentCommand{RollNumber: "CS-001", Department: "CS"}},
		{"missing roll number", CreateStudentCommand{FullName: "Alice Smith", Department: "CS"}},
		{"missing department", CreateStudentCommand{FullName: "Alice Smith", RollNumber: "CS-001"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(tc.cmd)
			assert.Error(t, err)
		})
	}
}

func TestCreateStudent(t *testing.T) {
	repo := setupRepo(t)
	handler := NewCreateStudentHandler(repo)

	s, err := handler.Handle(CreateStudentCommand{
		FullName:   "Alice Smith",
		RollNumber: "CS-001",
		Department: "CS",
		Email:      "alice@example.edu",
	})
	require.NoError(t, err)
	assert.NotZero(t, s.ID)
	assert.Nil(t, s.ProductID)

	_, err = handler.Handle(CreateStudentCommand{
		FullName:   "Copy Cat",
		RollNumber: "CS-001",
		Department: "CS",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateRollNumber)
}
