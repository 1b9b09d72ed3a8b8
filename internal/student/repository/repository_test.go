package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/student/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Student{}, &activity.Log{}))
	return db
}

func TestCreateRejectsDuplicateRollNumber(t *testing.T) {
	db := setupDB(t)
	repo := NewGormStudentRepository(db)

	first := &domain.Student{FullName: "Alice Smith", RollNumber: "CS-001", Department: "CS"}
	require.NoError(t, repo.Create(first, nil))

	dup := &domain.Student{FullName: "Someone Else", RollNumber: "CS-001", Department: "EE"}
	err := repo.Create(dup, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateRollNumber)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	db := setupDB(t)
	repo := NewGormStudentRepository(db)

	first := &domain.Student{FullName: "Alice Smith", RollNumber: "CS-001", Email: "alice@example.edu"}
	require.NoError(t, repo.Create(first, nil))

	dup := &domain.Student{FullName: "Bob Jones", RollNumber: "CS-002", Email: "alice@example.edu"}
	err := repo.Create(dup, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	// Missing emails never collide.
	s1 := &domain.Student{FullName: "Carol White", RollNumber: "CS-003"}
	s2 := &domain.Student{FullName: "Dan Brown", RollNumber: "CS-004"}
	require.NoError(t, repo.Create(s1, nil))
	require.NoError(t, repo.Create(s2, nil))
}

func TestCreateWritesAuditEntry(t *testing.T) {
	db := setupDB(t)
	repo := NewGormStudentRepository(db)

	actor := activity.Actor{Username: "admin", IP: "127.0.0.1"}
	s := &domain.Student{FullName: "Bob Jones", RollNumber: "CS-002", Department: "CS"}
	entry := activity.NewLog(actor, activity.ActionAddStudent, "Added student: Bob Jones")
	require.NoError(t, repo.Create(s, entry))

	var n int64
	require.NoError(t, db.Model(&activity.Log{}).
		Where("action = ?", activity.ActionAddStudent).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestFindByRollNumber(t *testing.T) {
	db := setupDB(t)
	repo := NewGormStudentRepository(db)

	s := &domain.Student{FullName: "Carol White", RollNumber: "EE-100", Department: "EE"}
	require.NoError(t, repo.Create(s, nil))

	got, err := repo.FindByRollNumber("EE-100")
	require.NoError(t, err)
	assert.Equal(t, "Carol White", got.FullName)
	assert.False(t, got.HasActiveAssignment())

	_, err = repo.FindByRollNumber("EE-999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
