package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/assignment/domain"
	product "github.com/adilet-dev/campus-inventory/internal/product/domain"
	student "github.com/adilet-dev/campus-inventory/internal/student/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&product.Product{},
		&student.Student{},
		&domain.Assignment{},
		&activity.Log{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, quantity int) *product.Product {
	t.Helper()
	p := &product.Product{Name: name, Category: "Electronics", Quantity: quantity, MinStockLevel: 5}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedStudent(t *testing.T, db *gorm.DB, name, roll string) *student.Student {
	t.Helper()
	s := &student.Student{FullName: name, RollNumber: roll, Department: "CS"}
	require.NoError(t, db.Create(s).Error)
	return s
}

func testActor() activity.Actor {
	return activity.Actor{Username: "admin", IP: "127.0.0.1"}
}

func countActions(t *testing.T, db *gorm.DB, action string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&activity.Log{}).Where("action = ?", action).Count(&n).Error)
	return n
}

func TestAssignDecrementsStock(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Laptop", 3)
	s := seedStudent(t, db, "Alice Smith", "CS-001")

	result, err := repo.Assign(s.ID, p.ID, false, testActor())
	require.NoError(t, err)
	assert.Equal(t, 2, result.RemainingQuantity)
	assert.NotZero(t, result.AssignmentID)

	var got product.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 2, got.Quantity)
	assert.False(t, got.IsAssigned)

	var a domain.Assignment
	require.NoError(t, db.First(&a, result.AssignmentID).Error)
	assert.Equal(t, domain.StatusAssigned, a.Status)
	assert.Equal(t, p.ID, a.ProductID)
	assert.Equal(t, s.ID, a.StudentID)
	assert.Nil(t, a.ReturnedDate)

	var holder student.Student
	require.NoError(t, db.First(&holder, s.ID).Error)
	require.NotNil(t, holder.ProductID)
	assert.Equal(t, p.ID, *holder.ProductID)
	assert.NotNil(t, holder.AssignmentDate)
	assert.Nil(t, holder.ReturnDate)

	assert.EqualValues(t, 1, countActions(t, db, activity.ActionAssignProduct))
}

func TestAssignLastUnitMarksAssigned(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Projector", 1)
	s := seedStudent(t, db, "Bob Jones", "CS-002")

	result, err := repo.Assign(s.ID, p.ID, false, testActor())
	require.NoError(t, err)
	assert.Equal(t, 0, result.RemainingQuantity)

	var got product.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 0, got.Quantity)
	assert.True(t, got.IsAssigned)
}

func TestAssignOutOfStockLeavesNoTrace(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Camera", 0)
	s := seedStudent(t, db, "Carol White", "CS-003")

	_, err := repo.Assign(s.ID, p.ID, false, testActor())
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	var got product.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 0, got.Quantity)

	var rows int64
	require.NoError(t, db.Model(&domain.Assignment{}).Count(&rows).Error)
	assert.Zero(t, rows)
	assert.Zero(t, countActions(t, db, activity.ActionAssignProduct))

	var holder student.Student
	require.NoError(t, db.First(&holder, s.ID).Error)
	assert.Nil(t, holder.ProductID)
}

func TestAssignSecondTimeAfterLastUnit(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Tablet", 1)
	s1 := seedStudent(t, db, "Dan Brown", "CS-004")
	s2 := seedStudent(t, db, "Eve Green", "CS-005")

	_, err := repo.Assign(s1.ID, p.ID, false, testActor())
	require.NoError(t, err)

	_, err = repo.Assign(s2.ID, p.ID, false, testActor())
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestAssignStudentNotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Monitor", 2)

	_, err := repo.Assign(999, p.ID, false, testActor())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestAssignProductNotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	s := seedStudent(t, db, "Frank Black", "CS-006")

	_, err := repo.Assign(s.ID, 999, false, testActor())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestAssignHolderConflict(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p1 := seedProduct(t, db, "Keyboard", 5)
	p2 := seedProduct(t, db, "Mouse", 5)
	s := seedStudent(t, db, "Grace Lee", "CS-007")

	_, err := repo.Assign(s.ID, p1.ID, false, testActor())
	require.NoError(t, err)

	_, err = repo.Assign(s.ID, p2.ID, false, testActor())
	assert.ErrorIs(t, err, domain.ErrHolderConflict)

	// Force pushes the second loan through anyway.
	result, err := repo.Assign(s.ID, p2.ID, true, testActor())
	require.NoError(t, err)
	assert.Equal(t, 4, result.RemainingQuantity)

	var holder student.Student
	require.NoError(t, db.First(&holder, s.ID).Error)
	require.NotNil(t, holder.ProductID)
	assert.Equal(t, p2.ID, *holder.ProductID)
}

func TestReturnRestoresStock(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Laptop", 1)
	s := seedStudent(t, db, "Henry Ford", "CS-008")

	result, err := repo.Assign(s.ID, p.ID, false, testActor())
	require.NoError(t, err)

	ret, err := repo.Return(s.ID, testActor())
	require.NoError(t, err)
	assert.Equal(t, p.ID, ret.ProductID)
	assert.Equal(t, 1, ret.Quantity)

	var got product.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 1, got.Quantity)
	assert.False(t, got.IsAssigned)

	var a domain.Assignment
	require.NoError(t, db.First(&a, result.AssignmentID).Error)
	assert.Equal(t, domain.StatusReturned, a.Status)
	assert.NotNil(t, a.ReturnedDate)

	var holder student.Student
	require.NoError(t, db.First(&holder, s.ID).Error)
	assert.Nil(t, holder.ProductID)
	assert.Nil(t, holder.AssignmentDate)
	assert.NotNil(t, holder.ReturnDate)

	assert.EqualValues(t, 1, countActions(t, db, activity.ActionReturnProduct))
}

func TestReturnWithoutActiveAssignment(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	s := seedStudent(t, db, "Ivy Chen", "CS-009")

	_, err := repo.Return(s.ID, testActor())
	assert.ErrorIs(t, err, domain.ErrNoActiveAssignment)
}

func TestReturnToleratesMissingAssignmentRow(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Scanner", 2)
	s := seedStudent(t, db, "Jack Ryan", "CS-010")

	// Simulate drifted data: the student points at a product without a
	// matching open assignment row.
	require.NoError(t, db.Model(&student.Student{}).
		Where("id = ?", s.ID).
		Update("product_id", p.ID).Error)

	ret, err := repo.Return(s.ID, testActor())
	require.NoError(t, err)
	assert.Equal(t, 3, ret.Quantity)

	var holder student.Student
	require.NoError(t, db.First(&holder, s.ID).Error)
	assert.Nil(t, holder.ProductID)
}

func TestReturnAfterProductDeleted(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Printer", 1)
	s := seedStudent(t, db, "Kate Bishop", "CS-011")

	_, err := repo.Assign(s.ID, p.ID, false, testActor())
	require.NoError(t, err)

	require.NoError(t, db.Delete(&product.Product{}, p.ID).Error)

	ret, err := repo.Return(s.ID, testActor())
	require.NoError(t, err)
	assert.Equal(t, 0, ret.Quantity)

	var holder student.Student
	require.NoError(t, db.First(&holder, s.ID).Error)
	assert.Nil(t, holder.ProductID)
}

func TestSingleUnitLifecycle(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Microscope", 1)
	s1 := seedStudent(t, db, "Leo Grant", "CS-012")
	s2 := seedStudent(t, db, "Mia Wong", "CS-013")

	_, err := repo.Assign(s1.ID, p.ID, false, testActor())
	require.NoError(t, err)

	_, err = repo.Assign(s2.ID, p.ID, false, testActor())
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	_, err = repo.Return(s1.ID, testActor())
	require.NoError(t, err)

	result, err := repo.Assign(s2.ID, p.ID, false, testActor())
	require.NoError(t, err)
	assert.Equal(t, 0, result.RemainingQuantity)

	open, err := repo.CountOpen()
	require.NoError(t, err)
	assert.EqualValues(t, 1, open)
}

func TestFindAllFilters(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Router", 5)
	s1 := seedStudent(t, db, "Nina Patel", "CS-014")
	s2 := seedStudent(t, db, "Omar Diaz", "CS-015")

	_, err := repo.Assign(s1.ID, p.ID, false, testActor())
	require.NoError(t, err)
	_, err = repo.Assign(s2.ID, p.ID, false, testActor())
	require.NoError(t, err)
	_, err = repo.Return(s1.ID, testActor())
	require.NoError(t, err)

	open, err := repo.FindAll(domain.ListFilter{Status: domain.StatusAssigned})
	require.NoError(t, err)
	assert.Len(t, open, 1)
	assert.Equal(t, s2.ID, open[0].StudentID)

	byStudent, err := repo.FindAll(domain.ListFilter{StudentID: s1.ID})
	require.NoError(t, err)
	assert.Len(t, byStudent, 1)
	assert.Equal(t, domain.StatusReturned, byStudent[0].Status)

	all, err := repo.FindAll(domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFindOverdue(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Oscilloscope", 3)
	s1 := seedStudent(t, db, "Pete Kim", "CS-016")
	s2 := seedStudent(t, db, "Quinn Adams", "CS-017")

	r1, err := repo.Assign(s1.ID, p.ID, false, testActor())
	require.NoError(t, err)
	_, err = repo.Assign(s2.ID, p.ID, false, testActor())
	require.NoError(t, err)

	// Age the first loan past the cutoff.
	old := time.Now().UTC().Add(-40 * 24 * time.Hour)
	require.NoError(t, db.Model(&domain.Assignment{}).
		Where("id = ?", r1.AssignmentID).
		Update("assigned_date", old).Error)

	overdue, err := repo.FindOverdue(time.Now().UTC().Add(-30 * 24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, s1.ID, overdue[0].StudentID)
}

func TestCountAssignedSince(t *testing.T) {
	db := setupDB(t)
	repo := NewGormAssignmentRepository(db)
	p := seedProduct(t, db, "Drone", 3)
	s1 := seedStudent(t, db, "Rita Moss", "CS-018")
	s2 := seedStudent(t, db, "Sam Hill", "CS-019")

	r1, err := repo.Assign(s1.ID, p.ID, false, testActor())
	require.NoError(t, err)
	_, err = repo.Assign(s2.ID, p.ID, false, testActor())
	require.NoError(t, err)

	old := time.Now().UTC().Add(-60 * 24 * time.Hour)
	require.NoError(t, db.Model(&domain.Assignment{}).
		Where("id = ?", r1.AssignmentID).
		Update("assigned_date", old).Error)

	count, err := repo.CountAssignedSince(time.Now().UTC().Add(-30 * 24 * time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
