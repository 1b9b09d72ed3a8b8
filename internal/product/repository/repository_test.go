package repository

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	assignment "github.com/adilet-dev/campus-inventory/internal/assignment/domain"
	"github.com/adilet-dev/campus-inventory/internal/product/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Product{},
		&assignment.Assignment{},
		&activity.Log{},
	))
	return db
}

func testActor() activity.Actor {
	return activity.Actor{Username: "admin", IP: "127.0.0.1"}
}

func TestCreateWritesAuditEntry(t *testing.T) {
	db := setupDB(t)
	repo := NewGormProductRepository(db)

	p := &domain.Product{Name: "Laptop", Category: "Electronics", Quantity: 10, MinStockLevel: 5}
	entry := activity.NewLog(testActor(), activity.ActionAddProduct, "Added product: Laptop")
	require.NoError(t, repo.Create(p, entry))
	assert.NotZero(t, p.ID)

	var n int64
	require.NoError(t, db.Model(&activity.Log{}).
		Where("action = ?", activity.ActionAddProduct).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestDeleteBlockedByOpenAssignment(t *testing.T) {
	db := setupDB(t)
	repo := NewGormProductRepository(db)

	p := &domain.Product{Name: "Projector", Category: "Electronics", Quantity: 1, MinStockLevel: 5}
	require.NoError(t, repo.Create(p, nil))

	require.NoError(t, db.Create(&assignment.Assignment{
		ProductID:    p.ID,
		StudentID:    1,
		AssignedDate: time.Now().UTC(),
		Status:       assignment.StatusAssigned,
	}).Error)

	err := repo.Delete(p.ID, nil)
	assert.ErrorIs(t, err, domain.ErrHasOpenAssignments)

	// The row must survive the refused delete.
	_, err = repo.FindByID(p.ID)
	assert.NoError(t, err)
}

func TestDeleteAllowedAfterReturn(t *testing.T) {
	db := setupDB(t)
	repo := NewGormProductRepository(db)

	p := &domain.Product{Name: "Camera", Category: "Electronics", Quantity: 1, MinStockLevel: 5}
	require.NoError(t, repo.Create(p, nil))

	returned := time.Now().UTC()
	require.NoError(t, db.Create(&assignment.Assignment{
		ProductID:    p.ID,
		StudentID:    1,
		AssignedDate: returned.Add(-time.Hour),
		ReturnedDate: &returned,
		Status:       assignment.StatusReturned,
	}).Error)

	entry := activity.NewLog(testActor(), activity.ActionDeleteProduct, "Deleted product: Camera")
	require.NoError(t, repo.Delete(p.ID, entry))

	_, err := repo.FindByID(p.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Closed assignment rows stay behind for the audit trail.
	var rows int64
	require.NoError(t, db.Model(&assignment.Assignment{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestDeleteMissingProduct(t *testing.T) {
	db := setupDB(t)
	repo := NewGormProductRepository(db)

	err := repo.Delete(42, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindLowStock(t *testing.T) {
	db := setupDB(t)
	repo := NewGormProductRepository(db)

	for _, p := range []*domain.Product{
		{Name: "Pens", Category: "Stationery", Quantity: 100, MinStockLevel: 10},
		{Name: "Markers", Category: "Stationery", Quantity: 3, MinStockLevel: 5},
		{Name: "Erasers", Category: "Stationery", Quantity: 5, MinStockLevel: 5},
	} {
		require.NoError(t, repo.Create(p, nil))
	}

	low, err := repo.FindLowStock(0)
	require.NoError(t, err)
	require.Len(t, low, 2)
	// Scarcest first.
	assert.Equal(t, "Markers", low[0].Name)
	assert.Equal(t, "Erasers", low[1].Name)
}

func TestFindByCategory(t *testing.T) {
	db := setupDB(t)
	repo := NewGormProductRepository(db)

	for _, p := range []*domain.Product{
		{Name: "Laptop", Category: "Electronics", Quantity: 5, MinStockLevel: 2},
		{Name: "Notebook", Category: "Stationery", Quantity: 50, MinStockLevel: 10},
	} {
		require.NoError(t, repo.Create(p, nil))
	}

	got, err := repo.FindByCategory("Electronics", 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Laptop", got[0].Name)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
