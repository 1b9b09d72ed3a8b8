package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	product "github.com/adilet-dev/campus-inventory/internal/product/domain"
	student "github.com/adilet-dev/campus-inventory/internal/student/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&product.Product{}, &student.Student{}))
	return db
}

func TestTotalQuantity(t *testing.T) {
	db := setupDB(t)
	repo := NewGormReportRepository(db)

	// Empty table sums to zero, not an error.
	total, err := repo.TotalQuantity()
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	for _, p := range []product.Product{
		{Name: "Laptop", Category: "Electronics", Quantity: 10, MinStockLevel: 5},
		{Name: "Mouse", Category: "Electronics", Quantity: 25, MinStockLevel: 5},
		{Name: "Notebook", Category: "Stationery", Quantity: 3, MinStockLevel: 5},
	} {
		require.NoError(t, db.Create(&p).Error)
	}

	total, err = repo.TotalQuantity()
	require.NoError(t, err)
	assert.EqualValues(t, 38, total)

	low, err := repo.CountLowStock()
	require.NoError(t, err)
	assert.EqualValues(t, 1, low)
}

func TestProductsByCategory(t *testing.T) {
	db := setupDB(t)
	repo := NewGormReportRepository(db)

	for _, p := range []product.Product{
		{Name: "Laptop", Category: "Electronics", Quantity: 1, MinStockLevel: 1},
		{Name: "Mouse", Category: "Electronics", Quantity: 1, MinStockLevel: 1},
		{Name: "Notebook", Category: "Stationery", Quantity: 1, MinStockLevel: 1},
	} {
		require.NoError(t, db.Create(&p).Error)
	}

	rows, err := repo.ProductsByCategory()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Electronics", rows[0].Category)
	assert.EqualValues(t, 2, rows[0].Count)
}

func TestStudentsByDepartment(t *testing.T) {
	db := setupDB(t)
	repo := NewGormReportRepository(db)

	for _, s := range []student.Student{
		{FullName: "Alice Smith", RollNumber: "CS-001", Department: "CS"},
		{FullName: "Bob Jones", RollNumber: "CS-002", Department: "CS"},
		{FullName: "Carol White", RollNumber: "EE-001", Department: "EE"},
		{FullName: "Dan Brown", RollNumber: "XX-001", Department: ""},
	} {
		require.NoError(t, db.Create(&s).Error)
	}

	rows, err := repo.StudentsByDepartment()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CS", rows[0].Department)
	assert.EqualValues(t, 2, rows[0].Count)
}
