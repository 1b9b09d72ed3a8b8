package command

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	activity "github.com/adilet-dev/campus-inventory/internal/activity/domain"
	assignment "github.com/adilet-dev/campus-inventory/internal/assignment/domain"
	"github.com/adilet-dev/campus-inventory/internal/product/domain"
	"github.com/adilet-dev/campus-inventory/internal/product/repository"
)

func setupRepo(t *testing.T) (*gorm.DB, domain.ProductRepository) {
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
	return db, repository.NewGormProductRepository(db)
}

func TestCreateProductValidation(t *testing.T) {
	_, repo := setupRepo(t)
	handler := NewCreateProductHandler(repo)

	cases := []struct {
		name string
		cmd  CreateProductCommand
	}{
		{"missing name", CreateProductCommand{Category: "Electronics", Quantity: 1, MinStockLevel: 5}},
		{"missing category", CreateProductCommand{Name: "Laptop", Quantity: 1, MinStockLevel: 5}},
		{"negative quantity", CreateProductCommand{Name: "Laptop", Category: "Electronics", Quantity: -1, MinStockLevel: 5}},
		{"zero min stock", CreateProductCommand{Name: "Laptop", Category: "Electronics", Quantity: 1, MinStockLevel: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(tc.cmd)
			assert.Error(t, err)
		})
	}
}

func TestCreateProductStampsIssueDate(t *testing.T) {
	_, repo := setupRepo(t)
	handler := NewCreateProductHandler(repo)

	p, err := handler.Handle(CreateProductCommand{
		Name:          "Laptop",
		Category:      "Electronics",
		Quantity:      10,
		MinStockLevel: 5,
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.NotNil(t, p.DateOfIssue)
	assert.False(t, p.IsAssigned)
}

func TestUpdateProductAuditsQuantityChange(t *testing.T) {
	db, repo := setupRepo(t)
	create := NewCreateProductHandler(repo)
	update := NewUpdateProductHandler(repo)

	p, err := create.Handle(CreateProductCommand{
		Name:          "Laptop",
		Category:      "Electronics",
		Quantity:      10,
		MinStockLevel: 5,
	})
	require.NoError(t, err)

	_, err = update.Handle(UpdateProductCommand{
		ID:            p.ID,
		Name:          "Laptop",
		Category:      "Electronics",
		Quantity:      7,
		MinStockLevel: 5,
	})
	require.NoError(t, err)

	var n int64
	require.NoError(t, db.Model(&activity.Log{}).
		Where("action = ?", activity.ActionUpdateQuantity).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// Same quantity again: no extra quantity entry.
	_, err = update.Handle(UpdateProductCommand{
		ID:            p.ID,
		Name:          "Laptop Pro",
		Category:      "Electronics",
		Quantity:      7,
		MinStockLevel: 5,
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&activity.Log{}).
		Where("action = ?", activity.ActionUpdateQuantity).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestUpdateProductRestockClearsAssignedFlag(t *testing.T) {
	db, repo := setupRepo(t)
	update := NewUpdateProductHandler(repo)

	p := &domain.Product{Name: "Projector", Category: "Electronics", Quantity: 0, MinStockLevel: 5, IsAssigned: true}
	require.NoError(t, repo.Create(p, nil))

	got, err := update.Handle(UpdateProductCommand{
		ID:            p.ID,
		Name:          "Projector",
		Category:      "Electronics",
		Quantity:      4,
		MinStockLevel: 5,
	})
	require.NoError(t, err)
	assert.False(t, got.IsAssigned)

	var stored domain.Product
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.False(t, stored.IsAssigned)
	assert.Equal(t, 4, stored.Quantity)
}

func TestDeleteProductRecordsAudit(t *testing.T) {
	db, repo := setupRepo(t)
	create := NewCreateProductHandler(repo)
	del := NewDeleteProductHandler(repo)

	p, err := create.Handle(CreateProductCommand{
		Name:          "Scanner",
		Category:      "Electronics",
		Quantity:      2,
		MinStockLevel: 5,
	})
	require.NoError(t, err)

	require.NoError(t, del.Handle(DeleteProductCommand{ID: p.ID}))

	var n int64
	require.NoError(t, db.Model(&activity.Log{}).
		Where("action = ?", activity.ActionDeleteProduct).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
