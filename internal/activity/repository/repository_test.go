package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adilet-dev/campus-inventory/internal/activity/domain"
	"github.com/adilet-dev/campus-inventory/internal/activity/usecase/query"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Log{}))
	return db
}

func seedLogs(t *testing.T, db *gorm.DB, n int, action string) {
	t.Helper()
	base := time.Now().UTC().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		log := &domain.Log{
			Action:    action,
			Details:   fmt.Sprintf("entry %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			IPAddress: "127.0.0.1",
		}
		require.NoError(t, db.Create(log).Error)
	}
}

func TestFindAllNewestFirst(t *testing.T) {
	db := setupDB(t)
	repo := NewGormLogRepository(db)
	seedLogs(t, db, 3, domain.ActionLogin)

	logs, err := repo.FindAll(10, 0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "entry 2", logs[0].Details)
	assert.Equal(t, "entry 0", logs[2].Details)
}

func TestFindByAction(t *testing.T) {
	db := setupDB(t)
	repo := NewGormLogRepository(db)
	seedLogs(t, db, 2, domain.ActionLogin)
	seedLogs(t, db, 3, domain.ActionAssignProduct)

	logs, err := repo.FindByAction(domain.ActionAssignProduct, 10, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 3)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
}

func TestListActivityPagination(t *testing.T) {
	db := setupDB(t)
	repo := NewGormLogRepository(db)
	seedLogs(t, db, 25, domain.ActionUpdateProduct)

	handler := query.NewListActivityHandler(repo)

	page1, err := handler.Handle(query.ListActivityQuery{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Len(t, page1.Logs, 10)
	assert.EqualValues(t, 25, page1.Total)
	assert.Equal(t, "entry 24", page1.Logs[0].Details)

	page3, err := handler.Handle(query.ListActivityQuery{Page: 3, Size: 10})
	require.NoError(t, err)
	assert.Len(t, page3.Logs, 5)
	assert.Equal(t, "entry 0", page3.Logs[4].Details)
}

func TestListActivityDefaults(t *testing.T) {
	db := setupDB(t)
	repo := NewGormLogRepository(db)
	seedLogs(t, db, 30, domain.ActionLogin)

	handler := query.NewListActivityHandler(repo)

	// Zero and out-of-range paging inputs fall back to page 1, size 20.
	result, err := handler.Handle(query.ListActivityQuery{Page: 0, Size: 500})
	require.NoError(t, err)
	assert.Len(t, result.Logs, 20)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Size)
}
