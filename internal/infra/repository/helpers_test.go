package repository_test

import (
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/infra/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// テストごとに独立したインメモリDB
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), db.Options())
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func newProduct(name string, status model.ProductStatus, category model.Category, createdAt time.Time) model.Product {
	return model.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: name + " description",
		Status:      status,
		Price:       100,
		Images:      []string{"https://img/" + name + ".png"},
		Category:    category,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}
