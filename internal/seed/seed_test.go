package seed

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkravtsov/storefront/internal/db"
	"github.com/mkravtsov/storefront/internal/hash"
	"github.com/mkravtsov/storefront/internal/models"
)

func TestRunIsIdempotent(t *testing.T) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	ctx := context.Background()
	require.NoError(t, Run(ctx, gormDB))
	require.NoError(t, Run(ctx, gormDB))

	var productCount, categoryCount int64
	gormDB.Model(&models.Product{}).Count(&productCount)
	gormDB.Model(&models.Category{}).Count(&categoryCount)
	require.EqualValues(t, len(products), productCount)
	require.EqualValues(t, len(categories), categoryCount)

	var admin models.User
	require.NoError(t, gormDB.Where("email = ?", adminEmail).First(&admin).Error)
	require.Equal(t, models.RoleAdmin, admin.Role)
	require.True(t, hash.CheckPassword(admin.PasswordHash, adminPassword))

	var first models.Product
	require.NoError(t, gormDB.Order("id ASC").First(&first).Error)
	require.Equal(t, "iPhone 15", first.Name)
	require.InDelta(t, 999.99, first.Price, 0.001)
	require.EqualValues(t, 50, first.Stock)
	require.NotNil(t, first.CategoryID)
}
