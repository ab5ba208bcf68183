package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/models"
)

// NewDB returns a migrated in-memory sqlite database that is closed with the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	ctx := context.Background()
	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err, "open in-memory db")
	require.NoError(t, db.Migrate(ctx, gdb))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func CreateProduct(t *testing.T, gdb *gorm.DB, name string, price int64) models.Product {
	t.Helper()

	p := models.Product{Name: name, Price: price}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}

func CreateCart(t *testing.T, gdb *gorm.DB) models.Cart {
	t.Helper()

	c := models.Cart{}
	require.NoError(t, gdb.Create(&c).Error)
	return c
}

func CreateUser(t *testing.T, gdb *gorm.DB, email string) models.User {
	t.Helper()

	u := models.User{Email: email, Name: "test user"}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}
