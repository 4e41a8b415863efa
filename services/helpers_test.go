package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/coffee-store/database"
	"github.com/yeremiapane/coffee-store/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	db      *gorm.DB
	coffees *CoffeeService
	carts   *CartService
	orders  *OrderService

	coffee *models.Coffee
	small  models.Capacity
	large  models.Capacity
	oat    models.NonDairyAlternative
}

// newFixture seeds one coffee priced 3.00 offering Small, Large (+1.00) and Oat milk (+0.60).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	f := &fixture{db: db}
	f.small = models.Capacity{AddOnOption: models.AddOnOption{Name: "Small", Price: decimal.Zero}}
	f.large = models.Capacity{AddOnOption: models.AddOnOption{Name: "Large", Price: decimal.RequireFromString("1.00")}}
	f.oat = models.NonDairyAlternative{AddOnOption: models.AddOnOption{Name: "Oat Milk", Price: decimal.RequireFromString("0.60")}}
	require.NoError(t, db.Create(&f.small).Error)
	require.NoError(t, db.Create(&f.large).Error)
	require.NoError(t, db.Create(&f.oat).Error)

	blobs, err := NewLocalBlobService(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	f.coffees = NewCoffeeService(db, blobs)
	f.carts = NewCartService(db, f.coffees)
	f.orders = NewOrderService(db)

	f.coffee, err = f.coffees.AddNewCoffee(ctx, NewCoffeeRequest{
		Name:  "Latte",
		Price: decimal.RequireFromString("3.00"),
		AddOns: AddOnIDs{
			CapacityIDs:            []uint{f.small.ID, f.large.ID},
			NonDairyAlternativeIDs: []uint{f.oat.ID},
		},
	})
	require.NoError(t, err)
	return f
}

func ptr(id uint) *uint { return &id }

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}
