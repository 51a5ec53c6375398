package ddd

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type orderPlaced struct {
	EventId    string
	OccurredOn int64
	Amount     int
}

func (e *orderPlaced) String() string {
	return fmt.Sprintf("orderPlaced(%d)", e.Amount)
}

func (e *orderPlaced) GetEventId() string {
	return e.EventId
}

func (e *orderPlaced) GetOccurredOn() int64 {
	return e.OccurredOn
}

func (e *orderPlaced) SetEventId(id string) {
	e.EventId = id
}

func (e *orderPlaced) SetOccurredOn(ts int64) {
	e.OccurredOn = ts
}

type testOrder struct {
	MixModel
	AggregateManager `gorm:"-"`
	Amount           int
}

func (testOrder) TableName() string {
	return "orders"
}

func place(amount int) *testOrder {
	o := &testOrder{Amount: amount}
	o.RaiseEvent(&orderPlaced{Amount: amount})
	return o
}

type testFactory struct {
	db *gorm.DB
}

func (f *testFactory) LookupDB(ctx context.Context) (*gorm.DB, error) {
	return f.db.WithContext(ctx), nil
}

func (f *testFactory) LookupWriteDB(ctx context.Context) (*gorm.DB, error) {
	return f.db.WithContext(ctx), nil
}

func newTestFactory(t *testing.T) *testFactory {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&testOrder{}))
	return &testFactory{db: db}
}

func (f *testFactory) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&testOrder{}).Count(&n).Error)
	return n
}
