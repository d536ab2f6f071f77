package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/angelmondragon/museum-cart/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(&Product{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestListActiveOrdersAndFilters(t *testing.T) {
	db := openTestDB(t)
	rows := []Product{
		{ID: "mug", Name: "Mug", UnitPrice: decimal.RequireFromString("14.50"), ImageRef: "mug.jpg", SortOrder: 20, IsActive: true},
		{ID: "print", Name: "Print", UnitPrice: decimal.RequireFromString("24.99"), ImageRef: "print.jpg", SortOrder: 10, IsActive: true},
		{ID: "retired", Name: "Retired", UnitPrice: decimal.RequireFromString("5.00"), ImageRef: "r.jpg", SortOrder: 5, IsActive: true},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Model(&Product{}).Where("id = ?", "retired").Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	got, err := NewRepository(db).ListActive(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 active products, got %d", len(got))
	}
	if got[0].ID != "print" || got[1].ID != "mug" {
		t.Fatalf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
	if !got[1].UnitPrice.Equal(decimal.RequireFromString("14.5")) {
		t.Fatalf("unexpected price %s", got[1].UnitPrice)
	}
}

func TestListActiveWrapsDatabaseErrors(t *testing.T) {
	db := openTestDB(t)
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	_, err := NewRepository(db).ListActive(context.Background())
	if err == nil {
		t.Fatal("expected error from closed db")
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
