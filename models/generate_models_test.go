package models

import (
	"bytes"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func TestColumnReport_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	reports, err := ColumnReport(db)
	if err != nil {
		t.Fatalf("ColumnReport: %v", err)
	}
	if len(reports) != len(All()) {
		t.Fatalf("expected %d reports, got %d", len(All()), len(reports))
	}
	for _, r := range reports {
		if r.Exists {
			t.Errorf("table %s should not exist before migration", r.Table)
		}
	}
}

func TestColumnReport_DetectsUnmappedColumn(t *testing.T) {
	db := openTestDB(t)
	if err := db.AutoMigrate(All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec("ALTER TABLE tags ADD COLUMN legacy_color text").Error; err != nil {
		t.Fatalf("alter: %v", err)
	}

	reports, err := ColumnReport(db)
	if err != nil {
		t.Fatalf("ColumnReport: %v", err)
	}

	for _, r := range reports {
		if !r.Exists {
			t.Errorf("table %s should exist after migration", r.Table)
		}
		if r.Table == "tags" {
			if len(r.Unmapped) != 1 || r.Unmapped[0] != "legacy_color" {
				t.Errorf("tags unmapped = %v, want [legacy_color]", r.Unmapped)
			}
		} else if len(r.Unmapped) != 0 {
			t.Errorf("table %s unexpected unmapped columns %v", r.Table, r.Unmapped)
		}
	}

	var buf bytes.Buffer
	if err := WriteColumnReport(&buf, db); err != nil {
		t.Fatalf("WriteColumnReport: %v", err)
	}
	if !strings.Contains(buf.String(), "Total mismatched columns across all tables: 1") {
		t.Errorf("unexpected report output:\n%s", buf.String())
	}
}
