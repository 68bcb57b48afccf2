package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Column Mismatch Report Usage:

Compares the columns that exist in the database with the columns the Go models map.

1. Set the environment variable: GENERATE_COLUMN_REPORT=true
2. Run the application: go run .

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - legacy_thumbnail

--- Table: tags ---
All columns are accounted for in the model.

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// All lists every persisted model, join rows included, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tag{},
		&TechStack{},
		&Skill{},
		&Project{},
		&ProjectTag{},
		&ProjectTechStack{},
		&Message{},
		&Category{},
		&Blog{},
		&BlogCategory{},
	}
}

// GenerateModels migrates the schema and writes typed query helpers to ./generated.
func GenerateModels(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	migrateDB := db.Session(&gorm.Session{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(migrateDB)
	g.ApplyBasic(All()...)

	fmt.Println("Migrating models...")
	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("migrate models: %w", err)
	}
	fmt.Println("Database migration completed successfully!")

	if err := WriteColumnReport(os.Stdout, db); err != nil {
		return err
	}

	g.Execute()
	fmt.Println("Model generation complete!")
	return nil
}

// TableReport lists database columns that no model field maps to.
type TableReport struct {
	Table    string
	Exists   bool
	Unmapped []string
}

// ColumnReport inspects every model table and returns its unmapped columns.
func ColumnReport(db *gorm.DB) ([]TableReport, error) {
	var reports []TableReport
	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}

		report := TableReport{Table: stmt.Schema.Table}
		if !db.Migrator().HasTable(model) {
			reports = append(reports, report)
			continue
		}
		report.Exists = true

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", stmt.Schema.Table, err)
		}

		mapped := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			mapped[name] = true
		}
		for _, col := range columnTypes {
			if !mapped[col.Name()] {
				report.Unmapped = append(report.Unmapped, col.Name())
			}
		}
		sort.Strings(report.Unmapped)
		reports = append(reports, report)
	}
	return reports, nil
}

// WriteColumnReport prints the column mismatch report in a human readable form.
func WriteColumnReport(w io.Writer, db *gorm.DB) error {
	reports, err := ColumnReport(db)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")
	total := 0
	for _, report := range reports {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", report.Table)
		switch {
		case !report.Exists:
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
		case len(report.Unmapped) > 0:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(report.Unmapped))
			for _, col := range report.Unmapped {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			total += len(report.Unmapped)
		default:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
	return nil
}
