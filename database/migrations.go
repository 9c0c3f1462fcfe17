package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gorm.io/gorm"

	"folio/models"
)

// RunMigrations applies every pending .sql file in dir, in name order.
// Applied files are tracked in the migrations ledger table; each file runs
// inside its own transaction, and the first failure aborts the whole run so
// later files are never attempted on a half-migrated schema.
func RunMigrations(db *gorm.DB, dir string) error {
	log.Println("Running database migrations...")

	if err := db.AutoMigrate(&models.Migration{}); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	files, err := migrationFiles(dir)
	if err != nil {
		return err
	}

	pending := 0
	for _, name := range files {
		if applied[name] {
			continue
		}
		pending++

		sql, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		log.Println("Applying migration:", name)
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(sql)).Error; err != nil {
				return err
			}
			return tx.Create(&models.Migration{Name: name}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", name, err)
		}
	}

	if pending == 0 {
		log.Println("No pending migrations")
	} else {
		log.Printf("Applied %d migration(s)", pending)
	}
	return nil
}

func appliedMigrations(db *gorm.DB) (map[string]bool, error) {
	var names []string
	if err := db.Model(&models.Migration{}).Order("id").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("reading migration ledger: %w", err)
	}

	applied := make(map[string]bool, len(names))
	for _, name := range names {
		applied[name] = true
	}
	return applied, nil
}

func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations dir %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}
