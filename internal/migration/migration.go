// Package migration applies embedded schema migrations in filename order,
// tracking applied versions in schema_migrations.
package migration

import (
	"embed"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const scriptsDir = "migrations"

//go:embed migrations/*.up.sql
var scripts embed.FS

type appliedMigration struct {
	Version   string    `gorm:"primaryKey"`
	AppliedAt time.Time `gorm:"not null"`
}

func (appliedMigration) TableName() string { return "schema_migrations" }

// Run applies every embedded migration that has not been applied yet. Each
// migration runs in its own transaction together with its version record.
func Run(db *gorm.DB, log *zap.Logger) error {
	log = log.Named("migration")

	if err := db.AutoMigrate(&appliedMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := scripts.ReadDir(scriptsDir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	applied := map[string]bool{}
	var rows []appliedMigration
	if err := db.Find(&rows).Error; err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}
	for _, row := range rows {
		applied[row.Version] = true
	}

	for _, name := range names {
		if applied[name] {
			continue
		}
		script, err := scripts.ReadFile(scriptsDir + "/" + name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(script)).Error; err != nil {
				return err
			}
			return tx.Create(&appliedMigration{
				Version:   name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
		log.Info("migration applied", zap.String("version", name))
	}
	return nil
}
