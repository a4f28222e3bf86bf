// Package migration applies embedded schema migrations at startup.
package migration

import (
	"fmt"
	"sort"
	"time"

	auditdomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/audit/domain"
	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Run applies pending migrations. The SQL files target postgres; sqlite
// deployments (dev, tests) are migrated from the gorm models instead.
func Run(conn *gorm.DB) error {
	if conn.Dialector.Name() == "sqlite" {
		return conn.AutoMigrate(
			&invoicedomain.Invoice{},
			&auditdomain.AuditLog{},
			&billingEvent{},
		)
	}
	return runSQL(conn)
}

func runSQL(conn *gorm.DB) error {
	if err := conn.Exec(
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	).Error; err != nil {
		return err
	}

	entries, err := embeddedMigrations.ReadDir(migrationsDir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		var applied int64
		if err := conn.Raw(
			`SELECT COUNT(1) FROM schema_migrations WHERE name = ?`, name,
		).Scan(&applied).Error; err != nil {
			return err
		}
		if applied > 0 {
			continue
		}

		script, err := embeddedMigrations.ReadFile(migrationsDir + "/" + name)
		if err != nil {
			return err
		}

		err = conn.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(script)).Error; err != nil {
				return err
			}
			return tx.Exec(`INSERT INTO schema_migrations (name) VALUES (?)`, name).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}

// billingEvent mirrors the outbox table for sqlite auto-migration; the
// events package writes it with raw SQL.
type billingEvent struct {
	ID        snowflake.ID      `gorm:"primaryKey"`
	EventType string            `gorm:"type:text;not null"`
	Payload   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	DedupeKey *string           `gorm:"uniqueIndex"`
	Published bool              `gorm:"not null;default:false"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (billingEvent) TableName() string { return "billing_events" }
