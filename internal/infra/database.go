package infra

import (
	"fmt"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. When migrate is
// true it runs AutoMigrate for every model and then applies the idempotent
// SQL patches GORM cannot express (partial indexes, check constraints).
func NewDatabase(dsn string, migrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if migrate {
		if err := RunMigrations(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// RunMigrations creates / updates all tables and applies schema patches.
// Also used by the integration tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() is built in from PG 13; pgcrypto covers older servers
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("extension pgcrypto: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Tenant{},
		&model.Credential{},
		&model.Profile{},
		&model.Justification{},
		&model.Reward{},
		&model.AssignmentRecord{},
		&model.RedemptionRecord{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL statements that AutoMigrate cannot
// handle on its own. Each statement is guarded so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// reconciler scans only pending rows
		{"partial index points_assigned pending", `
CREATE INDEX IF NOT EXISTS idx_points_assigned_pending
    ON points_assigned (created_at)
    WHERE status = 'pending'`},
		{"partial index redemptions pending", `
CREATE INDEX IF NOT EXISTS idx_redemptions_pending
    ON redemptions (created_at)
    WHERE status = 'pending'`},
		// history feed: employee_id + created_at DESC
		{"index points_assigned employee history", `
CREATE INDEX IF NOT EXISTS idx_points_assigned_employee_date
    ON points_assigned (employee_id, created_at DESC)`},
		{"index redemptions employee history", `
CREATE INDEX IF NOT EXISTS idx_redemptions_employee_date
    ON redemptions (employee_id, created_at DESC)`},
		{"check points_assigned amount non-zero", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_points_assigned_amount') THEN
    ALTER TABLE points_assigned ADD CONSTRAINT chk_points_assigned_amount CHECK (amount <> 0);
  END IF;
END $$`},
		{"check redemptions cost positive", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_redemptions_cost') THEN
    ALTER TABLE redemptions ADD CONSTRAINT chk_redemptions_cost CHECK (points_cost > 0);
  END IF;
END $$`},
		{"check rewards points_required positive", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_rewards_points_required') THEN
    ALTER TABLE rewards ADD CONSTRAINT chk_rewards_points_required CHECK (points_required > 0);
  END IF;
END $$`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
