package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/wellness-booking/internal/config"
	"github.com/BruksfildServices01/wellness-booking/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Specialist{},
		&models.Service{},
		&models.User{},
		&models.WeeklySchedule{},
		&models.WorkDay{},
		&models.LunchBreak{},
		&models.VacationRange{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	db.Exec(`
        UPDATE specialists
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.DefaultTimezone)

	// Two occupying appointments of one specialist may not overlap; the
	// half-open range matches the availability overlap rule.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Warn("btree_gist extension unavailable, relying on row locks only", zap.Error(err))
		return db
	}
	if err := db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    specialist_id WITH =,
                    tstzrange(start_time, end_time, '[)') WITH &&
                ) WHERE (status NOT IN ('cancelled', 'archived'));
            END IF;
        END $$;
    `).Error; err != nil {
		log.Warn("failed to create overlap constraint", zap.Error(err))
	}

	return db
}
