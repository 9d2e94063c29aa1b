package postgres

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crm-admin.backend/internal/domain/entities"
	"crm-admin.backend/internal/infrastructure/models"
)

// Migrate creates the schema, the open-session index and the role rows
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.AdminProfile{},
		&models.SalesPersonProfile{},
		&models.SalesPersonTimeTracking{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	openSession := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (users_id) WHERE active = '%s'",
		models.OpenSessionIndex, models.SalesPersonTimeTracking{}.TableName(), entities.SessionActive,
	)
	if err := db.Exec(openSession).Error; err != nil {
		return fmt.Errorf("failed to create open session index: %w", err)
	}

	return SeedRoles(db)
}

// SeedRoles inserts the fixed role rows, leaving existing rows alone
func SeedRoles(db *gorm.DB) error {
	now := time.Now()
	rows := make([]models.Role, 0, len(entities.AllRoles))
	for _, r := range entities.AllRoles {
		rows = append(rows, models.Role{
			ID:          int64(r),
			Role:        r.String(),
			Description: r.Description(),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	return nil
}
