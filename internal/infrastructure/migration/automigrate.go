package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/carmen-hq/carmen/internal/infrastructure/persistence/models"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

// AutoMigrateModels lists every model the schema covers, in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ClusterModel{},
		&models.BusinessUnitModel{},
		&models.UserModel{},
		&models.ClusterUserModel{},
		&models.BusinessUnitUserModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the model structs. Used in
// development only.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, modelList ...interface{}) error {
	if len(modelList) == 0 {
		modelList = AutoMigrateModels()
	}

	s.logger.Infow("starting auto migration", "models_count", len(modelList))

	if err := db.AutoMigrate(modelList...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	s.logger.Infow("auto migration completed successfully")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
