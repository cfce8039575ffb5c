package migrate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	domainBU "github.com/carmen-hq/carmen/internal/domain/businessunit"
	domainCluster "github.com/carmen-hq/carmen/internal/domain/cluster"
	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/infrastructure/auth"
	"github.com/carmen-hq/carmen/internal/infrastructure/config"
	"github.com/carmen-hq/carmen/internal/infrastructure/repository"
	"github.com/carmen-hq/carmen/internal/shared/constants"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

// seedFile is the on-disk shape of configs/seed.yaml.
type seedFile struct {
	Users []struct {
		Username     string `yaml:"username"`
		Email        string `yaml:"email"`
		Password     string `yaml:"password"`
		PlatformRole string `yaml:"platform_role"`
		FirstName    string `yaml:"first_name"`
		LastName     string `yaml:"last_name"`
	} `yaml:"users"`
	Clusters []struct {
		Code          string `yaml:"code"`
		Name          string `yaml:"name"`
		Description   string `yaml:"description"`
		BusinessUnits []struct {
			Code string `yaml:"code"`
			Name string `yaml:"name"`
			IsHQ bool   `yaml:"is_hq"`
		} `yaml:"business_units"`
	} `yaml:"clusters"`
}

// seed creates everything the file names that is not already present.
// Existing rows are left untouched, so reseeding is safe.
func seed(db *gorm.DB, path string, log logger.Interface) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db, log)
	clusterRepo := repository.NewClusterRepository(db, log)
	buRepo := repository.NewBusinessUnitRepository(db, log)
	hasher := auth.NewBcryptPasswordHasher(config.Get().Auth.Password.BcryptCost)

	for _, u := range file.Users {
		existing, err := userRepo.GetByUsername(ctx, u.Username)
		if err != nil {
			return fmt.Errorf("failed to check user %s: %w", u.Username, err)
		}
		if existing != nil {
			log.Debugw("seed user already exists", "username", u.Username)
			continue
		}

		role := u.PlatformRole
		if role == "" {
			role = constants.RoleUser
		}
		if !constants.IsValidPlatformRole(role) {
			return fmt.Errorf("seed user %s has unknown platform role %q", u.Username, role)
		}

		hash, err := hasher.Hash(u.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.Username, err)
		}

		if err := userRepo.Create(ctx, &domainUser.User{
			Username:     strings.ToLower(u.Username),
			Email:        strings.ToLower(u.Email),
			PlatformRole: role,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			IsActive:     true,
			PasswordHash: hash,
		}); err != nil {
			return fmt.Errorf("failed to create seed user %s: %w", u.Username, err)
		}
		log.Infow("seeded user", "username", u.Username, "role", role)
	}

	for _, c := range file.Clusters {
		code := strings.ToUpper(c.Code)
		clusterEntity, err := clusterRepo.GetByCode(ctx, code)
		if err != nil {
			return fmt.Errorf("failed to check cluster %s: %w", code, err)
		}
		if clusterEntity == nil {
			clusterEntity = &domainCluster.Cluster{
				Code:        code,
				Name:        c.Name,
				Description: c.Description,
				IsActive:    true,
			}
			if err := clusterRepo.Create(ctx, clusterEntity); err != nil {
				return fmt.Errorf("failed to create seed cluster %s: %w", code, err)
			}
			log.Infow("seeded cluster", "code", code)
		}

		for _, bu := range c.BusinessUnits {
			buCode := strings.ToUpper(bu.Code)
			existing, err := buRepo.GetByCode(ctx, clusterEntity.ID, buCode)
			if err != nil {
				return fmt.Errorf("failed to check business unit %s: %w", buCode, err)
			}
			if existing != nil {
				continue
			}

			if err := buRepo.Create(ctx, &domainBU.BusinessUnit{
				ClusterID:         clusterEntity.ID,
				Code:              buCode,
				Name:              bu.Name,
				IsHQ:              bu.IsHQ,
				IsActive:          true,
				CalculationMethod: constants.CalculationMethodFIFO,
			}); err != nil {
				return fmt.Errorf("failed to create seed business unit %s: %w", buCode, err)
			}
			log.Infow("seeded business unit", "cluster", code, "code", buCode)
		}
	}

	log.Info("seeding completed")
	return nil
}
