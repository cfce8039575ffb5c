package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/carmen-hq/carmen/internal/application/cluster/dto"
	domainCluster "github.com/carmen-hq/carmen/internal/domain/cluster"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/utils"
)

// CreateClusterUseCase creates a new cluster with a unique code.
type CreateClusterUseCase struct {
	clusterRepo domainCluster.Repository
	logger      logger.Interface
}

func NewCreateClusterUseCase(clusterRepo domainCluster.Repository, logger logger.Interface) *CreateClusterUseCase {
	return &CreateClusterUseCase{
		clusterRepo: clusterRepo,
		logger:      logger,
	}
}

func (uc *CreateClusterUseCase) Execute(ctx context.Context, request dto.CreateClusterRequest, actorID uint) (*dto.ClusterResponse, error) {
	uc.logger.Infow("executing create cluster use case", "code", request.Code)

	code := strings.ToUpper(strings.TrimSpace(request.Code))
	if !utils.IsValidCode(code) {
		return nil, errors.NewValidationError("cluster code must contain only letters, digits, hyphen and underscore")
	}

	existing, err := uc.clusterRepo.GetByCode(ctx, code)
	if err != nil {
		uc.logger.Errorw("failed to check cluster code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to check cluster code: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(fmt.Sprintf("cluster code %q already exists", code))
	}

	entity := &domainCluster.Cluster{
		Code:        code,
		Name:        strings.TrimSpace(request.Name),
		Description: utils.SanitizeText(request.Description),
		IsActive:    true,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
	}
	if request.IsActive != nil {
		entity.IsActive = *request.IsActive
	}

	if err := uc.clusterRepo.Create(ctx, entity); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError(fmt.Sprintf("cluster code %q already exists", code))
		}
		uc.logger.Errorw("failed to create cluster", "code", code, "error", err)
		return nil, fmt.Errorf("failed to create cluster: %w", err)
	}

	uc.logger.Infow("cluster created", "id", entity.ID, "code", entity.Code)
	return dto.ClusterResponseFromEntity(entity), nil
}
