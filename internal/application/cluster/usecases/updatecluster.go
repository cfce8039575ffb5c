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

type UpdateClusterUseCase struct {
	clusterRepo domainCluster.Repository
	logger      logger.Interface
}

func NewUpdateClusterUseCase(clusterRepo domainCluster.Repository, logger logger.Interface) *UpdateClusterUseCase {
	return &UpdateClusterUseCase{
		clusterRepo: clusterRepo,
		logger:      logger,
	}
}

func (uc *UpdateClusterUseCase) Execute(ctx context.Context, id uint, request dto.UpdateClusterRequest, actorID uint) (*dto.ClusterResponse, error) {
	uc.logger.Infow("executing update cluster use case", "id", id)

	entity, err := uc.clusterRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get cluster", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get cluster: %w", err)
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("cluster not found")
	}

	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name == "" {
			return nil, errors.NewValidationError("cluster name cannot be empty")
		}
		entity.Name = name
	}
	if request.Description != nil {
		entity.Description = utils.SanitizeText(*request.Description)
	}
	if request.IsActive != nil {
		entity.IsActive = *request.IsActive
	}
	entity.UpdatedBy = actorID

	if err := uc.clusterRepo.Update(ctx, entity); err != nil {
		uc.logger.Errorw("failed to update cluster", "id", id, "error", err)
		return nil, fmt.Errorf("failed to update cluster: %w", err)
	}

	updated, err := uc.clusterRepo.GetByID(ctx, id)
	if err != nil || updated == nil {
		return dto.ClusterResponseFromEntity(entity), nil
	}

	uc.logger.Infow("cluster updated", "id", id)
	return dto.ClusterResponseFromEntity(updated), nil
}
