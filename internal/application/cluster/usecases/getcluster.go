package usecases

import (
	"context"
	"fmt"

	"github.com/carmen-hq/carmen/internal/application/cluster/dto"
	domainCluster "github.com/carmen-hq/carmen/internal/domain/cluster"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

type GetClusterUseCase struct {
	clusterRepo domainCluster.Repository
	logger      logger.Interface
}

func NewGetClusterUseCase(clusterRepo domainCluster.Repository, logger logger.Interface) *GetClusterUseCase {
	return &GetClusterUseCase{
		clusterRepo: clusterRepo,
		logger:      logger,
	}
}

func (uc *GetClusterUseCase) Execute(ctx context.Context, id uint) (*dto.ClusterResponse, error) {
	entity, err := uc.clusterRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get cluster", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get cluster: %w", err)
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("cluster not found")
	}

	return dto.ClusterResponseFromEntity(entity), nil
}
