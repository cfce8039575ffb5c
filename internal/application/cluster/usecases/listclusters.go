package usecases

import (
	"context"
	"fmt"

	"github.com/carmen-hq/carmen/internal/application/cluster/dto"
	domainCluster "github.com/carmen-hq/carmen/internal/domain/cluster"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

type ListClustersUseCase struct {
	clusterRepo domainCluster.Repository
	logger      logger.Interface
}

func NewListClustersUseCase(clusterRepo domainCluster.Repository, logger logger.Interface) *ListClustersUseCase {
	return &ListClustersUseCase{
		clusterRepo: clusterRepo,
		logger:      logger,
	}
}

func (uc *ListClustersUseCase) Execute(ctx context.Context, p query.Paginate) ([]*dto.ClusterResponse, int64, error) {
	entities, total, err := uc.clusterRepo.List(ctx, p)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, 0, err
		}
		uc.logger.Errorw("failed to list clusters", "error", err)
		return nil, 0, fmt.Errorf("failed to list clusters: %w", err)
	}

	responses := make([]*dto.ClusterResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, dto.ClusterResponseFromEntity(entity))
	}
	return responses, total, nil
}
