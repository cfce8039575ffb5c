package usecases

import (
	"context"
	"fmt"

	domainCluster "github.com/carmen-hq/carmen/internal/domain/cluster"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

// DeleteClusterUseCase soft deletes a cluster. Deletion is refused while
// business units remain under it.
type DeleteClusterUseCase struct {
	clusterRepo domainCluster.Repository
	logger      logger.Interface
}

func NewDeleteClusterUseCase(clusterRepo domainCluster.Repository, logger logger.Interface) *DeleteClusterUseCase {
	return &DeleteClusterUseCase{
		clusterRepo: clusterRepo,
		logger:      logger,
	}
}

func (uc *DeleteClusterUseCase) Execute(ctx context.Context, id uint) error {
	uc.logger.Infow("executing delete cluster use case", "id", id)

	entity, err := uc.clusterRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get cluster", "id", id, "error", err)
		return fmt.Errorf("failed to get cluster: %w", err)
	}
	if entity == nil {
		return errors.NewNotFoundError("cluster not found")
	}

	buCount, err := uc.clusterRepo.CountBusinessUnits(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to count business units", "cluster_id", id, "error", err)
		return fmt.Errorf("failed to count business units: %w", err)
	}
	if buCount > 0 {
		return errors.NewUnprocessableError(
			fmt.Sprintf("cluster still has %d business units, remove them first", buCount))
	}

	if err := uc.clusterRepo.Delete(ctx, id); err != nil {
		uc.logger.Errorw("failed to delete cluster", "id", id, "error", err)
		return fmt.Errorf("failed to delete cluster: %w", err)
	}

	uc.logger.Infow("cluster deleted", "id", id, "code", entity.Code)
	return nil
}
