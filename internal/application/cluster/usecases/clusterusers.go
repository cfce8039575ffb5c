package usecases

import (
	"context"
	"fmt"

	"github.com/carmen-hq/carmen/internal/application/cluster/dto"
	domainCluster "github.com/carmen-hq/carmen/internal/domain/cluster"
	domainUser "github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

// ClusterUsersUseCase manages the user assignments of one cluster.
type ClusterUsersUseCase struct {
	clusterRepo domainCluster.Repository
	userRepo    domainUser.Repository
	logger      logger.Interface
}

func NewClusterUsersUseCase(
	clusterRepo domainCluster.Repository,
	userRepo domainUser.Repository,
	logger logger.Interface,
) *ClusterUsersUseCase {
	return &ClusterUsersUseCase{
		clusterRepo: clusterRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (uc *ClusterUsersUseCase) List(ctx context.Context, clusterID uint, p query.Paginate) ([]*dto.ClusterUserResponse, int64, error) {
	if err := uc.requireCluster(ctx, clusterID); err != nil {
		return nil, 0, err
	}

	assignments, total, err := uc.clusterRepo.ListUsers(ctx, clusterID, p)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, 0, err
		}
		uc.logger.Errorw("failed to list cluster users", "cluster_id", clusterID, "error", err)
		return nil, 0, fmt.Errorf("failed to list cluster users: %w", err)
	}

	responses := make([]*dto.ClusterUserResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, dto.ClusterUserResponseFromEntity(a))
	}
	return responses, total, nil
}

func (uc *ClusterUsersUseCase) Assign(ctx context.Context, clusterID uint, request dto.AssignClusterUserRequest) (*dto.ClusterUserResponse, error) {
	if err := uc.requireCluster(ctx, clusterID); err != nil {
		return nil, err
	}

	userEntity, err := uc.userRepo.GetByID(ctx, request.UserID)
	if err != nil {
		uc.logger.Errorw("failed to get user", "user_id", request.UserID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	assignment := &domainCluster.UserAssignment{
		ClusterID: clusterID,
		UserID:    request.UserID,
		Role:      request.Role,
		IsActive:  true,
	}
	if request.IsActive != nil {
		assignment.IsActive = *request.IsActive
	}

	if err := uc.clusterRepo.AssignUser(ctx, assignment); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("user is already assigned to this cluster")
		}
		uc.logger.Errorw("failed to assign user to cluster",
			"cluster_id", clusterID, "user_id", request.UserID, "error", err)
		return nil, fmt.Errorf("failed to assign user: %w", err)
	}

	assignment.Username = userEntity.Username
	assignment.Email = userEntity.Email

	uc.logger.Infow("user assigned to cluster", "cluster_id", clusterID, "user_id", request.UserID)
	return dto.ClusterUserResponseFromEntity(assignment), nil
}

func (uc *ClusterUsersUseCase) Remove(ctx context.Context, clusterID, userID uint) error {
	if err := uc.requireCluster(ctx, clusterID); err != nil {
		return err
	}

	if err := uc.clusterRepo.RemoveUser(ctx, clusterID, userID); err != nil {
		uc.logger.Errorw("failed to remove user from cluster",
			"cluster_id", clusterID, "user_id", userID, "error", err)
		return fmt.Errorf("failed to remove user: %w", err)
	}

	uc.logger.Infow("user removed from cluster", "cluster_id", clusterID, "user_id", userID)
	return nil
}

func (uc *ClusterUsersUseCase) requireCluster(ctx context.Context, clusterID uint) error {
	entity, err := uc.clusterRepo.GetByID(ctx, clusterID)
	if err != nil {
		uc.logger.Errorw("failed to get cluster", "id", clusterID, "error", err)
		return fmt.Errorf("failed to get cluster: %w", err)
	}
	if entity == nil {
		return errors.NewNotFoundError("cluster not found")
	}
	return nil
}
