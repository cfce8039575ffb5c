package usecases

import (
	"context"
	"fmt"

	"github.com/carmen-hq/carmen/internal/application/businessunit/dto"
	domainBU "github.com/carmen-hq/carmen/internal/domain/businessunit"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/query"
)

type ListBusinessUnitsUseCase struct {
	buRepo domainBU.Repository
	logger logger.Interface
}

func NewListBusinessUnitsUseCase(buRepo domainBU.Repository, logger logger.Interface) *ListBusinessUnitsUseCase {
	return &ListBusinessUnitsUseCase{
		buRepo: buRepo,
		logger: logger,
	}
}

func (uc *ListBusinessUnitsUseCase) Execute(ctx context.Context, p query.Paginate) ([]*dto.BusinessUnitResponse, int64, error) {
	entities, total, err := uc.buRepo.List(ctx, p)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, 0, err
		}
		uc.logger.Errorw("failed to list business units", "error", err)
		return nil, 0, fmt.Errorf("failed to list business units: %w", err)
	}

	responses := make([]*dto.BusinessUnitResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, dto.BusinessUnitResponseFromEntity(entity))
	}
	return responses, total, nil
}
