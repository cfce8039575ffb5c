package usecases

import (
	"context"
	"fmt"

	"github.com/carmen-hq/carmen/internal/application/businessunit/dto"
	domainBU "github.com/carmen-hq/carmen/internal/domain/businessunit"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

type GetBusinessUnitUseCase struct {
	buRepo domainBU.Repository
	logger logger.Interface
}

func NewGetBusinessUnitUseCase(buRepo domainBU.Repository, logger logger.Interface) *GetBusinessUnitUseCase {
	return &GetBusinessUnitUseCase{
		buRepo: buRepo,
		logger: logger,
	}
}

func (uc *GetBusinessUnitUseCase) Execute(ctx context.Context, id uint) (*dto.BusinessUnitResponse, error) {
	entity, err := uc.buRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get business unit", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get business unit: %w", err)
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("business unit not found")
	}

	return dto.BusinessUnitResponseFromEntity(entity), nil
}
