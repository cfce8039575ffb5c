package usecases

import (
	"context"
	"fmt"

	domainBU "github.com/carmen-hq/carmen/internal/domain/businessunit"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
)

type DeleteBusinessUnitUseCase struct {
	buRepo domainBU.Repository
	logger logger.Interface
}

func NewDeleteBusinessUnitUseCase(buRepo domainBU.Repository, logger logger.Interface) *DeleteBusinessUnitUseCase {
	return &DeleteBusinessUnitUseCase{
		buRepo: buRepo,
		logger: logger,
	}
}

func (uc *DeleteBusinessUnitUseCase) Execute(ctx context.Context, id uint) error {
	uc.logger.Infow("executing delete business unit use case", "id", id)

	entity, err := uc.buRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get business unit", "id", id, "error", err)
		return fmt.Errorf("failed to get business unit: %w", err)
	}
	if entity == nil {
		return errors.NewNotFoundError("business unit not found")
	}

	if err := uc.buRepo.Delete(ctx, id); err != nil {
		uc.logger.Errorw("failed to delete business unit", "id", id, "error", err)
		return fmt.Errorf("failed to delete business unit: %w", err)
	}

	uc.logger.Infow("business unit deleted", "id", id, "code", entity.Code)
	return nil
}
