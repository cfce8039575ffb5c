package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/carmen-hq/carmen/internal/application/businessunit/dto"
	domainBU "github.com/carmen-hq/carmen/internal/domain/businessunit"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/utils"
)

// UpdateBusinessUnitUseCase updates a business unit. A db_connection sent
// back with the masked password placeholder keeps the stored password.
type UpdateBusinessUnitUseCase struct {
	buRepo domainBU.Repository
	logger logger.Interface
}

func NewUpdateBusinessUnitUseCase(buRepo domainBU.Repository, logger logger.Interface) *UpdateBusinessUnitUseCase {
	return &UpdateBusinessUnitUseCase{
		buRepo: buRepo,
		logger: logger,
	}
}

func (uc *UpdateBusinessUnitUseCase) Execute(ctx context.Context, id uint, request dto.UpdateBusinessUnitRequest, actorID uint) (*dto.BusinessUnitResponse, error) {
	uc.logger.Infow("executing update business unit use case", "id", id)

	entity, err := uc.buRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get business unit", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get business unit: %w", err)
	}
	if entity == nil {
		return nil, errors.NewNotFoundError("business unit not found")
	}

	storedPassword := ""
	if entity.DBConnection != nil {
		storedPassword = entity.DBConnection.Password
	}

	uc.applyScalarFields(entity, request)
	uc.applyDocuments(entity, request)

	if request.DBConnection != nil {
		conn := *request.DBConnection
		if domainBU.IsMaskedPassword(conn.Password) {
			conn.Password = storedPassword
		}
		entity.DBConnection = &conn
	}

	if err := validateBusinessUnit(entity); err != nil {
		return nil, err
	}

	if request.IsHQ != nil && *request.IsHQ {
		hqExists, err := uc.buRepo.HQExists(ctx, entity.ClusterID, entity.ID)
		if err != nil {
			uc.logger.Errorw("failed to check HQ uniqueness", "cluster_id", entity.ClusterID, "error", err)
			return nil, fmt.Errorf("failed to check HQ uniqueness: %w", err)
		}
		if hqExists {
			return nil, errors.NewUnprocessableError("cluster already has a headquarters unit")
		}
	}

	entity.NormalizeConfig()
	entity.UpdatedBy = actorID

	if err := uc.buRepo.Update(ctx, entity); err != nil {
		uc.logger.Errorw("failed to update business unit", "id", id, "error", err)
		return nil, fmt.Errorf("failed to update business unit: %w", err)
	}

	updated, err := uc.buRepo.GetByID(ctx, id)
	if err != nil || updated == nil {
		return dto.BusinessUnitResponseFromEntity(entity), nil
	}

	uc.logger.Infow("business unit updated", "id", id)
	return dto.BusinessUnitResponseFromEntity(updated), nil
}

func (uc *UpdateBusinessUnitUseCase) applyScalarFields(entity *domainBU.BusinessUnit, request dto.UpdateBusinessUnitRequest) {
	if request.Name != nil {
		entity.Name = strings.TrimSpace(*request.Name)
	}
	if request.AliasName != nil {
		entity.AliasName = strings.TrimSpace(*request.AliasName)
	}
	if request.Description != nil {
		entity.Description = utils.SanitizeText(*request.Description)
	}
	if request.IsHQ != nil {
		entity.IsHQ = *request.IsHQ
	}
	if request.IsActive != nil {
		entity.IsActive = *request.IsActive
	}
	if request.DateFormat != nil {
		entity.DateFormat = *request.DateFormat
	}
	if request.ShortDateFormat != nil {
		entity.ShortDateFormat = *request.ShortDateFormat
	}
	if request.LongDateFormat != nil {
		entity.LongDateFormat = *request.LongDateFormat
	}
	if request.TimeFormat != nil {
		entity.TimeFormat = *request.TimeFormat
	}
	if request.DatetimeFormat != nil {
		entity.DatetimeFormat = *request.DatetimeFormat
	}
	if request.CalculationMethod != nil {
		entity.CalculationMethod = *request.CalculationMethod
	}
	if request.DefaultCurrencyID != nil {
		entity.DefaultCurrencyID = *request.DefaultCurrencyID
	}
}

func (uc *UpdateBusinessUnitUseCase) applyDocuments(entity *domainBU.BusinessUnit, request dto.UpdateBusinessUnitRequest) {
	if request.HotelContact != nil {
		entity.HotelContact = *request.HotelContact
	}
	if request.CompanyContact != nil {
		entity.CompanyContact = *request.CompanyContact
	}
	if request.Tax != nil {
		entity.Tax = *request.Tax
	}
	if request.AmountFormat != nil {
		entity.AmountFormat = request.AmountFormat.Format
	}
	if request.QuantityFormat != nil {
		entity.QuantityFormat = request.QuantityFormat.Format
	}
	if request.CurrencyFormat != nil {
		entity.CurrencyFormat = request.CurrencyFormat.Format
	}
	if request.PercentFormat != nil {
		entity.PercentFormat = request.PercentFormat.Format
	}
	if request.Config != nil {
		entity.Config = request.Config
	}
}
