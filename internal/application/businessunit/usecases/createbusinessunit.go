package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/carmen-hq/carmen/internal/application/businessunit/dto"
	domainBU "github.com/carmen-hq/carmen/internal/domain/businessunit"
	domainCluster "github.com/carmen-hq/carmen/internal/domain/cluster"
	"github.com/carmen-hq/carmen/internal/shared/constants"
	"github.com/carmen-hq/carmen/internal/shared/errors"
	"github.com/carmen-hq/carmen/internal/shared/logger"
	"github.com/carmen-hq/carmen/internal/shared/utils"
)

// CreateBusinessUnitUseCase creates a business unit under a cluster. The code
// must be unique within the cluster and a cluster holds at most one HQ unit.
type CreateBusinessUnitUseCase struct {
	buRepo      domainBU.Repository
	clusterRepo domainCluster.Repository
	logger      logger.Interface
}

func NewCreateBusinessUnitUseCase(
	buRepo domainBU.Repository,
	clusterRepo domainCluster.Repository,
	logger logger.Interface,
) *CreateBusinessUnitUseCase {
	return &CreateBusinessUnitUseCase{
		buRepo:      buRepo,
		clusterRepo: clusterRepo,
		logger:      logger,
	}
}

func (uc *CreateBusinessUnitUseCase) Execute(ctx context.Context, request dto.CreateBusinessUnitRequest, actorID uint) (*dto.BusinessUnitResponse, error) {
	uc.logger.Infow("executing create business unit use case",
		"cluster_id", request.ClusterID, "code", request.Code)

	clusterEntity, err := uc.clusterRepo.GetByID(ctx, request.ClusterID)
	if err != nil {
		uc.logger.Errorw("failed to get cluster", "id", request.ClusterID, "error", err)
		return nil, fmt.Errorf("failed to get cluster: %w", err)
	}
	if clusterEntity == nil {
		return nil, errors.NewNotFoundError("cluster not found")
	}

	code := strings.ToUpper(strings.TrimSpace(request.Code))
	if !utils.IsValidCode(code) {
		return nil, errors.NewValidationError("business unit code must contain only letters, digits, hyphen and underscore")
	}

	existing, err := uc.buRepo.GetByCode(ctx, request.ClusterID, code)
	if err != nil {
		uc.logger.Errorw("failed to check business unit code", "code", code, "error", err)
		return nil, fmt.Errorf("failed to check business unit code: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError(
			fmt.Sprintf("business unit code %q already exists in this cluster", code))
	}

	entity := &domainBU.BusinessUnit{
		ClusterID:   request.ClusterID,
		Code:        code,
		Name:        strings.TrimSpace(request.Name),
		AliasName:   strings.TrimSpace(request.AliasName),
		Description: utils.SanitizeText(request.Description),
		IsHQ:        request.IsHQ,
		IsActive:    true,

		DateFormat:      request.DateFormat,
		ShortDateFormat: request.ShortDateFormat,
		LongDateFormat:  request.LongDateFormat,
		TimeFormat:      request.TimeFormat,
		DatetimeFormat:  request.DatetimeFormat,

		AmountFormat:   request.AmountFormat.Format,
		QuantityFormat: request.QuantityFormat.Format,
		CurrencyFormat: request.CurrencyFormat.Format,
		PercentFormat:  request.PercentFormat.Format,

		CalculationMethod: request.CalculationMethod,
		DefaultCurrencyID: request.DefaultCurrencyID,

		Config:       request.Config,
		DBConnection: request.DBConnection,

		CreatedBy: actorID,
		UpdatedBy: actorID,
	}
	if request.IsActive != nil {
		entity.IsActive = *request.IsActive
	}
	if request.HotelContact != nil {
		entity.HotelContact = *request.HotelContact
	}
	if request.CompanyContact != nil {
		entity.CompanyContact = *request.CompanyContact
	}
	if request.Tax != nil {
		entity.Tax = *request.Tax
	}
	if entity.CalculationMethod == "" {
		entity.CalculationMethod = constants.CalculationMethodFIFO
	}

	if err := validateBusinessUnit(entity); err != nil {
		return nil, err
	}

	if entity.IsHQ {
		hqExists, err := uc.buRepo.HQExists(ctx, request.ClusterID, 0)
		if err != nil {
			uc.logger.Errorw("failed to check HQ uniqueness", "cluster_id", request.ClusterID, "error", err)
			return nil, fmt.Errorf("failed to check HQ uniqueness: %w", err)
		}
		if hqExists {
			return nil, errors.NewUnprocessableError("cluster already has a headquarters unit")
		}
	}

	entity.NormalizeConfig()

	if err := uc.buRepo.Create(ctx, entity); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError(
				fmt.Sprintf("business unit code %q already exists in this cluster", code))
		}
		uc.logger.Errorw("failed to create business unit", "code", code, "error", err)
		return nil, fmt.Errorf("failed to create business unit: %w", err)
	}

	uc.logger.Infow("business unit created", "id", entity.ID, "code", entity.Code)
	return dto.BusinessUnitResponseFromEntity(entity), nil
}

// validateBusinessUnit checks the configuration blocks shared by create and
// update.
func validateBusinessUnit(entity *domainBU.BusinessUnit) error {
	if entity.CalculationMethod != constants.CalculationMethodFIFO &&
		entity.CalculationMethod != constants.CalculationMethodAVG {
		return errors.NewValidationError(
			fmt.Sprintf("calculation method must be %q or %q",
				constants.CalculationMethodFIFO, constants.CalculationMethodAVG))
	}

	formats := map[string]*domainBU.NumberFormat{
		"amount_format":   entity.AmountFormat,
		"quantity_format": entity.QuantityFormat,
		"currency_format": entity.CurrencyFormat,
		"percent_format":  entity.PercentFormat,
	}
	for name, format := range formats {
		if format == nil {
			continue
		}
		if err := format.Validate(); err != nil {
			return errors.NewValidationError(fmt.Sprintf("invalid %s: %v", name, err))
		}
	}

	if entity.HotelContact.Email != "" && !utils.IsValidEmail(entity.HotelContact.Email) {
		return errors.NewValidationError("invalid hotel contact email")
	}
	if entity.CompanyContact.Email != "" && !utils.IsValidEmail(entity.CompanyContact.Email) {
		return errors.NewValidationError("invalid company contact email")
	}

	if conn := entity.DBConnection; conn != nil {
		if conn.Driver == "" || conn.Host == "" || conn.Database == "" {
			return errors.NewValidationError("db connection requires driver, host and database")
		}
	}

	return nil
}
