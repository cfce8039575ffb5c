package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/carmen-hq/carmen/internal/domain/businessunit"
	"github.com/carmen-hq/carmen/internal/shared/constants"
)

// BusinessUnitModel is the persistence model for business units. The grouped
// configuration blocks (contact info, number formats, free-form config, db
// connection) are stored as JSON columns; list filtering only ever touches
// the scalar columns.
type BusinessUnitModel struct {
	ID          uint   `gorm:"primarykey"`
	ClusterID   uint   `gorm:"not null;index;uniqueIndex:idx_cluster_code"`
	Code        string `gorm:"not null;size:50;uniqueIndex:idx_cluster_code"`
	Name        string `gorm:"not null;size:200"`
	AliasName   string `gorm:"size:200"`
	Description string `gorm:"size:1000"`
	IsHQ        bool   `gorm:"not null;default:false"`
	IsActive    bool   `gorm:"not null;default:true;index"`

	HotelContact   datatypes.JSON
	CompanyContact datatypes.JSON
	Tax            datatypes.JSON

	DateFormat      string `gorm:"size:50"`
	ShortDateFormat string `gorm:"size:50"`
	LongDateFormat  string `gorm:"size:50"`
	TimeFormat      string `gorm:"size:50"`
	DatetimeFormat  string `gorm:"size:50"`

	AmountFormat   datatypes.JSON
	QuantityFormat datatypes.JSON
	CurrencyFormat datatypes.JSON
	PercentFormat  datatypes.JSON

	CalculationMethod string `gorm:"size:20"`
	DefaultCurrencyID uint

	Config       datatypes.JSON
	DBConnection datatypes.JSON

	CreatedBy uint
	UpdatedBy uint
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (BusinessUnitModel) TableName() string {
	return constants.TableBusinessUnits
}

func marshalJSONColumn(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func unmarshalJSONColumn(raw datatypes.JSON, target any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}

// ToEntity converts the persistence model to the domain entity.
func (m *BusinessUnitModel) ToEntity() (*businessunit.BusinessUnit, error) {
	bu := &businessunit.BusinessUnit{
		ID:                m.ID,
		ClusterID:         m.ClusterID,
		Code:              m.Code,
		Name:              m.Name,
		AliasName:         m.AliasName,
		Description:       m.Description,
		IsHQ:              m.IsHQ,
		IsActive:          m.IsActive,
		DateFormat:        m.DateFormat,
		ShortDateFormat:   m.ShortDateFormat,
		LongDateFormat:    m.LongDateFormat,
		TimeFormat:        m.TimeFormat,
		DatetimeFormat:    m.DatetimeFormat,
		CalculationMethod: m.CalculationMethod,
		DefaultCurrencyID: m.DefaultCurrencyID,
		CreatedAt:         m.CreatedAt,
		CreatedBy:         m.CreatedBy,
		UpdatedAt:         m.UpdatedAt,
		UpdatedBy:         m.UpdatedBy,
	}

	if err := unmarshalJSONColumn(m.HotelContact, &bu.HotelContact); err != nil {
		return nil, fmt.Errorf("decode hotel contact: %w", err)
	}
	if err := unmarshalJSONColumn(m.CompanyContact, &bu.CompanyContact); err != nil {
		return nil, fmt.Errorf("decode company contact: %w", err)
	}
	if err := unmarshalJSONColumn(m.Tax, &bu.Tax); err != nil {
		return nil, fmt.Errorf("decode tax info: %w", err)
	}

	formats := []struct {
		raw    datatypes.JSON
		target **businessunit.NumberFormat
		name   string
	}{
		{m.AmountFormat, &bu.AmountFormat, "amount"},
		{m.QuantityFormat, &bu.QuantityFormat, "quantity"},
		{m.CurrencyFormat, &bu.CurrencyFormat, "currency"},
		{m.PercentFormat, &bu.PercentFormat, "percent"},
	}
	for _, f := range formats {
		if len(f.raw) == 0 {
			continue
		}
		nf := &businessunit.NumberFormat{}
		if err := json.Unmarshal(f.raw, nf); err != nil {
			return nil, fmt.Errorf("decode %s format: %w", f.name, err)
		}
		*f.target = nf
	}

	if err := unmarshalJSONColumn(m.Config, &bu.Config); err != nil {
		return nil, fmt.Errorf("decode config entries: %w", err)
	}
	if len(m.DBConnection) > 0 {
		conn := &businessunit.DBConnection{}
		if err := json.Unmarshal(m.DBConnection, conn); err != nil {
			return nil, fmt.Errorf("decode db connection: %w", err)
		}
		bu.DBConnection = conn
	}

	return bu, nil
}

// BusinessUnitModelFromEntity converts a domain entity to the persistence
// model.
func BusinessUnitModelFromEntity(bu *businessunit.BusinessUnit) (*BusinessUnitModel, error) {
	m := &BusinessUnitModel{
		ID:                bu.ID,
		ClusterID:         bu.ClusterID,
		Code:              bu.Code,
		Name:              bu.Name,
		AliasName:         bu.AliasName,
		Description:       bu.Description,
		IsHQ:              bu.IsHQ,
		IsActive:          bu.IsActive,
		DateFormat:        bu.DateFormat,
		ShortDateFormat:   bu.ShortDateFormat,
		LongDateFormat:    bu.LongDateFormat,
		TimeFormat:        bu.TimeFormat,
		DatetimeFormat:    bu.DatetimeFormat,
		CalculationMethod: bu.CalculationMethod,
		DefaultCurrencyID: bu.DefaultCurrencyID,
		CreatedBy:         bu.CreatedBy,
		UpdatedBy:         bu.UpdatedBy,
	}

	var err error
	if m.HotelContact, err = marshalJSONColumn(bu.HotelContact); err != nil {
		return nil, fmt.Errorf("encode hotel contact: %w", err)
	}
	if m.CompanyContact, err = marshalJSONColumn(bu.CompanyContact); err != nil {
		return nil, fmt.Errorf("encode company contact: %w", err)
	}
	if m.Tax, err = marshalJSONColumn(bu.Tax); err != nil {
		return nil, fmt.Errorf("encode tax info: %w", err)
	}

	if bu.AmountFormat != nil {
		if m.AmountFormat, err = marshalJSONColumn(bu.AmountFormat); err != nil {
			return nil, fmt.Errorf("encode amount format: %w", err)
		}
	}
	if bu.QuantityFormat != nil {
		if m.QuantityFormat, err = marshalJSONColumn(bu.QuantityFormat); err != nil {
			return nil, fmt.Errorf("encode quantity format: %w", err)
		}
	}
	if bu.CurrencyFormat != nil {
		if m.CurrencyFormat, err = marshalJSONColumn(bu.CurrencyFormat); err != nil {
			return nil, fmt.Errorf("encode currency format: %w", err)
		}
	}
	if bu.PercentFormat != nil {
		if m.PercentFormat, err = marshalJSONColumn(bu.PercentFormat); err != nil {
			return nil, fmt.Errorf("encode percent format: %w", err)
		}
	}

	if len(bu.Config) > 0 {
		if m.Config, err = marshalJSONColumn(bu.Config); err != nil {
			return nil, fmt.Errorf("encode config entries: %w", err)
		}
	}
	if bu.DBConnection != nil {
		if m.DBConnection, err = marshalJSONColumn(bu.DBConnection); err != nil {
			return nil, fmt.Errorf("encode db connection: %w", err)
		}
	}

	return m, nil
}

// BusinessUnitUserModel is the user↔business-unit join record.
type BusinessUnitUserModel struct {
	ID             uint   `gorm:"primarykey"`
	BusinessUnitID uint   `gorm:"not null;uniqueIndex:idx_bu_user"`
	UserID         uint   `gorm:"not null;uniqueIndex:idx_bu_user;index"`
	Role           string `gorm:"not null;size:50"`
	IsDefault      bool   `gorm:"not null;default:false"`
	IsActive       bool   `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (BusinessUnitUserModel) TableName() string {
	return constants.TableBusinessUnitUsers
}
