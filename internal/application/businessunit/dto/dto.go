package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/carmen-hq/carmen/internal/domain/businessunit"
)

// NumberFormatField accepts a number format either as a JSON object or as a
// JSON-encoded string. Older console builds serialized the format documents
// to strings before submitting, and the API keeps accepting both shapes.
type NumberFormatField struct {
	Format *businessunit.NumberFormat
}

func (f *NumberFormatField) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		f.Format = nil
		return nil
	}

	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return fmt.Errorf("invalid number format string: %w", err)
		}
		encoded = strings.TrimSpace(encoded)
		if encoded == "" {
			f.Format = nil
			return nil
		}
		var format businessunit.NumberFormat
		if err := json.Unmarshal([]byte(encoded), &format); err != nil {
			return fmt.Errorf("invalid number format document: %w", err)
		}
		f.Format = &format
		return nil
	}

	var format businessunit.NumberFormat
	if err := json.Unmarshal(data, &format); err != nil {
		return fmt.Errorf("invalid number format document: %w", err)
	}
	f.Format = &format
	return nil
}

func (f NumberFormatField) MarshalJSON() ([]byte, error) {
	if f.Format == nil {
		return []byte("null"), nil
	}
	return json.Marshal(f.Format)
}

// CreateBusinessUnitRequest creates a business unit under a cluster.
type CreateBusinessUnitRequest struct {
	ClusterID   uint   `json:"cluster_id" binding:"required"`
	Code        string `json:"code" binding:"required,min=1,max=64"`
	Name        string `json:"name" binding:"required,min=1,max=255"`
	AliasName   string `json:"alias_name,omitempty"`
	Description string `json:"description,omitempty"`
	IsHQ        bool   `json:"is_hq,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`

	HotelContact   *businessunit.ContactInfo `json:"hotel_contact,omitempty"`
	CompanyContact *businessunit.ContactInfo `json:"company_contact,omitempty"`
	Tax            *businessunit.TaxInfo     `json:"tax,omitempty"`

	DateFormat      string `json:"date_format,omitempty"`
	ShortDateFormat string `json:"short_date_format,omitempty"`
	LongDateFormat  string `json:"long_date_format,omitempty"`
	TimeFormat      string `json:"time_format,omitempty"`
	DatetimeFormat  string `json:"datetime_format,omitempty"`

	AmountFormat   NumberFormatField `json:"amount_format,omitempty"`
	QuantityFormat NumberFormatField `json:"quantity_format,omitempty"`
	CurrencyFormat NumberFormatField `json:"currency_format,omitempty"`
	PercentFormat  NumberFormatField `json:"percent_format,omitempty"`

	CalculationMethod string `json:"calculation_method,omitempty"`
	DefaultCurrencyID uint   `json:"default_currency_id,omitempty"`

	Config       []businessunit.ConfigEntry `json:"config,omitempty"`
	DBConnection *businessunit.DBConnection `json:"db_connection,omitempty"`
}

// UpdateBusinessUnitRequest updates mutable fields. Absent fields stay
// unchanged; explicit nulls clear the optional documents.
type UpdateBusinessUnitRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	AliasName   *string `json:"alias_name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsHQ        *bool   `json:"is_hq,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`

	HotelContact   *businessunit.ContactInfo `json:"hotel_contact,omitempty"`
	CompanyContact *businessunit.ContactInfo `json:"company_contact,omitempty"`
	Tax            *businessunit.TaxInfo     `json:"tax,omitempty"`

	DateFormat      *string `json:"date_format,omitempty"`
	ShortDateFormat *string `json:"short_date_format,omitempty"`
	LongDateFormat  *string `json:"long_date_format,omitempty"`
	TimeFormat      *string `json:"time_format,omitempty"`
	DatetimeFormat  *string `json:"datetime_format,omitempty"`

	AmountFormat   *NumberFormatField `json:"amount_format,omitempty"`
	QuantityFormat *NumberFormatField `json:"quantity_format,omitempty"`
	CurrencyFormat *NumberFormatField `json:"currency_format,omitempty"`
	PercentFormat  *NumberFormatField `json:"percent_format,omitempty"`

	CalculationMethod *string `json:"calculation_method,omitempty"`
	DefaultCurrencyID *uint   `json:"default_currency_id,omitempty"`

	Config       []businessunit.ConfigEntry `json:"config,omitempty"`
	DBConnection *businessunit.DBConnection `json:"db_connection,omitempty"`
}

// BusinessUnitResponse is a business unit on the wire. DBConnection always
// carries the masked password.
type BusinessUnitResponse struct {
	ID          uint   `json:"id"`
	ClusterID   uint   `json:"cluster_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	AliasName   string `json:"alias_name,omitempty"`
	Description string `json:"description,omitempty"`
	IsHQ        bool   `json:"is_hq"`
	IsActive    bool   `json:"is_active"`

	HotelContact   businessunit.ContactInfo `json:"hotel_contact"`
	CompanyContact businessunit.ContactInfo `json:"company_contact"`
	Tax            businessunit.TaxInfo     `json:"tax"`

	DateFormat      string `json:"date_format,omitempty"`
	ShortDateFormat string `json:"short_date_format,omitempty"`
	LongDateFormat  string `json:"long_date_format,omitempty"`
	TimeFormat      string `json:"time_format,omitempty"`
	DatetimeFormat  string `json:"datetime_format,omitempty"`

	AmountFormat   *businessunit.NumberFormat `json:"amount_format,omitempty"`
	QuantityFormat *businessunit.NumberFormat `json:"quantity_format,omitempty"`
	CurrencyFormat *businessunit.NumberFormat `json:"currency_format,omitempty"`
	PercentFormat  *businessunit.NumberFormat `json:"percent_format,omitempty"`

	CalculationMethod string `json:"calculation_method,omitempty"`
	DefaultCurrencyID uint   `json:"default_currency_id,omitempty"`

	Config       []businessunit.ConfigEntry `json:"config,omitempty"`
	DBConnection *businessunit.DBConnection `json:"db_connection,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BusinessUnitUserResponse is one user assignment row under a business unit.
type BusinessUnitUserResponse struct {
	ID             uint      `json:"id"`
	BusinessUnitID uint      `json:"business_unit_id"`
	UserID         uint      `json:"user_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	IsDefault      bool      `json:"is_default"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// AssignBusinessUnitUserRequest links a user to a business unit.
type AssignBusinessUnitUserRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	Role      string `json:"role,omitempty"`
	IsDefault bool   `json:"is_default,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// BusinessUnitResponseFromEntity maps the aggregate onto the wire shape,
// masking the reporting connection password.
func BusinessUnitResponseFromEntity(bu *businessunit.BusinessUnit) *BusinessUnitResponse {
	return &BusinessUnitResponse{
		ID:          bu.ID,
		ClusterID:   bu.ClusterID,
		Code:        bu.Code,
		Name:        bu.Name,
		AliasName:   bu.AliasName,
		Description: bu.Description,
		IsHQ:        bu.IsHQ,
		IsActive:    bu.IsActive,

		HotelContact:   bu.HotelContact,
		CompanyContact: bu.CompanyContact,
		Tax:            bu.Tax,

		DateFormat:      bu.DateFormat,
		ShortDateFormat: bu.ShortDateFormat,
		LongDateFormat:  bu.LongDateFormat,
		TimeFormat:      bu.TimeFormat,
		DatetimeFormat:  bu.DatetimeFormat,

		AmountFormat:   bu.AmountFormat,
		QuantityFormat: bu.QuantityFormat,
		CurrencyFormat: bu.CurrencyFormat,
		PercentFormat:  bu.PercentFormat,

		CalculationMethod: bu.CalculationMethod,
		DefaultCurrencyID: bu.DefaultCurrencyID,

		Config:       bu.Config,
		DBConnection: bu.DBConnection.Masked(),

		CreatedAt: bu.CreatedAt,
		UpdatedAt: bu.UpdatedAt,
	}
}

// BusinessUnitUserResponseFromEntity maps one assignment row.
func BusinessUnitUserResponseFromEntity(a *businessunit.UserAssignment) *BusinessUnitUserResponse {
	return &BusinessUnitUserResponse{
		ID:             a.ID,
		BusinessUnitID: a.BusinessUnitID,
		UserID:         a.UserID,
		Username:       a.Username,
		Email:          a.Email,
		Role:           a.Role,
		IsDefault:      a.IsDefault,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
	}
}
