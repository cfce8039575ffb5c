package carmen

import (
	"context"
	"fmt"
	"net/http"
)

// BusinessUnitService operates on /api-system/business-units.
type BusinessUnitService struct {
	client *Client
}

// CreateBusinessUnitRequest creates a business unit under a cluster.
type CreateBusinessUnitRequest struct {
	ClusterID         uint          `json:"cluster_id"`
	Code              string        `json:"code"`
	Name              string        `json:"name"`
	AliasName         string        `json:"alias_name,omitempty"`
	Description       string        `json:"description,omitempty"`
	IsHQ              bool          `json:"is_hq,omitempty"`
	IsActive          *bool         `json:"is_active,omitempty"`
	HotelContact      *ContactInfo  `json:"hotel_contact,omitempty"`
	CompanyContact    *ContactInfo  `json:"company_contact,omitempty"`
	AmountFormat      *NumberFormat `json:"amount_format,omitempty"`
	QuantityFormat    *NumberFormat `json:"quantity_format,omitempty"`
	CurrencyFormat    *NumberFormat `json:"currency_format,omitempty"`
	PercentFormat     *NumberFormat `json:"percent_format,omitempty"`
	CalculationMethod string        `json:"calculation_method,omitempty"`
	Config            []ConfigEntry `json:"config,omitempty"`
	DBConnection      *DBConnection `json:"db_connection,omitempty"`
}

// UpdateBusinessUnitRequest patches a business unit. Nil fields are left
// as-is. Echoing the masked password keeps the stored one.
type UpdateBusinessUnitRequest struct {
	Name              *string       `json:"name,omitempty"`
	AliasName         *string       `json:"alias_name,omitempty"`
	Description       *string       `json:"description,omitempty"`
	IsHQ              *bool         `json:"is_hq,omitempty"`
	IsActive          *bool         `json:"is_active,omitempty"`
	HotelContact      *ContactInfo  `json:"hotel_contact,omitempty"`
	CompanyContact    *ContactInfo  `json:"company_contact,omitempty"`
	AmountFormat      *NumberFormat `json:"amount_format,omitempty"`
	QuantityFormat    *NumberFormat `json:"quantity_format,omitempty"`
	CurrencyFormat    *NumberFormat `json:"currency_format,omitempty"`
	PercentFormat     *NumberFormat `json:"percent_format,omitempty"`
	CalculationMethod *string       `json:"calculation_method,omitempty"`
	Config            []ConfigEntry `json:"config,omitempty"`
	DBConnection      *DBConnection `json:"db_connection,omitempty"`
}

// AssignBusinessUnitUserRequest assigns an account to a business unit.
type AssignBusinessUnitUserRequest struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role,omitempty"`
	IsDefault bool   `json:"is_default,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

func (s *BusinessUnitService) List(ctx context.Context, query *ListQuery) ([]BusinessUnit, *Paginate, error) {
	var units []BusinessUnit
	paginate, err := s.client.doRequest(ctx, http.MethodGet, query.path("/api-system/business-units"), nil, &units)
	if err != nil {
		return nil, nil, fmt.Errorf("list business units: %w", err)
	}
	return units, paginate, nil
}

// ListByCluster lists the units of one cluster.
func (s *BusinessUnitService) ListByCluster(ctx context.Context, clusterID uint, query *ListQuery) ([]BusinessUnit, *Paginate, error) {
	if query == nil {
		query = NewListQuery()
	}
	return s.List(ctx, query.Filter("cluster_id", clusterID))
}

func (s *BusinessUnitService) Get(ctx context.Context, id uint) (*BusinessUnit, error) {
	var unit BusinessUnit
	if _, err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api-system/business-units/%d", id), nil, &unit); err != nil {
		return nil, fmt.Errorf("get business unit: %w", err)
	}
	return &unit, nil
}

func (s *BusinessUnitService) Create(ctx context.Context, req CreateBusinessUnitRequest) (*BusinessUnit, error) {
	var unit BusinessUnit
	if _, err := s.client.doRequest(ctx, http.MethodPost, "/api-system/business-units", req, &unit); err != nil {
		return nil, fmt.Errorf("create business unit: %w", err)
	}
	return &unit, nil
}

func (s *BusinessUnitService) Update(ctx context.Context, id uint, req UpdateBusinessUnitRequest) (*BusinessUnit, error) {
	var unit BusinessUnit
	if _, err := s.client.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api-system/business-units/%d", id), req, &unit); err != nil {
		return nil, fmt.Errorf("update business unit: %w", err)
	}
	return &unit, nil
}

func (s *BusinessUnitService) Delete(ctx context.Context, id uint) error {
	if _, err := s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api-system/business-units/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete business unit: %w", err)
	}
	return nil
}

func (s *BusinessUnitService) ListUsers(ctx context.Context, id uint, query *ListQuery) ([]BusinessUnitUser, *Paginate, error) {
	var users []BusinessUnitUser
	paginate, err := s.client.doRequest(ctx, http.MethodGet, query.path(fmt.Sprintf("/api-system/business-units/%d/users", id)), nil, &users)
	if err != nil {
		return nil, nil, fmt.Errorf("list business unit users: %w", err)
	}
	return users, paginate, nil
}

func (s *BusinessUnitService) AssignUser(ctx context.Context, id uint, req AssignBusinessUnitUserRequest) (*BusinessUnitUser, error) {
	var assignment BusinessUnitUser
	if _, err := s.client.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api-system/business-units/%d/users", id), req, &assignment); err != nil {
		return nil, fmt.Errorf("assign business unit user: %w", err)
	}
	return &assignment, nil
}

func (s *BusinessUnitService) RemoveUser(ctx context.Context, id, userID uint) error {
	if _, err := s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api-system/business-units/%d/users/%d", id, userID), nil, nil); err != nil {
		return fmt.Errorf("remove business unit user: %w", err)
	}
	return nil
}

// SetDefaultUser marks the unit as the account's default. The server clears
// the account's previous default in the same transaction.
func (s *BusinessUnitService) SetDefaultUser(ctx context.Context, id, userID uint) error {
	if _, err := s.client.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api-system/business-units/%d/users/%d/default", id, userID), nil, nil); err != nil {
		return fmt.Errorf("set default business unit: %w", err)
	}
	return nil
}
