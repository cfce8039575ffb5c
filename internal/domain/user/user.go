// Package user defines platform accounts and their cluster/business-unit
// assignments. Authorization derives from PlatformRole; per-cluster and
// per-BU roles are carried on the join relations.
package user

import "time"

// User is a platform account.
type User struct {
	ID           uint
	Username     string
	Email        string
	PlatformRole string
	AliasName    string
	FirstName    string
	MiddleName   string
	LastName     string
	Telephone    string
	IsActive     bool
	PasswordHash string

	CreatedAt time.Time
	CreatedBy uint
	UpdatedAt time.Time
	UpdatedBy uint
}

// DisplayName is the name shown in list rows: alias when set, otherwise
// first/last, otherwise the username.
func (u *User) DisplayName() string {
	if u.AliasName != "" {
		return u.AliasName
	}
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name != "" {
		return name
	}
	return u.Username
}

// ClusterAssignment is the user side of the user↔cluster join relation.
type ClusterAssignment struct {
	ClusterID   uint   `json:"cluster_id"`
	ClusterCode string `json:"cluster_code"`
	ClusterName string `json:"cluster_name"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
}

// BusinessUnitAssignment is the user side of the user↔BU join relation.
type BusinessUnitAssignment struct {
	BusinessUnitID   uint   `json:"business_unit_id"`
	BusinessUnitCode string `json:"business_unit_code"`
	BusinessUnitName string `json:"business_unit_name"`
	Role             string `json:"role"`
	IsDefault        bool   `json:"is_default"`
	IsActive         bool   `json:"is_active"`
}
