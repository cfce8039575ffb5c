package dto

import (
	"time"

	"github.com/carmen-hq/carmen/internal/domain/cluster"
)

// CreateClusterRequest creates a new cluster. Code is immutable afterwards.
type CreateClusterRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=64"`
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// UpdateClusterRequest updates mutable cluster fields. Absent fields stay
// unchanged.
type UpdateClusterRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ClusterResponse is a cluster row on the wire.
type ClusterResponse struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	BUCount     int64     `json:"bu_count"`
	UsersCount  int64     `json:"users_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClusterUserResponse is one user assignment row under a cluster.
type ClusterUserResponse struct {
	ID        uint      `json:"id"`
	ClusterID uint      `json:"cluster_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignClusterUserRequest links a user to a cluster.
type AssignClusterUserRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	Role     string `json:"role,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ClusterResponseFromEntity maps the domain aggregate onto the wire shape.
func ClusterResponseFromEntity(c *cluster.Cluster) *ClusterResponse {
	return &ClusterResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		BUCount:     c.BUCount,
		UsersCount:  c.UsersCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ClusterUserResponseFromEntity maps one assignment row.
func ClusterUserResponseFromEntity(a *cluster.UserAssignment) *ClusterUserResponse {
	return &ClusterUserResponse{
		ID:        a.ID,
		ClusterID: a.ClusterID,
		UserID:    a.UserID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}
