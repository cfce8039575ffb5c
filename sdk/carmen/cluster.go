package carmen

import (
	"context"
	"fmt"
	"net/http"
)

// ClusterService operates on /api-system/clusters.
type ClusterService struct {
	client *Client
}

// CreateClusterRequest creates a cluster. Code is uppercased server-side.
type CreateClusterRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// UpdateClusterRequest patches a cluster. Nil fields are left as-is.
type UpdateClusterRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// AssignClusterUserRequest assigns an account to a cluster.
type AssignClusterUserRequest struct {
	UserID   uint   `json:"user_id"`
	Role     string `json:"role,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (s *ClusterService) List(ctx context.Context, query *ListQuery) ([]Cluster, *Paginate, error) {
	var clusters []Cluster
	paginate, err := s.client.doRequest(ctx, http.MethodGet, query.path("/api-system/clusters"), nil, &clusters)
	if err != nil {
		return nil, nil, fmt.Errorf("list clusters: %w", err)
	}
	return clusters, paginate, nil
}

func (s *ClusterService) Get(ctx context.Context, id uint) (*Cluster, error) {
	var cluster Cluster
	if _, err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api-system/clusters/%d", id), nil, &cluster); err != nil {
		return nil, fmt.Errorf("get cluster: %w", err)
	}
	return &cluster, nil
}

func (s *ClusterService) Create(ctx context.Context, req CreateClusterRequest) (*Cluster, error) {
	var cluster Cluster
	if _, err := s.client.doRequest(ctx, http.MethodPost, "/api-system/clusters", req, &cluster); err != nil {
		return nil, fmt.Errorf("create cluster: %w", err)
	}
	return &cluster, nil
}

func (s *ClusterService) Update(ctx context.Context, id uint, req UpdateClusterRequest) (*Cluster, error) {
	var cluster Cluster
	if _, err := s.client.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api-system/clusters/%d", id), req, &cluster); err != nil {
		return nil, fmt.Errorf("update cluster: %w", err)
	}
	return &cluster, nil
}

// Delete removes a cluster. The server refuses with a 422 while the cluster
// still owns business units.
func (s *ClusterService) Delete(ctx context.Context, id uint) error {
	if _, err := s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api-system/clusters/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete cluster: %w", err)
	}
	return nil
}

func (s *ClusterService) ListUsers(ctx context.Context, id uint, query *ListQuery) ([]ClusterUser, *Paginate, error) {
	var users []ClusterUser
	paginate, err := s.client.doRequest(ctx, http.MethodGet, query.path(fmt.Sprintf("/api-system/clusters/%d/users", id)), nil, &users)
	if err != nil {
		return nil, nil, fmt.Errorf("list cluster users: %w", err)
	}
	return users, paginate, nil
}

func (s *ClusterService) AssignUser(ctx context.Context, id uint, req AssignClusterUserRequest) (*ClusterUser, error) {
	var assignment ClusterUser
	if _, err := s.client.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api-system/clusters/%d/users", id), req, &assignment); err != nil {
		return nil, fmt.Errorf("assign cluster user: %w", err)
	}
	return &assignment, nil
}

func (s *ClusterService) RemoveUser(ctx context.Context, id, userID uint) error {
	if _, err := s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api-system/clusters/%d/users/%d", id, userID), nil, nil); err != nil {
		return fmt.Errorf("remove cluster user: %w", err)
	}
	return nil
}
