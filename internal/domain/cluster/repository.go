package cluster

import (
	"context"

	"github.com/carmen-hq/carmen/internal/shared/query"
)

// DefaultSearchFields is the fallback searchfields list for cluster lists.
var DefaultSearchFields = []string{"code", "name", "description"}

// Repository is the persistence contract for clusters and their user
// assignments. Implementations live in infrastructure.
type Repository interface {
	Create(ctx context.Context, c *Cluster) error
	GetByID(ctx context.Context, id uint) (*Cluster, error)
	GetByCode(ctx context.Context, code string) (*Cluster, error)
	List(ctx context.Context, p query.Paginate) ([]*Cluster, int64, error)
	Update(ctx context.Context, c *Cluster) error
	// Delete soft deletes the cluster. It does not cascade; callers must
	// refuse deletion while business units remain.
	Delete(ctx context.Context, id uint) error

	CountBusinessUnits(ctx context.Context, clusterID uint) (int64, error)

	ListUsers(ctx context.Context, clusterID uint, p query.Paginate) ([]*UserAssignment, int64, error)
	AssignUser(ctx context.Context, a *UserAssignment) error
	RemoveUser(ctx context.Context, clusterID, userID uint) error
}
