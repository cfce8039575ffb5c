package businessunit

import (
	"context"

	"github.com/carmen-hq/carmen/internal/shared/query"
)

// DefaultSearchFields is the fallback searchfields list for BU lists.
var DefaultSearchFields = []string{"code", "name", "alias_name", "description"}

// Repository is the persistence contract for business units and their user
// assignments.
type Repository interface {
	Create(ctx context.Context, bu *BusinessUnit) error
	GetByID(ctx context.Context, id uint) (*BusinessUnit, error)
	GetByCode(ctx context.Context, clusterID uint, code string) (*BusinessUnit, error)
	List(ctx context.Context, p query.Paginate) ([]*BusinessUnit, int64, error)
	Update(ctx context.Context, bu *BusinessUnit) error
	Delete(ctx context.Context, id uint) error

	// HQExists reports whether the cluster already has a headquarters unit,
	// excluding excludeID (zero to exclude nothing).
	HQExists(ctx context.Context, clusterID, excludeID uint) (bool, error)

	ListUsers(ctx context.Context, businessUnitID uint, p query.Paginate) ([]*UserAssignment, int64, error)
	AssignUser(ctx context.Context, a *UserAssignment) error
	RemoveUser(ctx context.Context, businessUnitID, userID uint) error
	// SetDefaultUser marks the assignment as the user's default business
	// unit and clears the user's previous default in the same transaction.
	SetDefaultUser(ctx context.Context, businessUnitID, userID uint) error
}
