package user

import (
	"context"

	"github.com/carmen-hq/carmen/internal/shared/query"
)

// DefaultSearchFields is the fallback searchfields list for user lists.
var DefaultSearchFields = []string{"username", "email", "first_name", "last_name"}

// Repository is the persistence contract for platform accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, p query.Paginate) ([]*User, int64, error)
	Update(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Delete(ctx context.Context, id uint) error

	ListClusterAssignments(ctx context.Context, userID uint) ([]*ClusterAssignment, error)
	ListBusinessUnitAssignments(ctx context.Context, userID uint) ([]*BusinessUnitAssignment, error)
}
