// Package cluster defines the top-level organizational grouping of the
// platform. A cluster owns business units and carries user assignments.
package cluster

import "time"

// Cluster is the aggregate for an organizational grouping.
type Cluster struct {
	ID          uint
	Code        string
	Name        string
	Description string
	IsActive    bool

	// Derived counts, filled by the repository on reads.
	BUCount    int64
	UsersCount int64

	CreatedAt time.Time
	CreatedBy uint
	UpdatedAt time.Time
	UpdatedBy uint
}

// UserAssignment is the cluster side of the user↔cluster join relation.
type UserAssignment struct {
	ID        uint
	ClusterID uint
	UserID    uint
	Role      string
	IsActive  bool

	// Denormalized for list rendering.
	Username string
	Email    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
