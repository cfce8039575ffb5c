package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/carmen-hq/carmen/internal/domain/cluster"
	"github.com/carmen-hq/carmen/internal/shared/constants"
)

// ClusterModel is the persistence model for clusters.
type ClusterModel struct {
	ID          uint   `gorm:"primarykey"`
	Code        string `gorm:"uniqueIndex;not null;size:50"`
	Name        string `gorm:"not null;size:200"`
	Description string `gorm:"size:1000"`
	IsActive    bool   `gorm:"not null;default:true;index"`
	CreatedBy   uint
	UpdatedBy   uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (ClusterModel) TableName() string {
	return constants.TableClusters
}

// ToEntity converts the persistence model to the domain entity. Derived
// counts are filled by the repository, not here.
func (m *ClusterModel) ToEntity() *cluster.Cluster {
	return &cluster.Cluster{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
		UpdatedAt:   m.UpdatedAt,
		UpdatedBy:   m.UpdatedBy,
	}
}

// ClusterModelFromEntity converts a domain entity to the persistence model.
func ClusterModelFromEntity(c *cluster.Cluster) *ClusterModel {
	return &ClusterModel{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedBy:   c.CreatedBy,
		UpdatedBy:   c.UpdatedBy,
	}
}

// ClusterUserModel is the user↔cluster join record.
type ClusterUserModel struct {
	ID        uint   `gorm:"primarykey"`
	ClusterID uint   `gorm:"not null;uniqueIndex:idx_cluster_user"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_cluster_user"`
	Role      string `gorm:"not null;size:50"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ClusterUserModel) TableName() string {
	return constants.TableClusterUsers
}
