package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/carmen-hq/carmen/internal/domain/user"
	"github.com/carmen-hq/carmen/internal/shared/constants"
)

// UserModel is the persistence model for platform accounts.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"uniqueIndex;not null;size:100"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PlatformRole string `gorm:"not null;size:50;index"`
	AliasName    string `gorm:"size:100"`
	FirstName    string `gorm:"size:100"`
	MiddleName   string `gorm:"size:100"`
	LastName     string `gorm:"size:100"`
	Telephone    string `gorm:"size:50"`
	IsActive     bool   `gorm:"not null;default:true;index"`
	PasswordHash string `gorm:"size:255"`
	CreatedBy    uint
	UpdatedBy    uint
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}

// BeforeCreate keeps the role column valid even for rows seeded outside the
// application layer.
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.PlatformRole == "" {
		m.PlatformRole = constants.RoleUser
	}
	return nil
}

// ToEntity converts the persistence model to the domain entity.
func (m *UserModel) ToEntity() *user.User {
	return &user.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PlatformRole: m.PlatformRole,
		AliasName:    m.AliasName,
		FirstName:    m.FirstName,
		MiddleName:   m.MiddleName,
		LastName:     m.LastName,
		Telephone:    m.Telephone,
		IsActive:     m.IsActive,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
		UpdatedAt:    m.UpdatedAt,
		UpdatedBy:    m.UpdatedBy,
	}
}

// UserModelFromEntity converts a domain entity to the persistence model.
func UserModelFromEntity(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PlatformRole: u.PlatformRole,
		AliasName:    u.AliasName,
		FirstName:    u.FirstName,
		MiddleName:   u.MiddleName,
		LastName:     u.LastName,
		Telephone:    u.Telephone,
		IsActive:     u.IsActive,
		PasswordHash: u.PasswordHash,
		CreatedBy:    u.CreatedBy,
		UpdatedBy:    u.UpdatedBy,
	}
}
