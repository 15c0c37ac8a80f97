package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/mitrahub/auth-api/internal/core/domain"
)

type userModel struct {
	ID              string  `gorm:"type:uuid;primaryKey"`
	Username        string  `gorm:"size:50;uniqueIndex;not null"`
	Email           string  `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash    string  `gorm:"column:password;size:255;not null"`
	Role            string  `gorm:"size:20;not null;default:customer;index"`
	PartnerID       *string `gorm:"type:uuid;index"`
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (userModel) TableName() string { return "users" }

type partnerModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_partners_live_owner,where:deleted_at IS NULL"`
	MitraName string `gorm:"size:255;not null"`
	Address   string `gorm:"type:text;not null"`
	Contact   string `gorm:"size:50;not null;default:'0'"`
	Status    string `gorm:"size:20;not null;default:pending;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Owner *userModel `gorm:"foreignKey:UserID"`
}

func (partnerModel) TableName() string { return "partners" }

func userFromDomain(u *domain.User) *userModel {
	return &userModel{
		ID:              u.ID,
		Username:        u.Username,
		Email:           domain.NormalizeEmail(u.Email),
		PasswordHash:    u.PasswordHash,
		Role:            u.Role.String(),
		PartnerID:       u.PartnerID,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// toDomain maps the soft-delete marker to the user's lifecycle.
func (m *userModel) toDomain() *domain.User {
	u := &domain.User{
		ID:              m.ID,
		Username:        m.Username,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		Role:            domain.Role(m.Role),
		PartnerID:       m.PartnerID,
		EmailVerifiedAt: m.EmailVerifiedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		u.Lifecycle = domain.LifecycleDeactivated
	}
	return u
}

func partnerFromDomain(p *domain.Partner) *partnerModel {
	return &partnerModel{
		ID:        p.ID,
		UserID:    p.OwnerID,
		MitraName: p.MitraName,
		Address:   p.Address,
		Contact:   p.Contact,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *partnerModel) toDomain() *domain.Partner {
	p := &domain.Partner{
		ID:        m.ID,
		OwnerID:   m.UserID,
		MitraName: m.MitraName,
		Address:   m.Address,
		Contact:   m.Contact,
		Status:    domain.PartnerStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Owner != nil {
		p.Owner = &domain.PartnerOwner{
			UserID:   m.Owner.ID,
			Username: m.Owner.Username,
			Email:    m.Owner.Email,
			Role:     domain.Role(m.Owner.Role),
		}
	}
	return p
}
