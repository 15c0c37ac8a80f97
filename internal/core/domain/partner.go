package domain

import (
	"fmt"
	"time"
)

// PartnerStatus tracks the onboarding state of a partner organisation.
type PartnerStatus string

const (
	PartnerPending  PartnerStatus = "pending"
	PartnerActive   PartnerStatus = "active"
	PartnerInactive PartnerStatus = "inactive"
)

// DefaultPartnerContact is stored when a partner is created without a contact.
const DefaultPartnerContact = "0"

// ParsePartnerStatus validates a raw status string.
func ParsePartnerStatus(s string) (PartnerStatus, error) {
	switch st := PartnerStatus(s); st {
	case PartnerPending, PartnerActive, PartnerInactive:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPartnerStatus, s)
}

// Partner is a partner (mitra) organisation owned by exactly one user.
type Partner struct {
	ID        string        `json:"partner_id"`
	OwnerID   string        `json:"user_id"`
	MitraName string        `json:"mitra_name"`
	Address   string        `json:"address"`
	Contact   string        `json:"contact"`
	Status    PartnerStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Owner     *PartnerOwner `json:"user,omitempty"`
}

// PartnerOwner is the owner projection embedded in partner responses.
type PartnerOwner struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// PartnerUpdate carries the mutable partner fields. Nil means unchanged.
type PartnerUpdate struct {
	MitraName *string
	Address   *string
	Contact   *string
	Status    *PartnerStatus
}

// Empty reports whether the update changes nothing.
func (u PartnerUpdate) Empty() bool {
	return u.MitraName == nil && u.Address == nil && u.Contact == nil && u.Status == nil
}
