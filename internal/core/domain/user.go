package domain

import (
	"strings"
	"time"
)

// Lifecycle is the account state derived from the soft-delete marker at the
// storage boundary. Business code never looks at deletion timestamps.
type Lifecycle uint8

const (
	LifecycleActive Lifecycle = iota
	LifecycleDeactivated
)

func (l Lifecycle) String() string {
	if l == LifecycleDeactivated {
		return "deactivated"
	}
	return "active"
}

// User models an account that can authenticate against the API.
type User struct {
	ID              string     `json:"user_id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Role            Role       `json:"role"`
	PartnerID       *string    `json:"partner_id"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	Lifecycle       Lifecycle  `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Active reports whether the account may authenticate.
func (u *User) Active() bool { return u != nil && u.Lifecycle == LifecycleActive }

// PublicUser is the sanitized projection of a User sent to clients.
type PublicUser struct {
	UserID          string     `json:"user_id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	Role            Role       `json:"role"`
	PartnerID       *string    `json:"partner_id"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// Public returns the client-safe view of u.
func (u *User) Public() PublicUser {
	p := PublicUser{
		UserID:          u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Role:            u.Role,
		PartnerID:       u.PartnerID,
		EmailVerifiedAt: u.EmailVerifiedAt,
	}
	if !u.CreatedAt.IsZero() {
		created := u.CreatedAt
		p.CreatedAt = &created
	}
	if !u.UpdatedAt.IsZero() {
		updated := u.UpdatedAt
		p.UpdatedAt = &updated
	}
	return p
}

// NormalizeEmail canonicalises an email for case-insensitive comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
