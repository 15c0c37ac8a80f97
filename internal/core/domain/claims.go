package domain

import "time"

// SessionClaims is the identity carried by a verified session token. Only
// UserID is trusted as current; everything else is a snapshot taken at issue time.
type SessionClaims struct {
	UserID    string
	Email     string
	Username  string
	Role      Role
	PartnerID *string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
