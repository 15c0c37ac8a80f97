package domain

import (
	"errors"
	"fmt"
)

// Authentication failures. All of them surface as 401.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing bearer token")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountDeactivated = errors.New("account has been deactivated")
	// ErrSubjectNotFound means a valid token points at a user that no longer exists.
	ErrSubjectNotFound = errors.New("token subject not found")
)

// Authorisation failures. All of them surface as 403.
var (
	ErrForbidden     = errors.New("insufficient permissions")
	ErrAdminRequired = fmt.Errorf("%w: admin access required", ErrForbidden)
)

// Store and validation errors.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidRole          = errors.New("invalid role")
	ErrPartnerNotFound      = errors.New("partner not found")
	ErrPartnerExists        = errors.New("user already has a partner account")
	ErrInvalidPartnerStatus = errors.New("invalid partner status")
	ErrRoleConflict         = errors.New("user role cannot be changed by this operation")
	ErrNotPartnerStaff      = errors.New("user is not staff of this partner")
)
