package ports

import (
	"context"

	"github.com/mitrahub/auth-api/internal/core/domain"
)

// ListPartnersFilter carries the query parameters for listing partners.
// SortBy must already be a whitelisted column name.
type ListPartnersFilter struct {
	Search   string // case-insensitive substring of mitra_name, address or contact
	Status   string
	SortBy   string
	SortDesc bool
	Page     int // 1-based
	Limit    int
}

// PartnerRepository persists partner organisations. Soft-deleted partners are
// invisible to every method.
type PartnerRepository interface {
	Create(ctx context.Context, partner *domain.Partner) error
	// FindByID returns the partner with its owner projection populated.
	FindByID(ctx context.Context, id string) (*domain.Partner, error)
	FindActiveByOwner(ctx context.Context, userID string) (*domain.Partner, error)
	Update(ctx context.Context, id string, update domain.PartnerUpdate) (*domain.Partner, error)
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListPartnersFilter) ([]*domain.Partner, int64, error)
}
