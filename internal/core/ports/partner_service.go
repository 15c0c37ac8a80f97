package ports

import (
	"context"

	"github.com/mitrahub/auth-api/internal/core/domain"
)

// CreatePartnerInput carries the data needed to register a partner.
type CreatePartnerInput struct {
	UserID    string
	MitraName string
	Address   string
	Contact   string // defaults to domain.DefaultPartnerContact
	Status    string // defaults to pending
}

// ListPartnersInput carries the raw list parameters from the transport layer.
type ListPartnersInput struct {
	Search    string
	Status    string
	SortBy    string
	SortOrder string // ASC or DESC, case-insensitive
	Page      int
	Limit     int
}

// Pagination describes the page returned by a list call.
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
}

// ListPartnersResult is returned by ListPartners.
type ListPartnersResult struct {
	Items      []*domain.Partner
	Pagination Pagination
}

type PartnerService interface {
	List(ctx context.Context, input ListPartnersInput) (*ListPartnersResult, error)
	Get(ctx context.Context, id string) (*domain.Partner, error)
	// Create registers the partner and promotes its owner to mitra atomically.
	Create(ctx context.Context, input CreatePartnerInput) (*domain.Partner, error)
	Update(ctx context.Context, id string, update domain.PartnerUpdate) (*domain.Partner, error)
	// Delete soft-deletes the partner and demotes its owner to customer atomically.
	Delete(ctx context.Context, id string) error
	AttachStaff(ctx context.Context, partnerID, userID string) (*domain.User, error)
	DetachStaff(ctx context.Context, partnerID, userID string) (*domain.User, error)
}
