package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

type partnerRecord struct {
	partner domain.Partner
	deleted bool
}

func (r *partnerRecord) clone() *partnerRecord {
	c := *r
	c.partner.Owner = nil
	return &c
}

type PartnerRepository struct {
	s *Store
}

func (r *PartnerRepository) Create(ctx context.Context, p *domain.Partner) error {
	defer r.s.lock(ctx)()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := r.s.partners[p.ID]; exists {
		return domain.ErrPartnerExists
	}
	for _, rec := range r.s.partners {
		if !rec.deleted && rec.partner.OwnerID == p.OwnerID {
			return domain.ErrPartnerExists
		}
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	rec := &partnerRecord{partner: *p}
	r.s.partners[p.ID] = rec.clone()
	return nil
}

func (r *PartnerRepository) FindByID(ctx context.Context, id string) (*domain.Partner, error) {
	defer r.s.lock(ctx)()
	rec, ok := r.s.partners[id]
	if !ok || rec.deleted {
		return nil, domain.ErrPartnerNotFound
	}
	return r.withOwner(rec), nil
}

func (r *PartnerRepository) FindActiveByOwner(ctx context.Context, userID string) (*domain.Partner, error) {
	defer r.s.lock(ctx)()
	for _, rec := range r.s.partners {
		if !rec.deleted && rec.partner.OwnerID == userID {
			return r.withOwner(rec), nil
		}
	}
	return nil, domain.ErrPartnerNotFound
}

func (r *PartnerRepository) Update(ctx context.Context, id string, u domain.PartnerUpdate) (*domain.Partner, error) {
	defer r.s.lock(ctx)()
	rec, ok := r.s.partners[id]
	if !ok || rec.deleted {
		return nil, domain.ErrPartnerNotFound
	}
	if u.MitraName != nil {
		rec.partner.MitraName = *u.MitraName
	}
	if u.Address != nil {
		rec.partner.Address = *u.Address
	}
	if u.Contact != nil {
		rec.partner.Contact = *u.Contact
	}
	if u.Status != nil {
		rec.partner.Status = *u.Status
	}
	rec.partner.UpdatedAt = time.Now().UTC()
	return r.withOwner(rec), nil
}

func (r *PartnerRepository) SoftDelete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	rec, ok := r.s.partners[id]
	if !ok || rec.deleted {
		return domain.ErrPartnerNotFound
	}
	rec.deleted = true
	rec.partner.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *PartnerRepository) List(ctx context.Context, f ports.ListPartnersFilter) ([]*domain.Partner, int64, error) {
	defer r.s.lock(ctx)()

	search := strings.ToLower(f.Search)
	var all []*domain.Partner
	for _, rec := range r.s.partners {
		p := rec.partner
		if rec.deleted {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.MitraName), search) &&
			!strings.Contains(strings.ToLower(p.Address), search) &&
			!strings.Contains(strings.ToLower(p.Contact), search) {
			continue
		}
		all = append(all, r.withOwner(rec))
	}

	less := partnerLess(f.SortBy)
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if f.SortDesc {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return all[i].ID < all[j].ID
	})
	return page(all, f.Page, f.Limit), int64(len(all)), nil
}

func partnerLess(column string) func(a, b *domain.Partner) bool {
	switch column {
	case "updated_at":
		return func(a, b *domain.Partner) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case "mitra_name":
		return func(a, b *domain.Partner) bool { return a.MitraName < b.MitraName }
	case "status":
		return func(a, b *domain.Partner) bool { return a.Status < b.Status }
	default:
		return func(a, b *domain.Partner) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

// withOwner copies rec and attaches the owner projection. Caller holds the lock.
func (r *PartnerRepository) withOwner(rec *partnerRecord) *domain.Partner {
	p := rec.clone().partner
	if owner, ok := r.s.users[p.OwnerID]; ok {
		p.Owner = &domain.PartnerOwner{
			UserID:   owner.user.ID,
			Username: owner.user.Username,
			Email:    owner.user.Email,
			Role:     owner.user.Role,
		}
	}
	return &p
}
