package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

// PartnerRepository implements ports.PartnerRepository. GORM's soft-delete
// scope hides deleted partners from every query.
type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

// withOwner preloads the owner even when the owning user is deactivated.
func withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("Owner", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
}

func (r *PartnerRepository) Create(ctx context.Context, p *domain.Partner) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m := partnerFromDomain(p)
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrPartnerExists
		}
		return fmt.Errorf("create partner: %w", err)
	}
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *PartnerRepository) FindByID(ctx context.Context, id string) (*domain.Partner, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrPartnerNotFound
	}
	var m partnerModel
	if err := withOwner(conn(ctx, r.db)).First(&m, "id = ?", id).Error; err != nil {
		return nil, partnerError(err)
	}
	return m.toDomain(), nil
}

func (r *PartnerRepository) FindActiveByOwner(ctx context.Context, userID string) (*domain.Partner, error) {
	var m partnerModel
	if err := conn(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, partnerError(err)
	}
	return m.toDomain(), nil
}

func (r *PartnerRepository) Update(ctx context.Context, id string, u domain.PartnerUpdate) (*domain.Partner, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrPartnerNotFound
	}

	fields := make(map[string]any, 4)
	if u.MitraName != nil {
		fields["mitra_name"] = *u.MitraName
	}
	if u.Address != nil {
		fields["address"] = *u.Address
	}
	if u.Contact != nil {
		fields["contact"] = *u.Contact
	}
	if u.Status != nil {
		fields["status"] = string(*u.Status)
	}

	if len(fields) > 0 {
		res := conn(ctx, r.db).Model(&partnerModel{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("update partner: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrPartnerNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *PartnerRepository) SoftDelete(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Delete(&partnerModel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete partner: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPartnerNotFound
	}
	return nil
}

func (r *PartnerRepository) List(ctx context.Context, f ports.ListPartnersFilter) ([]*domain.Partner, int64, error) {
	q := conn(ctx, r.db).Model(&partnerModel{})
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(mitra_name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(contact) LIKE ?", like, like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count partners: %w", err)
	}

	var rows []partnerModel
	err := withOwner(q).
		Order(clause.OrderByColumn{Column: clause.Column{Name: f.SortBy}, Desc: f.SortDesc}).
		Order("id").
		Offset((f.Page - 1) * f.Limit).Limit(f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list partners: %w", err)
	}

	out := make([]*domain.Partner, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

func partnerError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrPartnerNotFound
	}
	return fmt.Errorf("query partner: %w", err)
}
