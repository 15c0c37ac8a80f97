package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

type userRecord struct {
	user      domain.User
	deletedAt *time.Time
}

func (r *userRecord) clone() *userRecord {
	c := &userRecord{user: r.user, deletedAt: r.deletedAt}
	if r.user.PartnerID != nil {
		pid := *r.user.PartnerID
		c.user.PartnerID = &pid
	}
	return c
}

func (r *userRecord) toDomain() *domain.User {
	u := r.clone().user
	u.Lifecycle = domain.LifecycleActive
	if r.deletedAt != nil {
		u.Lifecycle = domain.LifecycleDeactivated
	}
	return &u
}

type UserRepository struct {
	s *Store
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	defer r.s.lock(ctx)()
	rec, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return rec.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	defer r.s.lock(ctx)()
	email = domain.NormalizeEmail(email)
	for _, rec := range r.s.users {
		if rec.user.Email == email {
			return rec.toDomain(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	defer r.s.lock(ctx)()

	user.Email = domain.NormalizeEmail(user.Email)
	for _, rec := range r.s.users {
		if rec.user.Email == user.Email || rec.user.Username == user.Username {
			return domain.ErrUserExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = domain.DefaultRole
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	rec := &userRecord{user: *user}
	rec.user.Lifecycle = domain.LifecycleActive
	r.s.users[user.ID] = rec.clone()
	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	defer r.s.lock(ctx)()
	rec, ok := r.s.users[id]
	if !ok || rec.deletedAt != nil {
		return domain.ErrUserNotFound
	}
	rec.user.PasswordHash = hash
	rec.user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role, partnerID *string) error {
	defer r.s.lock(ctx)()
	rec, ok := r.s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	rec.user.Role = role
	rec.user.PartnerID = nil
	if partnerID != nil {
		pid := *partnerID
		rec.user.PartnerID = &pid
	}
	rec.user.UpdatedAt = time.Now().UTC()
	return nil
}

// Deactivate soft-deletes the user.
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	rec, ok := r.s.users[id]
	if !ok || rec.deletedAt != nil {
		return domain.ErrUserNotFound
	}
	now := time.Now().UTC()
	rec.deletedAt = &now
	return nil
}

func (r *UserRepository) List(ctx context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	defer r.s.lock(ctx)()

	all := make([]*domain.User, 0, len(r.s.users))
	for _, rec := range r.s.users {
		all = append(all, rec.toDomain())
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return page(all, f.Page, f.Limit), int64(len(all)), nil
}

func page[T any](items []T, p, limit int) []T {
	start := (p - 1) * limit
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
