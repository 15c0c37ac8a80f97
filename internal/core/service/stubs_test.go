package service

import (
	"context"
	"sort"
	"strings"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users         map[string]*domain.User
	updateHashErr error // if set, UpdatePasswordHash returns this error
	updateRoleErr error // if set, UpdateRole returns this error
	hashUpdates   int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.PartnerID != nil {
		pid := *u.PartnerID
		clone.PartnerID = &pid
	}
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) || u.Username == user.Username {
			return domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	if r.updateHashErr != nil {
		return r.updateHashErr
	}
	u, ok := r.users[id]
	if !ok || !u.Active() {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	r.hashUpdates++
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role, partnerID *string) error {
	if r.updateRoleErr != nil {
		return r.updateRoleErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	u.PartnerID = nil
	if partnerID != nil {
		pid := *partnerID
		u.PartnerID = &pid
	}
	return nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, f.Page, f.Limit), int64(len(all)), nil
}

type stubPartnerRepo struct {
	partners   map[string]*domain.Partner
	deleted    map[string]bool
	lastFilter ports.ListPartnersFilter
}

func newStubPartnerRepo() *stubPartnerRepo {
	return &stubPartnerRepo{
		partners: make(map[string]*domain.Partner),
		deleted:  make(map[string]bool),
	}
}

func clonePartner(p *domain.Partner) *domain.Partner {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPartnerRepo) Create(_ context.Context, p *domain.Partner) error {
	r.partners[p.ID] = clonePartner(p)
	return nil
}

func (r *stubPartnerRepo) FindByID(_ context.Context, id string) (*domain.Partner, error) {
	p, ok := r.partners[id]
	if !ok || r.deleted[id] {
		return nil, domain.ErrPartnerNotFound
	}
	return clonePartner(p), nil
}

func (r *stubPartnerRepo) FindActiveByOwner(_ context.Context, userID string) (*domain.Partner, error) {
	for id, p := range r.partners {
		if p.OwnerID == userID && !r.deleted[id] {
			return clonePartner(p), nil
		}
	}
	return nil, domain.ErrPartnerNotFound
}

func (r *stubPartnerRepo) Update(_ context.Context, id string, u domain.PartnerUpdate) (*domain.Partner, error) {
	p, ok := r.partners[id]
	if !ok || r.deleted[id] {
		return nil, domain.ErrPartnerNotFound
	}
	if u.MitraName != nil {
		p.MitraName = *u.MitraName
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.Contact != nil {
		p.Contact = *u.Contact
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	return clonePartner(p), nil
}

func (r *stubPartnerRepo) SoftDelete(_ context.Context, id string) error {
	if _, ok := r.partners[id]; !ok || r.deleted[id] {
		return domain.ErrPartnerNotFound
	}
	r.deleted[id] = true
	return nil
}

func (r *stubPartnerRepo) List(_ context.Context, f ports.ListPartnersFilter) ([]*domain.Partner, int64, error) {
	r.lastFilter = f
	var all []*domain.Partner
	for id, p := range r.partners {
		if r.deleted[id] {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		all = append(all, clonePartner(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, f.Page, f.Limit), int64(len(all)), nil
}

func paginate[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ---------------------------------------------------------------------------
// Snapshot transactor: restores both stubs when fn fails
// ---------------------------------------------------------------------------

type stubTransactor struct {
	users    *stubUserRepo
	partners *stubPartnerRepo
	calls    int
}

func (t *stubTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++

	users := make(map[string]*domain.User, len(t.users.users))
	for id, u := range t.users.users {
		users[id] = cloneUser(u)
	}
	partners := make(map[string]*domain.Partner, len(t.partners.partners))
	for id, p := range t.partners.partners {
		partners[id] = clonePartner(p)
	}
	deleted := make(map[string]bool, len(t.partners.deleted))
	for id, d := range t.partners.deleted {
		deleted[id] = d
	}

	if err := fn(ctx); err != nil {
		t.users.users = users
		t.partners.partners = partners
		t.partners.deleted = deleted
		return err
	}
	return nil
}
