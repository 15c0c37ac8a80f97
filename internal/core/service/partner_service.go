package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitrahub/auth-api/internal/core/domain"
	"github.com/mitrahub/auth-api/internal/core/ports"
	"github.com/mitrahub/auth-api/internal/metrics"
)

const defaultPartnerSort = "created_at"

var partnerSortColumns = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
	"mitra_name": {},
	"status":     {},
}

// PartnerService manages partner organisations. Every write that changes a
// user's role runs in the same transaction as the partner write.
type PartnerService struct {
	partners ports.PartnerRepository
	users    ports.UserRepository
	tx       ports.Transactor
	logger   zerolog.Logger
}

func NewPartnerService(partners ports.PartnerRepository, users ports.UserRepository, tx ports.Transactor, logger zerolog.Logger) *PartnerService {
	return &PartnerService{partners: partners, users: users, tx: tx, logger: logger}
}

func (s *PartnerService) List(ctx context.Context, input ports.ListPartnersInput) (*ports.ListPartnersResult, error) {
	filter := ports.ListPartnersFilter{
		Search:   strings.TrimSpace(input.Search),
		SortBy:   defaultPartnerSort,
		SortDesc: !strings.EqualFold(strings.TrimSpace(input.SortOrder), "ASC"),
	}
	if input.Status != "" {
		st, err := domain.ParsePartnerStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = string(st)
	}
	if _, ok := partnerSortColumns[input.SortBy]; ok {
		filter.SortBy = input.SortBy
	}
	filter.Page, filter.Limit = normalizePage(input.Page, input.Limit)

	items, total, err := s.partners.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list partners")
		return nil, err
	}
	return &ports.ListPartnersResult{
		Items:      items,
		Pagination: newPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *PartnerService) Get(ctx context.Context, id string) (*domain.Partner, error) {
	return s.partners.FindByID(ctx, id)
}

// Create registers a partner for an active non-admin user who does not own one
// yet and promotes that user to mitra.
func (s *PartnerService) Create(ctx context.Context, input ports.CreatePartnerInput) (*domain.Partner, error) {
	status := domain.PartnerPending
	if input.Status != "" {
		st, err := domain.ParsePartnerStatus(input.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	contact := strings.TrimSpace(input.Contact)
	if contact == "" {
		contact = domain.DefaultPartnerContact
	}

	var created *domain.Partner
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		owner, err := s.activeUser(ctx, input.UserID)
		if err != nil {
			return err
		}
		if owner.Role.IsAdmin() {
			return domain.ErrRoleConflict
		}

		_, err = s.partners.FindActiveByOwner(ctx, owner.ID)
		switch {
		case err == nil:
			return domain.ErrPartnerExists
		case !errors.Is(err, domain.ErrPartnerNotFound):
			return err
		}

		now := time.Now().UTC()
		p := &domain.Partner{
			ID:        uuid.NewString(),
			OwnerID:   owner.ID,
			MitraName: strings.TrimSpace(input.MitraName),
			Address:   strings.TrimSpace(input.Address),
			Contact:   contact,
			Status:    status,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.partners.Create(ctx, p); err != nil {
			return err
		}
		if err := s.users.UpdateRole(ctx, owner.ID, domain.RoleMitra, &p.ID); err != nil {
			return err
		}

		p.Owner = &domain.PartnerOwner{UserID: owner.ID, Username: owner.Username, Email: owner.Email, Role: domain.RoleMitra}
		created = p
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", input.UserID).Msg("partner create rolled back")
		return nil, err
	}

	metrics.RoleTransitionsTotal.WithLabelValues("promote_mitra").Inc()
	s.logger.Info().Str("partner_id", created.ID).Str("user_id", created.OwnerID).Msg("partner created")
	return created, nil
}

// Update changes partner attributes. Ownership and role are never touched here.
func (s *PartnerService) Update(ctx context.Context, id string, update domain.PartnerUpdate) (*domain.Partner, error) {
	if update.Empty() {
		return s.partners.FindByID(ctx, id)
	}
	p, err := s.partners.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("partner_id", id).Msg("partner updated")
	return p, nil
}

// Delete soft-deletes the partner and demotes its owner to customer.
func (s *PartnerService) Delete(ctx context.Context, id string) error {
	var ownerID string
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.partners.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.partners.SoftDelete(ctx, p.ID); err != nil {
			return err
		}
		ownerID = p.OwnerID
		return s.users.UpdateRole(ctx, p.OwnerID, domain.RoleCustomer, nil)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("partner_id", id).Msg("partner delete rolled back")
		return err
	}

	metrics.RoleTransitionsTotal.WithLabelValues("demote_customer").Inc()
	s.logger.Info().Str("partner_id", id).Str("user_id", ownerID).Msg("partner deleted")
	return nil
}

// AttachStaff makes a customer staff of the partner. Attaching a user who is
// already staff of the same partner is a no-op.
func (s *PartnerService) AttachStaff(ctx context.Context, partnerID, userID string) (*domain.User, error) {
	var (
		staff   *domain.User
		changed bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.partners.FindByID(ctx, partnerID)
		if err != nil {
			return err
		}
		u, err := s.activeUser(ctx, userID)
		if err != nil {
			return err
		}

		switch {
		case u.ID == p.OwnerID:
			return domain.ErrRoleConflict
		case u.Role == domain.RoleStaff && u.PartnerID != nil && *u.PartnerID == p.ID:
			staff = u
			return nil
		case u.Role != domain.RoleCustomer:
			return domain.ErrRoleConflict
		}

		if err := s.users.UpdateRole(ctx, u.ID, domain.RoleStaff, &p.ID); err != nil {
			return err
		}
		u.Role = domain.RoleStaff
		u.PartnerID = &p.ID
		staff = u
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return staff, nil
	}

	metrics.RoleTransitionsTotal.WithLabelValues("attach_staff").Inc()
	s.logger.Info().Str("partner_id", partnerID).Str("user_id", userID).Msg("staff attached")
	return staff, nil
}

// DetachStaff returns a staff member of the partner to customer.
func (s *PartnerService) DetachStaff(ctx context.Context, partnerID, userID string) (*domain.User, error) {
	var user *domain.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := s.partners.FindByID(ctx, partnerID)
		if err != nil {
			return err
		}
		u, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if u.Role != domain.RoleStaff || u.PartnerID == nil || *u.PartnerID != p.ID {
			return domain.ErrNotPartnerStaff
		}

		if err := s.users.UpdateRole(ctx, u.ID, domain.RoleCustomer, nil); err != nil {
			return err
		}
		u.Role = domain.RoleCustomer
		u.PartnerID = nil
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RoleTransitionsTotal.WithLabelValues("detach_staff").Inc()
	s.logger.Info().Str("partner_id", partnerID).Str("user_id", userID).Msg("staff detached")
	return user, nil
}

// activeUser loads a user and treats deactivated accounts as missing.
func (s *PartnerService) activeUser(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.Active() {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
