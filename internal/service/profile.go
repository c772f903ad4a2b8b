package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tindahan/tindahan/internal/authz"
	"github.com/tindahan/tindahan/internal/domain"
	"github.com/tindahan/tindahan/internal/domain/menu"
	"github.com/tindahan/tindahan/internal/domain/profile"
	"github.com/tindahan/tindahan/internal/port/database"
)

// ProfileService manages business profile registration and lifecycle.
type ProfileService struct {
	store  database.Store
	auth   *AuthService
	logger *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store database.Store, auth *AuthService, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: store, auth: auth, logger: logger}
}

// ProfileDetail is a profile with its menu items attached, returned by Get.
type ProfileDetail struct {
	profile.Profile
	MenuItems []menu.Item `json:"menu_items"`
}

// Register creates a new business profile. Registration is open: no
// principal is required. The composite business key and the normalized
// email are derived before persisting.
func (s *ProfileService) Register(ctx context.Context, req profile.CreateRequest) (*profile.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &profile.Profile{
		ID:             uuid.New().String(),
		Email:          req.Email,
		BusinessName:   req.BusinessName,
		Identifier:     req.Identifier,
		OwnerSurname:   req.OwnerSurname,
		OwnerGivenName: req.OwnerGivenName,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		IsActive:       true,
		PasswordHash:   hash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	p.Normalize()

	if err := s.store.CreateProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.logger.Info("profile registered",
		"profile_id", p.ID,
		"full_business_name", p.FullBusinessName)

	return p, nil
}

// Get returns the profile at the given full business name with its menu
// items. Visible only to the profile itself or a superuser.
func (s *ProfileService) Get(ctx context.Context, caller *authz.Principal, fbn string) (*ProfileDetail, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	p, err := s.store.GetProfileByFullBusinessName(ctx, fbn)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return s.detail(ctx, caller, p)
}

// GetSelf returns the caller's own profile with its menu items.
func (s *ProfileService) GetSelf(ctx context.Context, caller *authz.Principal) (*ProfileDetail, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	p, err := s.store.GetProfile(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return s.detail(ctx, caller, p)
}

func (s *ProfileService) detail(ctx context.Context, caller *authz.Principal, p *profile.Profile) (*ProfileDetail, error) {
	if err := authz.CanAccessProfile(caller, p.ID).Err(); err != nil {
		return nil, err
	}

	items, err := s.store.ListMenuItemsByProfile(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}

	return &ProfileDetail{Profile: *p, MenuItems: items}, nil
}

// List returns every registered profile. Superuser only.
func (s *ProfileService) List(ctx context.Context, caller *authz.Principal) ([]profile.Profile, error) {
	if err := authz.CanListProfiles(caller).Err(); err != nil {
		return nil, err
	}
	return s.store.ListProfiles(ctx)
}

// Update applies a partial update to the profile at the given full
// business name. The composite business key is recomputed whenever its
// constituents change; a new password is hashed before storage.
func (s *ProfileService) Update(ctx context.Context, caller *authz.Principal, fbn string, req profile.UpdateRequest) (*profile.Profile, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.GetProfileByFullBusinessName(ctx, fbn)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if err := authz.CanAccessProfile(caller, p.ID).Err(); err != nil {
		return nil, err
	}

	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.BusinessName != nil {
		p.BusinessName = *req.BusinessName
	}
	if req.Identifier != nil {
		p.Identifier = *req.Identifier
	}
	if req.OwnerSurname != nil {
		p.OwnerSurname = *req.OwnerSurname
	}
	if req.OwnerGivenName != nil {
		p.OwnerGivenName = *req.OwnerGivenName
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.Password != nil {
		hash, err := s.auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		p.PasswordHash = hash
	}

	p.Normalize()
	p.UpdatedAt = time.Now()

	if err := s.store.UpdateProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return p, nil
}

// Delete removes the profile at the given full business name. Menu items
// and their orders cascade.
func (s *ProfileService) Delete(ctx context.Context, caller *authz.Principal, fbn string) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}

	p, err := s.store.GetProfileByFullBusinessName(ctx, fbn)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}

	if err := authz.CanAccessProfile(caller, p.ID).Err(); err != nil {
		return err
	}

	if err := s.store.DeleteProfile(ctx, p.ID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	s.logger.Info("profile deleted",
		"profile_id", p.ID,
		"full_business_name", p.FullBusinessName)

	return nil
}
