package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tindahan/tindahan/internal/domain"
	"github.com/tindahan/tindahan/internal/domain/profile"
)

const profileColumns = `id, email, business_name, identifier, full_business_name,
	owner_surname, owner_given_name, address, city, state,
	is_active, is_staff, is_superuser, password_hash, created_at, updated_at`

func (s *Store) CreateProfile(ctx context.Context, p *profile.Profile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_profiles (id, email, business_name, identifier, full_business_name,
			owner_surname, owner_given_name, address, city, state,
			is_active, is_staff, is_superuser, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.Email, p.BusinessName, p.Identifier, p.FullBusinessName,
		p.OwnerSurname, p.OwnerGivenName, p.Address, p.City, p.State,
		p.IsActive, p.IsStaff, p.IsSuperuser, p.PasswordHash, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return duplicateWrap(err, "create profile")
	}
	return nil
}

func (s *Store) GetProfile(ctx context.Context, id string) (*profile.Profile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE id = $1`, id)

	p, err := scanProfile(row)
	if err != nil {
		return nil, notFoundWrap(err, "get profile")
	}
	return p, nil
}

func (s *Store) GetProfileByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE email = $1`, email)

	p, err := scanProfile(row)
	if err != nil {
		return nil, notFoundWrap(err, "get profile by email")
	}
	return p, nil
}

func (s *Store) GetProfileByFullBusinessName(ctx context.Context, fbn string) (*profile.Profile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE full_business_name = $1`, fbn)

	p, err := scanProfile(row)
	if err != nil {
		return nil, notFoundWrap(err, "get profile by business name")
	}
	return p, nil
}

func (s *Store) ListProfiles(ctx context.Context) ([]profile.Profile, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM user_profiles ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (s *Store) UpdateProfile(ctx context.Context, p *profile.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx, `
		UPDATE user_profiles SET email = $2, business_name = $3, identifier = $4,
			full_business_name = $5, owner_surname = $6, owner_given_name = $7,
			address = $8, city = $9, state = $10,
			is_active = $11, is_staff = $12, is_superuser = $13,
			password_hash = $14, updated_at = $15
		WHERE id = $1`,
		p.ID, p.Email, p.BusinessName, p.Identifier,
		p.FullBusinessName, p.OwnerSurname, p.OwnerGivenName,
		p.Address, p.City, p.State,
		p.IsActive, p.IsStaff, p.IsSuperuser,
		p.PasswordHash, p.UpdatedAt,
	)
	if err != nil {
		return duplicateWrap(err, "update profile")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update profile %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete profile %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanProfile(row scannable) (*profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(&p.ID, &p.Email, &p.BusinessName, &p.Identifier, &p.FullBusinessName,
		&p.OwnerSurname, &p.OwnerGivenName, &p.Address, &p.City, &p.State,
		&p.IsActive, &p.IsStaff, &p.IsSuperuser, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
