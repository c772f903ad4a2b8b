// Package profile defines the user profile domain model. A profile is one
// business tenant: it owns menu items and, transitively, the orders
// recorded against them.
package profile

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/tindahan/tindahan/internal/domain"
)

// Profile represents one registered business.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`

	BusinessName string `json:"business_name"`
	Identifier   string `json:"identifier"`
	// FullBusinessName is the composite unique key, always
	// "{business_name}-{identifier}". Derived on every save, never
	// accepted from a client.
	FullBusinessName string `json:"full_business_name"`

	OwnerSurname   string `json:"owner_surname"`
	OwnerGivenName string `json:"owner_given_name"`

	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`

	IsActive    bool `json:"is_active"`
	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"is_superuser"`

	PasswordHash string `json:"-"` // never serialized

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName derives the composite business key from its constituent parts.
// Empty segments still concatenate; the uniqueness constraint rejects the
// resulting collisions.
func FullName(businessName, identifier string) string {
	return businessName + "-" + identifier
}

// NormalizeEmail lowercases the domain part of an email address. The local
// part is preserved as entered.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// Normalize recomputes every derived field. It must run before each
// persist, on create and update alike, so stored values never drift from
// their sources.
func (p *Profile) Normalize() {
	p.Email = NormalizeEmail(p.Email)
	p.FullBusinessName = FullName(p.BusinessName, p.Identifier)
}

// CreateRequest is the input for registering a new business profile.
type CreateRequest struct {
	Email          string `json:"email"`
	BusinessName   string `json:"business_name"`
	Identifier     string `json:"identifier"`
	OwnerSurname   string `json:"owner_surname"`
	OwnerGivenName string `json:"owner_given_name"`
	Password       string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
}

// Validate checks that the CreateRequest has all required fields.
// Identifier and the address fields are optional.
func (r *CreateRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	if r.BusinessName == "" {
		return fmt.Errorf("%w: business_name is required", domain.ErrValidation)
	}
	if r.OwnerSurname == "" {
		return fmt.Errorf("%w: owner_surname is required", domain.ErrValidation)
	}
	if r.OwnerGivenName == "" {
		return fmt.Errorf("%w: owner_given_name is required", domain.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest is the input for updating an existing profile. Nil fields
// are left unchanged. FullBusinessName is recomputed server-side whenever
// BusinessName or Identifier changes.
type UpdateRequest struct {
	Email          *string `json:"email,omitempty"`
	BusinessName   *string `json:"business_name,omitempty"`
	Identifier     *string `json:"identifier,omitempty"`
	OwnerSurname   *string `json:"owner_surname,omitempty"`
	OwnerGivenName *string `json:"owner_given_name,omitempty"`
	Password       *string `json:"password,omitempty"` //nolint:gosec // request field, not a hardcoded secret
	Address        *string `json:"address,omitempty"`
	City           *string `json:"city,omitempty"`
	State          *string `json:"state,omitempty"`
}

// Validate rejects updates that would blank out required fields.
func (r *UpdateRequest) Validate() error {
	if r.Email != nil {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			return fmt.Errorf("%w: invalid email format", domain.ErrValidation)
		}
	}
	if r.BusinessName != nil && *r.BusinessName == "" {
		return fmt.Errorf("%w: business_name must not be empty", domain.ErrValidation)
	}
	if r.Password != nil && len(*r.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}
	return nil
}

// LoginRequest is the input for credential authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
}

// Validate checks that the LoginRequest has all required fields.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if r.Password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	return nil
}

// LoginResponse is returned after successful authentication.
type LoginResponse struct {
	AccessToken string  `json:"access_token"` //nolint:gosec // response field, not a hardcoded secret
	ExpiresIn   int     `json:"expires_in"`   // seconds until access token expires
	Profile     Profile `json:"profile"`
}

// TokenClaims contains the JWT payload fields.
type TokenClaims struct {
	ProfileID        string `json:"sub"`
	Email            string `json:"email"`
	FullBusinessName string `json:"fbn"`
	Superuser        bool   `json:"su"`
	Staff            bool   `json:"staff"`
	IssuedAt         int64  `json:"iat"`
	Expiry           int64  `json:"exp"`
	Audience         string `json:"aud"`
	Issuer           string `json:"iss"`
}

// RefreshToken represents a stored refresh token. Only the SHA-256 hash of
// the raw token is persisted.
type RefreshToken struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
