// Package authz is the authorization policy engine. Every rule is a pure
// function from (principal, owner) to a Decision, so the whole permission
// surface is auditable in one file. Ownership is resolved by walking the
// profile → menu item → order chain upward through explicit foreign keys;
// callers pass the owning profile ID they resolved from that walk.
package authz

import (
	"github.com/tindahan/tindahan/internal/domain"
	"github.com/tindahan/tindahan/internal/domain/profile"
)

// Principal is the identity resolved from a request credential.
type Principal struct {
	ID               string
	Email            string
	FullBusinessName string
	Superuser        bool
	Staff            bool
}

// FromProfile builds a Principal from a stored profile.
func FromProfile(p *profile.Profile) *Principal {
	return &Principal{
		ID:               p.ID,
		Email:            p.Email,
		FullBusinessName: p.FullBusinessName,
		Superuser:        p.IsSuperuser,
		Staff:            p.IsStaff,
	}
}

// FromClaims builds a Principal from validated token claims.
func FromClaims(c *profile.TokenClaims) *Principal {
	return &Principal{
		ID:               c.ProfileID,
		Email:            c.Email,
		FullBusinessName: c.FullBusinessName,
		Superuser:        c.Superuser,
		Staff:            c.Staff,
	}
}

// Decision is the three-valued outcome of a policy check. The distinction
// between Unauthenticated and Forbidden is load-bearing: they map to 401
// and 403 respectively.
type Decision int

const (
	// Unauthenticated means no principal was resolved from the request.
	Unauthenticated Decision = iota
	// Forbidden means the principal was resolved but the policy denies.
	Forbidden
	// Allowed means the operation may proceed.
	Allowed
)

// String implements fmt.Stringer for log output.
func (d Decision) String() string {
	switch d {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Allowed:
		return "allowed"
	default:
		return "unknown"
	}
}

// Err converts a Decision into its sentinel error, or nil when allowed.
func (d Decision) Err() error {
	switch d {
	case Unauthenticated:
		return domain.ErrUnauthenticated
	case Forbidden:
		return domain.ErrForbidden
	default:
		return nil
	}
}

// decide applies the shared precedence: unauthenticated first, then the
// superuser short-circuit, then the ownership predicate.
func decide(p *Principal, allowed bool) Decision {
	if p == nil {
		return Unauthenticated
	}
	if p.Superuser {
		return Allowed
	}
	if allowed {
		return Allowed
	}
	return Forbidden
}

// CanListProfiles gates the list-all-profiles operation: superuser only.
func CanListProfiles(p *Principal) Decision {
	return decide(p, false)
}

// CanAccessProfile gates read, update, and delete of a profile: the
// profile itself or a superuser.
func CanAccessProfile(p *Principal, profileID string) Decision {
	return decide(p, p != nil && p.ID == profileID)
}

// CanCreateMenuItem gates menu item creation: any authenticated principal,
// who becomes the owner.
func CanCreateMenuItem(p *Principal) Decision {
	return decide(p, true)
}

// CanListMenuItems gates the list-all-menu-items operation: superuser only.
func CanListMenuItems(p *Principal) Decision {
	return decide(p, false)
}

// CanAccessMenuItem gates read, update, and delete of a menu item: its
// owning profile or a superuser.
func CanAccessMenuItem(p *Principal, ownerID string) Decision {
	return decide(p, p != nil && p.ID == ownerID)
}

// CanCreateOrder gates order creation against a menu item: the item's
// owner records its own sales. ownerID is the profile owning the target
// menu item.
func CanCreateOrder(p *Principal, ownerID string) Decision {
	return decide(p, p != nil && p.ID == ownerID)
}

// CanAccessOrder gates read, update, and delete of an order: ownership is
// transitive through the order's menu item.
func CanAccessOrder(p *Principal, ownerID string) Decision {
	return decide(p, p != nil && p.ID == ownerID)
}

// CanListOwnOrders gates the per-profile order listing: the profile itself
// or a superuser.
func CanListOwnOrders(p *Principal, profileID string) Decision {
	return decide(p, p != nil && p.ID == profileID)
}
