// Package menu defines the menu item domain model.
package menu

import (
	"fmt"
	"strings"
	"time"

	"github.com/tindahan/tindahan/internal/domain"
)

// Item is one sellable menu entry belonging to exactly one profile.
// Name is unique across the whole system, not just per owner.
type Item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// URLParamName is the URL-safe slug, always derived from Name.
	// Recomputed on every save, never accepted from a client.
	URLParamName string    `json:"url_param_name"`
	Description  string    `json:"description"`
	Price        Price     `json:"price"`
	AddedOn      time.Time `json:"added_on"`
	ProfileID    string    `json:"profile_id"`
}

// Slugify derives the URL parameter name from an item name: lowercase,
// spaces replaced by hyphens.
func Slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// Normalize recomputes the slug from the current name. Runs before every
// persist.
func (i *Item) Normalize() {
	i.URLParamName = Slugify(i.Name)
}

// CreateRequest is the input for adding a menu item. The owning profile is
// always the authenticated caller; a client-supplied owner is ignored.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Price  `json:"price"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if r.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest is the input for updating a menu item. Nil fields are left
// unchanged; the slug is recomputed whenever Name changes. The owning
// profile is immutable.
type UpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *Price  `json:"price,omitempty"`
}

// Validate rejects updates that would blank out required fields.
func (r *UpdateRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
	}
	return nil
}
