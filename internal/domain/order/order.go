// Package order defines the item order domain model. An order is one sale
// line recorded against a menu item; its owner is the profile that owns
// the menu item.
package order

import (
	"fmt"
	"time"

	"github.com/tindahan/tindahan/internal/domain"
)

// Order is one recorded sale against a menu item. MenuItemID is set at
// creation and immutable afterwards.
type Order struct {
	ID              string    `json:"id"`
	Quantity        int       `json:"quantity"`
	OrderedOn       time.Time `json:"ordered_on"`
	AdditionalNotes string    `json:"additional_notes,omitempty"`
	MenuItemID      string    `json:"menu_item_id"`
}

// CreateRequest is the input for recording an order. The menu item comes
// from the request path, never the body.
type CreateRequest struct {
	Quantity        int    `json:"quantity"`
	AdditionalNotes string `json:"additional_notes,omitempty"`
}

// Validate checks that the CreateRequest has a sensible quantity.
func (r *CreateRequest) Validate() error {
	if r.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest is the input for amending an order. Nil fields are left
// unchanged. The menu item reference cannot be changed.
type UpdateRequest struct {
	Quantity        *int    `json:"quantity,omitempty"`
	AdditionalNotes *string `json:"additional_notes,omitempty"`
}

// Validate rejects updates with an invalid quantity.
func (r *UpdateRequest) Validate() error {
	if r.Quantity != nil && *r.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	return nil
}

// Filter restricts and pages a nested order listing. Orders are always
// returned newest first. Date, when set, restricts to orders placed on
// that UTC calendar date.
type Filter struct {
	Date    *time.Time
	Page    int
	PerPage int
}

// DefaultPerPage is the nested listing page size when none is requested.
const DefaultPerPage = 10

// MaxPerPage caps a client-requested page size.
const MaxPerPage = 100

// Normalize clamps paging values into their valid ranges.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
}

// Offset returns the row offset for the current page.
func (f Filter) Offset() int {
	return (f.Page - 1) * f.PerPage
}
