package order

import (
	"errors"
	"testing"

	"github.com/tindahan/tindahan/internal/domain"
)

func TestCreateRequestValidate(t *testing.T) {
	if err := (&CreateRequest{Quantity: 1}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (&CreateRequest{Quantity: 0}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Error("Validate() accepted zero quantity")
	}
	if err := (&CreateRequest{Quantity: -3}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Error("Validate() accepted negative quantity")
	}
}

func TestUpdateRequestValidate(t *testing.T) {
	n := 0
	if err := (&UpdateRequest{}).Validate(); err != nil {
		t.Errorf("Validate() of empty update error = %v", err)
	}
	if err := (&UpdateRequest{Quantity: &n}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Error("Validate() accepted zero quantity")
	}
}

func TestFilterNormalize(t *testing.T) {
	tests := []struct {
		name        string
		in          Filter
		wantPage    int
		wantPerPage int
	}{
		{"zero values", Filter{}, 1, DefaultPerPage},
		{"negative page", Filter{Page: -2, PerPage: 20}, 1, 20},
		{"per page too large", Filter{Page: 3, PerPage: 500}, 3, MaxPerPage},
		{"valid untouched", Filter{Page: 2, PerPage: 25}, 2, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.in
			f.Normalize()
			if f.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", f.Page, tt.wantPage)
			}
			if f.PerPage != tt.wantPerPage {
				t.Errorf("PerPage = %d, want %d", f.PerPage, tt.wantPerPage)
			}
		})
	}
}

func TestFilterOffset(t *testing.T) {
	f := Filter{Page: 3, PerPage: 10}
	if got := f.Offset(); got != 20 {
		t.Errorf("Offset() = %d, want 20", got)
	}
	f = Filter{Page: 1, PerPage: 10}
	if got := f.Offset(); got != 0 {
		t.Errorf("Offset() = %d, want 0", got)
	}
}
