package profile

import (
	"errors"
	"testing"

	"github.com/tindahan/tindahan/internal/domain"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		businessName string
		identifier   string
		want         string
	}{
		{"Sari Sari", "corner", "Sari Sari-corner"},
		{"Kape", "", "Kape-"},
		{"", "solo", "-solo"},
	}
	for _, tt := range tests {
		if got := FullName(tt.businessName, tt.identifier); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.businessName, tt.identifier, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"test@TeSt2.cOm", "test@test2.com"},
		{"MixedCase@Example.COM", "MixedCase@example.com"},
		{"  spaced@example.com  ", "spaced@example.com"},
		{"no-at-sign", "no-at-sign"},
		{`"odd@local"@Example.Com`, `"odd@local"@example.com`},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProfileNormalize(t *testing.T) {
	p := Profile{
		Email:        "Owner@Shop.TEST",
		BusinessName: "Lutong Bahay",
		Identifier:   "harrison",
		// A stale client-supplied value must be overwritten.
		FullBusinessName: "bogus",
	}
	p.Normalize()

	if p.FullBusinessName != "Lutong Bahay-harrison" {
		t.Errorf("FullBusinessName = %q, want %q", p.FullBusinessName, "Lutong Bahay-harrison")
	}
	if p.Email != "Owner@shop.test" {
		t.Errorf("Email = %q, want %q", p.Email, "Owner@shop.test")
	}
}

func TestCreateRequestValidate(t *testing.T) {
	valid := CreateRequest{
		Email:          "owner@shop.test",
		BusinessName:   "Sari Sari",
		Identifier:     "corner",
		OwnerSurname:   "Cruz",
		OwnerGivenName: "Jose",
		Password:       "secret-pass",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	// Identifier is optional.
	noID := valid
	noID.Identifier = ""
	if err := noID.Validate(); err != nil {
		t.Errorf("Validate() without identifier error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*CreateRequest)
	}{
		{"empty email", func(r *CreateRequest) { r.Email = "" }},
		{"malformed email", func(r *CreateRequest) { r.Email = "not-an-email" }},
		{"empty business name", func(r *CreateRequest) { r.BusinessName = "" }},
		{"empty surname", func(r *CreateRequest) { r.OwnerSurname = "" }},
		{"empty given name", func(r *CreateRequest) { r.OwnerGivenName = "" }},
		{"empty password", func(r *CreateRequest) { r.Password = "" }},
		{"short password", func(r *CreateRequest) { r.Password = "seven77" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if err := req.Validate(); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Validate() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdateRequestValidate(t *testing.T) {
	str := func(s string) *string { return &s }

	if err := (&UpdateRequest{}).Validate(); err != nil {
		t.Errorf("Validate() of empty update error = %v", err)
	}
	if err := (&UpdateRequest{BusinessName: str("")}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Error("Validate() accepted blank business name")
	}
	if err := (&UpdateRequest{Email: str("bad")}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Error("Validate() accepted malformed email")
	}
	if err := (&UpdateRequest{Password: str("short")}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Error("Validate() accepted short password")
	}
}
