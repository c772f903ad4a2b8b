package menu

import (
	"errors"
	"testing"

	"github.com/tindahan/tindahan/internal/domain"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pad Thai", "pad-thai"},
		{"Halo Halo Special", "halo-halo-special"},
		{"adobo", "adobo"},
		{"Bicol Express", "bicol-express"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestItemNormalize(t *testing.T) {
	i := Item{
		Name: "Sinigang na Baboy",
		// A stale slug must be overwritten from the name.
		URLParamName: "old-slug",
	}
	i.Normalize()
	if i.URLParamName != "sinigang-na-baboy" {
		t.Errorf("URLParamName = %q, want %q", i.URLParamName, "sinigang-na-baboy")
	}
}

func TestCreateRequestValidate(t *testing.T) {
	valid := CreateRequest{Name: "Adobo", Description: "braised pork", Price: 15000}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if err := (&CreateRequest{Description: "x"}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Error("Validate() accepted empty name")
	}
	if err := (&CreateRequest{Name: "x"}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Error("Validate() accepted empty description")
	}
}

func TestUpdateRequestValidate(t *testing.T) {
	empty := ""
	if err := (&UpdateRequest{}).Validate(); err != nil {
		t.Errorf("Validate() of empty update error = %v", err)
	}
	if err := (&UpdateRequest{Name: &empty}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Error("Validate() accepted blank name")
	}
}
