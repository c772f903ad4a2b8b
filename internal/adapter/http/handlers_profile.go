package http

import (
	"net/http"

	"github.com/tindahan/tindahan/internal/domain/menu"
	"github.com/tindahan/tindahan/internal/domain/profile"
	"github.com/tindahan/tindahan/internal/middleware"
)

// RegisterProfile handles POST /api/v1/profiles (public)
func (h *Handlers) RegisterProfile(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[profile.CreateRequest](w, r)
	if !ok {
		return
	}

	p, err := h.Profiles.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "profile not found")
		return
	}

	h.Metrics.ProfileRegistered(r.Context())
	writeJSON(w, http.StatusCreated, p)
}

// ListProfiles handles GET /api/v1/profiles (superuser only)
func (h *Handlers) ListProfiles(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	profiles, err := h.Profiles.List(r.Context(), caller)
	if err != nil {
		writeDomainError(w, err, "profiles not found")
		return
	}
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

// GetProfile handles GET /api/v1/profiles/{fbn}
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	detail, err := h.Profiles.Get(r.Context(), caller, urlParam(r, "fbn"))
	if err != nil {
		writeDomainError(w, err, "profile not found")
		return
	}
	if detail.MenuItems == nil {
		detail.MenuItems = []menu.Item{}
	}
	writeJSON(w, http.StatusOK, detail)
}

// UpdateProfile handles PUT /api/v1/profiles/{fbn}
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	req, ok := readJSON[profile.UpdateRequest](w, r)
	if !ok {
		return
	}

	p, err := h.Profiles.Update(r.Context(), caller, urlParam(r, "fbn"), req)
	if err != nil {
		writeDomainError(w, err, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProfile handles DELETE /api/v1/profiles/{fbn}
func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	caller := middleware.PrincipalFromContext(r.Context())
	if err := h.Profiles.Delete(r.Context(), caller, urlParam(r, "fbn")); err != nil {
		writeDomainError(w, err, "profile not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
