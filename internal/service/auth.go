package service

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tindahan/tindahan/internal/config"
	"github.com/tindahan/tindahan/internal/domain"
	"github.com/tindahan/tindahan/internal/domain/profile"
	"github.com/tindahan/tindahan/internal/port/database"
)

const (
	tokenAudience = "tindahan"
	tokenIssuer   = "tindahan-api"
)

// AuthService issues and validates session credentials. Passwords are
// bcrypt-hashed; access tokens are HS256 JWTs paired with rotating
// refresh tokens stored as SHA-256 hashes.
type AuthService struct {
	store  database.Store
	cfg    *config.Auth
	secret []byte
	claims *ristretto.Cache[string, *profile.TokenClaims]
}

// NewAuthService creates a new authentication service. The claims cache
// skips repeated signature verification for hot tokens; entries live for
// ClaimsCacheTTL, well under the token lifetime.
func NewAuthService(store database.Store, cfg *config.Auth) (*AuthService, error) {
	sizeBytes := cfg.ClaimsCacheSizeMB * 1024 * 1024
	if sizeBytes <= 0 {
		sizeBytes = 1024 * 1024
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, *profile.TokenClaims]{
		NumCounters: sizeBytes / 100 * 10,
		MaxCost:     sizeBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("claims cache: %w", err)
	}

	return &AuthService{
		store:  store,
		cfg:    cfg,
		secret: []byte(cfg.JWTSecret),
		claims: cache,
	}, nil
}

// Close releases the claims cache.
func (s *AuthService) Close() {
	s.claims.Close()
}

// HashPassword bcrypt-hashes a plaintext password. Stored credentials are
// always the hashed form; a hash is never re-hashed.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login authenticates a profile by email and password and returns an
// access token plus the raw refresh token. Unknown emails and bad
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req profile.LoginRequest) (*profile.LoginResponse, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	p, err := s.store.GetProfileByEmail(ctx, profile.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
		}
		return nil, "", fmt.Errorf("get profile: %w", err)
	}

	if !p.IsActive {
		return nil, "", fmt.Errorf("%w: account is inactive", domain.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}

	accessToken, err := s.signJWT(p)
	if err != nil {
		return nil, "", fmt.Errorf("sign jwt: %w", err)
	}

	rawRefresh, err := generateRandomToken(32)
	if err != nil {
		return nil, "", fmt.Errorf("generate refresh token: %w", err)
	}

	rt := &profile.RefreshToken{
		ID:        uuid.New().String(),
		ProfileID: p.ID,
		TokenHash: hashSHA256(rawRefresh),
		ExpiresAt: time.Now().Add(s.cfg.RefreshTokenExpiry),
	}
	if err := s.store.CreateRefreshToken(ctx, rt); err != nil {
		return nil, "", fmt.Errorf("store refresh token: %w", err)
	}

	resp := &profile.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.cfg.AccessTokenExpiry.Seconds()),
		Profile:     *p,
	}
	return resp, rawRefresh, nil
}

// Refresh validates a refresh token, rotates it, and issues a new access
// token. The old token is invalid after this call.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*profile.LoginResponse, string, error) {
	rt, err := s.store.GetRefreshTokenByHash(ctx, hashSHA256(rawToken))
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid refresh token", domain.ErrUnauthenticated)
	}

	if time.Now().After(rt.ExpiresAt) {
		_ = s.store.DeleteRefreshToken(ctx, rt.ID)
		return nil, "", fmt.Errorf("%w: refresh token expired", domain.ErrUnauthenticated)
	}

	p, err := s.store.GetProfile(ctx, rt.ProfileID)
	if err != nil {
		return nil, "", fmt.Errorf("get profile: %w", err)
	}
	if !p.IsActive {
		return nil, "", fmt.Errorf("%w: account is inactive", domain.ErrUnauthenticated)
	}

	accessToken, err := s.signJWT(p)
	if err != nil {
		return nil, "", fmt.Errorf("sign jwt: %w", err)
	}

	newRaw, err := generateRandomToken(32)
	if err != nil {
		return nil, "", fmt.Errorf("generate refresh token: %w", err)
	}
	newRT := &profile.RefreshToken{
		ID:        uuid.New().String(),
		ProfileID: p.ID,
		TokenHash: hashSHA256(newRaw),
		ExpiresAt: time.Now().Add(s.cfg.RefreshTokenExpiry),
	}
	if err := s.store.RotateRefreshToken(ctx, rt.ID, newRT); err != nil {
		return nil, "", fmt.Errorf("rotate refresh token: %w", err)
	}

	resp := &profile.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.cfg.AccessTokenExpiry.Seconds()),
		Profile:     *p,
	}
	return resp, newRaw, nil
}

// Logout deletes all refresh tokens for a profile. Outstanding access
// tokens simply age out.
func (s *AuthService) Logout(ctx context.Context, profileID string) error {
	return s.store.DeleteRefreshTokensByProfile(ctx, profileID)
}

// ValidateAccessToken verifies a JWT and returns its claims. Validated
// claims are cached briefly to skip repeated HMAC checks.
func (s *AuthService) ValidateAccessToken(token string) (*profile.TokenClaims, error) {
	if c, ok := s.claims.Get(token); ok {
		if time.Now().Unix() > c.Expiry {
			s.claims.Del(token)
			return nil, fmt.Errorf("%w: token expired", domain.ErrUnauthenticated)
		}
		return c, nil
	}

	c, err := s.verifyJWT(token)
	if err != nil {
		return nil, err
	}

	ttl := s.cfg.ClaimsCacheTTL
	if remaining := time.Until(time.Unix(c.Expiry, 0)); remaining < ttl {
		ttl = remaining
	}
	if ttl > 0 {
		s.claims.SetWithTTL(token, c, int64(len(token)), ttl)
	}
	return c, nil
}

// StartRefreshTokenCleanup starts a background goroutine that periodically
// purges expired refresh tokens. It stops when ctx is cancelled.
func (s *AuthService) StartRefreshTokenCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.store.PurgeExpiredRefreshTokens(ctx, time.Now())
				if err != nil {
					slog.Warn("failed to purge expired refresh tokens", "error", err)
				} else if n > 0 {
					slog.Info("purged expired refresh tokens", "count", n)
				}
			}
		}
	}()
}

// jwtHeader is the fixed base64url-encoded header for HS256.
var jwtHeader = base64URLEncode([]byte(`{"alg":"HS256","typ":"JWT"}`))

func (s *AuthService) signJWT(p *profile.Profile) (string, error) {
	now := time.Now()
	claims := profile.TokenClaims{
		ProfileID:        p.ID,
		Email:            p.Email,
		FullBusinessName: p.FullBusinessName,
		Superuser:        p.IsSuperuser,
		Staff:            p.IsStaff,
		IssuedAt:         now.Unix(),
		Expiry:           now.Add(s.cfg.AccessTokenExpiry).Unix(),
		Audience:         tokenAudience,
		Issuer:           tokenIssuer,
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	signingInput := jwtHeader + "." + base64URLEncode(payload)

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(signingInput))
	sig := base64URLEncode(mac.Sum(nil))

	return signingInput + "." + sig, nil
}

func (s *AuthService) verifyJWT(token string) (*profile.TokenClaims, error) {
	parts := strings.SplitN(token, ".", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: malformed token", domain.ErrUnauthenticated)
	}

	signingInput := parts[0] + "." + parts[1]
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(signingInput))
	expectedSig := base64URLEncode(mac.Sum(nil))

	if !hmac.Equal([]byte(parts[2]), []byte(expectedSig)) {
		return nil, fmt.Errorf("%w: invalid signature", domain.ErrUnauthenticated)
	}

	payload, err := base64URLDecode(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: malformed payload", domain.ErrUnauthenticated)
	}

	var claims profile.TokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: malformed claims", domain.ErrUnauthenticated)
	}

	if time.Now().Unix() > claims.Expiry {
		return nil, fmt.Errorf("%w: token expired", domain.ErrUnauthenticated)
	}
	if claims.Audience != tokenAudience {
		return nil, fmt.Errorf("%w: invalid token audience", domain.ErrUnauthenticated)
	}
	if claims.Issuer != tokenIssuer {
		return nil, fmt.Errorf("%w: invalid token issuer", domain.ErrUnauthenticated)
	}

	return &claims, nil
}

func base64URLEncode(data []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(data), "=")
}

func base64URLDecode(s string) ([]byte, error) {
	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	}
	return base64.URLEncoding.DecodeString(s)
}

func hashSHA256(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])
}

func generateRandomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
