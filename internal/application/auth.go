// Package application contains the use-case services sitting between the
// driving HTTP adapter and the driven store ports.
package application

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminRole is the role marker embedded in every issued token.
const AdminRole = "admin"

// SessionCookieName is the cookie carrying the admin token.
const SessionCookieName = "admin_token"

// LegacyTokenHeader is the shared-secret header that grants admin access
// without a session token.
const LegacyTokenHeader = "x-admin-token"

var (
	// ErrInvalidToken covers every token failure: malformed, bad signature,
	// wrong algorithm, expired. Verification is total over all inputs.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidCredentials is deliberately opaque: it never reveals whether
	// the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized is the uniform rejection for requests that pass
	// neither the token path nor the legacy header path.
	ErrUnauthorized = errors.New("unauthorized")
)

// Claims are the session token claims for an admin login.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthConfig carries the credential material the service needs. All fields
// may be empty; an unconfigured service fails closed rather than erroring.
type AuthConfig struct {
	// AdminEmail is the single admin identity, compared case-insensitively
	// after trimming.
	AdminEmail string

	// AdminPasswordHash is a bcrypt hash. When set it wins over AdminPassword.
	AdminPasswordHash string

	// AdminPassword is the plaintext fallback, compared in constant time.
	AdminPassword string

	// LegacyToken enables the shared-secret header path when non-empty.
	LegacyToken string

	SigningSecret []byte
	TokenLifetime time.Duration
}

// AuthService issues and verifies admin session tokens and gates admin
// requests. Tokens are self-contained: validity is computed from signature
// and expiry, never looked up, so logout cannot revoke an already-copied
// token before it expires.
type AuthService struct {
	cfg AuthConfig
}

// NewAuthService creates an AuthService. The admin email is normalized once
// here so every later comparison is trim+case-fold against the same form.
func NewAuthService(cfg AuthConfig) *AuthService {
	cfg.AdminEmail = normalizeEmail(cfg.AdminEmail)
	return &AuthService{cfg: cfg}
}

// Issue creates a signed admin token for the given identity, expiring one
// token lifetime from now. It also returns the expiry so the caller can set
// a matching cookie deadline.
func (s *AuthService) Issue(email string) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(s.cfg.TokenLifetime)

	claims := &Claims{
		Role:  AdminRole,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.cfg.SigningSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiry, nil
}

// Verify parses and validates a token, returning its claims. Any failure
// resolves to ErrInvalidToken; malformed input never panics or leaks detail.
func (s *AuthService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.cfg.SigningSecret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Role != AdminRole {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// AuthenticateAdmin checks the submitted identity and secret against the
// configured admin and returns a fresh token on success. Missing admin
// configuration means every attempt rejects; this is the fail-closed
// default, not an error state.
func (s *AuthService) AuthenticateAdmin(email, password string) (string, time.Time, error) {
	if s.cfg.AdminEmail == "" || (s.cfg.AdminPasswordHash == "" && s.cfg.AdminPassword == "") {
		return "", time.Time{}, ErrInvalidCredentials
	}

	if normalizeEmail(email) != s.cfg.AdminEmail {
		return "", time.Time{}, ErrInvalidCredentials
	}

	if s.cfg.AdminPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)); err != nil {
			return "", time.Time{}, ErrInvalidCredentials
		}
	} else if subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) != 1 {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.Issue(s.cfg.AdminEmail)
}

// Authorize is the single gate consulted by every admin-only request. It
// tries the session cookie first, then the legacy shared-secret header;
// either path independently suffices. All failures collapse into
// ErrUnauthorized.
func (s *AuthService) Authorize(r *http.Request) (*Claims, error) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if claims, err := s.Verify(cookie.Value); err == nil {
			return claims, nil
		}
	}

	if header := r.Header.Get(LegacyTokenHeader); header != "" && s.cfg.LegacyToken != "" {
		if subtle.ConstantTimeCompare([]byte(header), []byte(s.cfg.LegacyToken)) == 1 {
			return &Claims{Role: AdminRole, Email: s.cfg.AdminEmail}, nil
		}
	}

	return nil, ErrUnauthorized
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
