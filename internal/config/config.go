// Package config loads application configuration from environment variables.
package config

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	DBPath     string
	PublicDir  string
	UploadDir  string

	// Admin credentials. Either the bcrypt hash or the plaintext password may
	// be set; the hash wins when both are. When email or all password material
	// is missing, login always rejects (fail closed).
	AdminEmail        string
	AdminPasswordHash string
	AdminPassword     string

	// Legacy shared-secret header value. Empty disables the header path.
	AdminToken string

	JWTSecret     []byte
	TokenLifetime time.Duration
}

// HasAdminCredentials returns true when both an admin email and some password
// material (hash or plaintext) are configured. Used by the auth service to
// decide whether login can ever succeed.
func (c *Config) HasAdminCredentials() bool {
	return c.AdminEmail != "" && (c.AdminPasswordHash != "" || c.AdminPassword != "")
}

// Load reads configuration from environment variables and returns a validated
// Config. Admin credentials (SHOWCASE_ADMIN_EMAIL, SHOWCASE_ADMIN_PASSWORD_HASH
// or SHOWCASE_ADMIN_PASSWORD) are optional; if absent, the app starts but admin
// login always rejects. Optional variables with defaults:
// SHOWCASE_LISTEN_ADDR (127.0.0.1:5173), SHOWCASE_DB_PATH (showcase.db),
// SHOWCASE_PUBLIC_DIR (public), SHOWCASE_UPLOAD_DIR (uploads),
// SHOWCASE_TOKEN_LIFETIME (168h).
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:        envOr("SHOWCASE_LISTEN_ADDR", "127.0.0.1:5173"),
		DBPath:            envOr("SHOWCASE_DB_PATH", "showcase.db"),
		PublicDir:         envOr("SHOWCASE_PUBLIC_DIR", "public"),
		UploadDir:         envOr("SHOWCASE_UPLOAD_DIR", "uploads"),
		AdminEmail:        os.Getenv("SHOWCASE_ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("SHOWCASE_ADMIN_PASSWORD_HASH"),
		AdminPassword:     os.Getenv("SHOWCASE_ADMIN_PASSWORD"),
		AdminToken:        os.Getenv("SHOWCASE_ADMIN_TOKEN"),
		TokenLifetime:     7 * 24 * time.Hour,
	}

	if v, ok := os.LookupEnv("SHOWCASE_TOKEN_LIFETIME"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SHOWCASE_TOKEN_LIFETIME has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("SHOWCASE_TOKEN_LIFETIME must be positive, got %q", v)
		}
		cfg.TokenLifetime = parsed
	}

	if secret := os.Getenv("SHOWCASE_JWT_SECRET"); secret != "" {
		cfg.JWTSecret = []byte(secret)
	} else {
		slog.Warn("SHOWCASE_JWT_SECRET not set; generating a random signing key, sessions will not survive a restart")
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		cfg.JWTSecret = key
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
