package config

import (
	"fmt"
	"os"

	"github.com/freshtrack/freshtrack-golang/internal/service"
)

// Config is everything the process reads from the environment. Load a .env
// file first (main does) and the values land here.
type Config struct {
	Port      string
	DSN       string
	JWTSecret string

	// SharingScope decides whether the sharing page is an open marketplace
	// ("marketplace", the observed behavior) or scoped to the caller
	// ("owner"). Kept configurable pending product clarification.
	SharingScope service.SharingScope
}

// Load reads the environment. PORT defaults to 8080; DB_DSN and JWT_SECRET
// are required.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      os.Getenv("PORT"),
		DSN:       os.Getenv("DB_DSN"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("DB_DSN environment variable is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	switch scope := service.SharingScope(os.Getenv("SHARING_SCOPE")); scope {
	case "", service.ScopeMarketplace:
		cfg.SharingScope = service.ScopeMarketplace
	case service.ScopeOwner:
		cfg.SharingScope = service.ScopeOwner
	default:
		return nil, fmt.Errorf("SHARING_SCOPE must be %q or %q, got %q",
			service.ScopeMarketplace, service.ScopeOwner, scope)
	}

	return cfg, nil
}
