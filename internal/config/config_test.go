package config

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set(keyJWTSecret, "s3cret")

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBDSN != "expenses.db" || cfg.BcryptCost != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestFromViper_MissingSecretFailsFast(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	if _, err := FromViper(v); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}

	v.Set(keyJWTSecret, "   ")
	if _, err := FromViper(v); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret for blank secret, got %v", err)
	}
}

func TestFromViper_InvalidBcryptCost(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set(keyJWTSecret, "s3cret")
	v.Set(keyBcryptCost, 2)

	if _, err := FromViper(v); err == nil {
		t.Fatalf("expected error for bcrypt cost below minimum")
	}
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_DSN", "/tmp/x.db")
	t.Setenv("CORS_ORIGINS", "http://a.test/, http://b.test")

	cfg, err := FromViper(New())
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if cfg.JWTSecret != "from-env" || cfg.DBDSN != "/tmp/x.db" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "http://a.test" || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}
