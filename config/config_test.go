package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "PORT", "DB_HOST", "DB_NAME", "JWT_ACCESS_TOKEN_SECRET", "JWT_ACCESS_TOKEN_EXPIRY_MINUTES"} {
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.App.Env != "development" {
		t.Errorf("App.Env = %q, want %q", cfg.App.Env, "development")
	}
	if cfg.App.Port != "8088" {
		t.Errorf("App.Port = %q, want %q", cfg.App.Port, "8088")
	}
	if cfg.DB.Name != "refnet_db" {
		t.Errorf("DB.Name = %q, want %q", cfg.DB.Name, "refnet_db")
	}
	if cfg.JWT.AccessTokenExpiryMinutes != 60 {
		t.Errorf("JWT.AccessTokenExpiryMinutes = %d, want 60", cfg.JWT.AccessTokenExpiryMinutes)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("PORT", "9090")
	os.Setenv("DB_NAME", "refnet_test")
	os.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")
	os.Setenv("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", "15")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("PORT")
		os.Unsetenv("DB_NAME")
		os.Unsetenv("JWT_ACCESS_TOKEN_SECRET")
		os.Unsetenv("JWT_ACCESS_TOKEN_EXPIRY_MINUTES")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.App.Env != "production" {
		t.Errorf("App.Env = %q, want %q", cfg.App.Env, "production")
	}
	if cfg.App.Port != "9090" {
		t.Errorf("App.Port = %q, want %q", cfg.App.Port, "9090")
	}
	if cfg.DB.Name != "refnet_test" {
		t.Errorf("DB.Name = %q, want %q", cfg.DB.Name, "refnet_test")
	}
	if cfg.JWT.AccessTokenSecret != "test-secret" {
		t.Errorf("JWT.AccessTokenSecret = %q, want %q", cfg.JWT.AccessTokenSecret, "test-secret")
	}
	if cfg.JWT.AccessTokenExpiryMinutes != 15 {
		t.Errorf("JWT.AccessTokenExpiryMinutes = %d, want 15", cfg.JWT.AccessTokenExpiryMinutes)
	}
}

func TestLoadConfigInvalidExpiry(t *testing.T) {
	os.Setenv("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", "not-a-number")
	defer os.Unsetenv("JWT_ACCESS_TOKEN_EXPIRY_MINUTES")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail on a non-integer expiry")
	}
}
