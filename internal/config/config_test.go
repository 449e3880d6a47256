package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("MONGODB_DATABASE", "blogmint_test")
	os.Setenv("JWT_SECRET", "testsecret123456789012345678901234")
	defer func() {
		os.Unsetenv("MONGODB_URI")
		os.Unsetenv("MONGODB_DATABASE")
		os.Unsetenv("JWT_SECRET")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.MongoDB.Database != "blogmint_test" {
		t.Fatalf("unexpected mongo config: %+v", cfg.MongoDB)
	}
	if cfg.JWT.TokenTTL != 6000*time.Second {
		t.Fatalf("unexpected default token TTL: %v", cfg.JWT.TokenTTL)
	}
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Unsetenv("JWT_SECRET")
	defer os.Unsetenv("MONGODB_URI")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is unset")
	}
}
