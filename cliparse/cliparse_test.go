// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("OWNER_KEY_SALT", "test-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.CodeLength != 6 {
		t.Errorf("expected default code length 6, got %d", cfg.CodeLength)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-owner-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_SqliteDefaults(t *testing.T) {
	os.Setenv("OWNER_KEY_SALT", "test-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "file:pollcast.db" {
		t.Errorf("expected default sqlite URL, got %s", cfg.DatabaseURL)
	}
}

func TestParseFlags_MissingSalt(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{"-d", "file:test.db"}); err == nil {
		t.Error("expected error when OWNER_KEY_SALT is missing")
	}
}

func TestParseFlags_PostgresRequiresURL(t *testing.T) {
	os.Setenv("OWNER_KEY_SALT", "test-salt")
	defer os.Clearenv()

	if _, err := ParseFlags([]string{"-t", "postgres"}); err == nil {
		t.Error("expected error when postgres has no database URL")
	}
}

func TestParseFlags_CodeLengthBounds(t *testing.T) {
	os.Setenv("OWNER_KEY_SALT", "test-salt")
	defer os.Clearenv()

	if _, err := ParseFlags([]string{"-code-length", "2"}); err == nil {
		t.Error("expected error for code length below minimum")
	}
	if _, err := ParseFlags([]string{"-code-length", "30"}); err == nil {
		t.Error("expected error for code length above maximum")
	}
}
