package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SCRIPT_PATH", "ENVIRONMENT", "LOG_LEVEL", "REDIS_URL", "SCRIPT_KEY_PREFIX"} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())

	cfg := Load()

	if cfg.ScriptPath != "./vn_script.json" {
		t.Errorf("Expected default script path, got %q", cfg.ScriptPath)
	}
	if cfg.Environment != "development" {
		t.Errorf("Expected development environment, got %q", cfg.Environment)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("Expected info level, got %v", cfg.LogLevel)
	}
	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("Expected default redis URL, got %q", cfg.RedisURL)
	}
	if cfg.ScriptKeyPrefix != "script" {
		t.Errorf("Expected default key prefix, got %q", cfg.ScriptKeyPrefix)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCRIPT_PATH", "/tmp/game.json")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("SCRIPT_KEY_PREFIX", "vn")

	cfg := Load()

	if cfg.ScriptPath != "/tmp/game.json" {
		t.Errorf("Expected script path from env, got %q", cfg.ScriptPath)
	}
	if cfg.Environment != "production" {
		t.Errorf("Expected production, got %q", cfg.Environment)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("Expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.RedisURL != "redis://cache:6379/2" {
		t.Errorf("Expected redis URL from env, got %q", cfg.RedisURL)
	}
	if cfg.ScriptKeyPrefix != "vn" {
		t.Errorf("Expected key prefix from env, got %q", cfg.ScriptKeyPrefix)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	// godotenv never overrides a variable that is set, even to "".
	t.Setenv("SCRIPT_PATH", "")
	if err := os.Unsetenv("SCRIPT_PATH"); err != nil {
		t.Fatalf("Failed to unset SCRIPT_PATH: %v", err)
	}
	t.Setenv("LOG_LEVEL", "error")

	content := "SCRIPT_PATH=from_dotenv.json\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	cfg := Load()

	if cfg.ScriptPath != "from_dotenv.json" {
		t.Errorf("Expected script path from .env, got %q", cfg.ScriptPath)
	}
	if cfg.LogLevel != slog.LevelError {
		t.Errorf("Expected environment to win over .env, got %v", cfg.LogLevel)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}
