package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RCOPTS_FILE", "PORT", "LOG_LEVEL", "LOG_ENCODING", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.OptionsFile != DefaultOptionsFile() {
		t.Fatalf("expected default options file, got %s", cfg.OptionsFile)
	}
	if cfg.LogLevel != defaultLogLevel || cfg.LogEncoding != defaultLogEncoding {
		t.Fatalf("unexpected logging defaults: %s/%s", cfg.LogLevel, cfg.LogEncoding)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("RCOPTS_FILE", "/etc/rcopts/rcoptsrc")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_BURST", "7")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.OptionsFile != "/etc/rcopts/rcoptsrc" {
		t.Fatalf("expected options file from env, got %s", cfg.OptionsFile)
	}
	if cfg.Port != "9000" || cfg.LogLevel != "debug" || cfg.RateLimitBurst != 7 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.RateLimitRPS != defaultRateLimitRPS {
		t.Fatalf("expected invalid RPS to be ignored, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "rcopts.yaml")
	content := []byte(`
options_file: /srv/rcoptsrc
port: "9100"
log_level: info
write_timeout: 2s
enable_request_logging: false
rate_limit:
  rps: 3
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	port := "9200"
	cfg, err := Load(&CLIOverrides{ConfigFile: path, Port: &port})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9200" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected YAML log level to beat env, got %s", cfg.LogLevel)
	}
	if cfg.OptionsFile != "/srv/rcoptsrc" {
		t.Fatalf("expected YAML options file, got %s", cfg.OptionsFile)
	}
	if cfg.WriteTimeout != 2*time.Second {
		t.Fatalf("expected YAML write timeout, got %s", cfg.WriteTimeout)
	}
	if cfg.EnableRequestLogging {
		t.Fatalf("expected request logging disabled by YAML")
	}
	if cfg.RateLimitRPS != 3 || cfg.RateLimitBurst != defaultRateLimitBurst {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadRejectsInvalidSources(t *testing.T) {
	clearEnv(t)

	if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing YAML file")
	}

	encoding := "xml"
	if _, err := Load(&CLIOverrides{LogEncoding: &encoding}); err == nil {
		t.Fatalf("expected error for unsupported encoding")
	}

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(broken, []byte("port: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(&CLIOverrides{ConfigFile: broken}); err == nil {
		t.Fatalf("expected error for malformed YAML")
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	if got := expandHome("~/.rcopts/rcoptsrc"); got != filepath.Join("/home/tester", ".rcopts", "rcoptsrc") {
		t.Fatalf("unexpected expansion %s", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Fatalf("expected absolute path untouched, got %s", got)
	}
}
