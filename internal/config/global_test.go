package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeGlobalConfig points XDG_CONFIG_HOME at a temp dir holding content.
func writeGlobalConfig(t *testing.T, content string) {
	t.Helper()
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if content == "" {
		return
	}
	configDir := filepath.Join(tmpDir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalConfigPath(), "/custom/config/paperstats/config.yml"; got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := GlobalConfigPath(), filepath.Join(home, ".config", "paperstats", "config.yml"); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	writeGlobalConfig(t, "")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.DataDir != "" || cfg.SkipRows != nil || cfg.RateLimit != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	writeGlobalConfig(t, `data_dir: /srv/papers
token: from-config
mapping_file: /srv/mapping.yml
gender_table: /srv/names.tsv
skip_rows: 0
timeout: 10s
rate_limit: 2.5
log_level: debug
log_format: json
`)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	if cfg.DataDir != "/srv/papers" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.SkipRows == nil || *cfg.SkipRows != 0 {
		t.Errorf("SkipRows = %v, want explicit 0", cfg.SkipRows)
	}
	if got := cfg.SkipRowsOr(5); got != 0 {
		t.Errorf("SkipRowsOr(5) = %d, want 0", got)
	}
	if d, _ := cfg.TimeoutDuration(); d != 10*time.Second {
		t.Errorf("TimeoutDuration() = %v", d)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("RateLimit = %v", cfg.RateLimit)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
	if got := cfg.ResolveMappingPath("/ignored"); got != "/srv/mapping.yml" {
		t.Errorf("ResolveMappingPath() = %q", got)
	}
}

func TestLoadGlobalConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "data_dir: [unclosed\n"},
		{"bad timeout", "timeout: soon\n"},
		{"negative timeout", "timeout: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeGlobalConfig(t, tt.content)
			if _, err := LoadGlobalConfig(); err == nil {
				t.Error("LoadGlobalConfig() should fail")
			}
		})
	}
}

func TestGlobalConfigCache(t *testing.T) {
	writeGlobalConfig(t, "data_dir: /first\n")

	cfg1, err := LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}

	path := GlobalConfigPath()
	if err := os.WriteFile(path, []byte("data_dir: /second\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg2, _ := LoadGlobalConfig()
	if cfg2.DataDir != "/first" || cfg1 != cfg2 {
		t.Errorf("cached DataDir = %q, want /first", cfg2.DataDir)
	}

	ResetGlobalConfigCache()
	cfg3, _ := LoadGlobalConfig()
	if cfg3.DataDir != "/second" {
		t.Errorf("reloaded DataDir = %q, want /second", cfg3.DataDir)
	}
}

func TestResolveDataDir(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	cfg := &GlobalConfig{}
	if got := cfg.ResolveDataDir(); got != DefaultDataDir {
		t.Errorf("ResolveDataDir() = %q, want %q", got, DefaultDataDir)
	}

	cfg.DataDir = "/from/config"
	if got := cfg.ResolveDataDir(); got != "/from/config" {
		t.Errorf("ResolveDataDir() = %q, want config value", got)
	}

	t.Setenv(EnvDataDir, "/from/env")
	if got := cfg.ResolveDataDir(); got != "/from/env" {
		t.Errorf("ResolveDataDir() = %q, want env value", got)
	}
}

func TestResolveToken(t *testing.T) {
	dataDir := t.TempDir()
	if err := os.WriteFile(TokenPath(dataDir), []byte("from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvToken, "")
	cfg := &GlobalConfig{}
	if got, err := cfg.ResolveToken(dataDir); err != nil || got != "from-file" {
		t.Errorf("ResolveToken() = %q, %v; want from-file", got, err)
	}

	cfg.Token = "from-config"
	if got, _ := cfg.ResolveToken(dataDir); got != "from-config" {
		t.Errorf("ResolveToken() = %q, want from-config", got)
	}

	t.Setenv(EnvToken, "from-env")
	if got, _ := cfg.ResolveToken(dataDir); got != "from-env" {
		t.Errorf("ResolveToken() = %q, want from-env", got)
	}
}

func TestResolveToken_Missing(t *testing.T) {
	t.Setenv(EnvToken, "")
	cfg := &GlobalConfig{TokenFile: filepath.Join(t.TempDir(), "nope.txt")}
	if _, err := cfg.ResolveToken(t.TempDir()); !errors.Is(err, ErrNoToken) {
		t.Errorf("ResolveToken() error = %v, want ErrNoToken", err)
	}
}

func TestResolveLogLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	cfg := &GlobalConfig{}
	if got := cfg.ResolveLogLevel(); got != "info" {
		t.Errorf("ResolveLogLevel() = %q", got)
	}
	cfg.LogLevel = "warn"
	if got := cfg.ResolveLogLevel(); got != "warn" {
		t.Errorf("ResolveLogLevel() = %q", got)
	}
	t.Setenv(EnvLogLevel, "debug")
	if got := cfg.ResolveLogLevel(); got != "debug" {
		t.Errorf("ResolveLogLevel() = %q", got)
	}
}
