package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/paperstats/config.yml.
type GlobalConfig struct {
	DataDir     string  `yaml:"data_dir,omitempty"`
	Token       string  `yaml:"token,omitempty"`
	TokenFile   string  `yaml:"token_file,omitempty"`
	MappingFile string  `yaml:"mapping_file,omitempty"`
	GenderTable string  `yaml:"gender_table,omitempty"`
	SkipRows    *int    `yaml:"skip_rows,omitempty"`
	Timeout     string  `yaml:"timeout,omitempty"`    // Go duration, e.g. "30s"
	RateLimit   float64 `yaml:"rate_limit,omitempty"` // requests per second, 0 = unlimited
	LogLevel    string  `yaml:"log_level,omitempty"`
	LogFormat   string  `yaml:"log_format,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "paperstats"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/paperstats/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	cfg.DataDir = ExpandPath(cfg.DataDir)
	cfg.TokenFile = ExpandPath(cfg.TokenFile)
	cfg.MappingFile = ExpandPath(cfg.MappingFile)
	cfg.GenderTable = ExpandPath(cfg.GenderTable)

	if _, err := cfg.TimeoutDuration(); err != nil {
		return nil, err
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// ResolveDataDir returns the data directory: PAPERSTATS_DATA_DIR, then
// data_dir, then "data".
func (c *GlobalConfig) ResolveDataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return ExpandPath(dir)
	}
	if c.DataDir != "" {
		return c.DataDir
	}
	return DefaultDataDir
}

// ResolveMappingPath returns mapping_file if set, else the mapping in dataDir.
func (c *GlobalConfig) ResolveMappingPath(dataDir string) string {
	if c.MappingFile != "" {
		return c.MappingFile
	}
	return MappingPath(dataDir)
}

// ResolveToken returns the access token from OPENCITATIONS_TOKEN, the
// token key, or the token file (token_file, else token.txt in dataDir).
func (c *GlobalConfig) ResolveToken(dataDir string) (string, error) {
	if tok := strings.TrimSpace(os.Getenv(EnvToken)); tok != "" {
		return tok, nil
	}
	if tok := strings.TrimSpace(c.Token); tok != "" {
		return tok, nil
	}
	path := c.TokenFile
	if path == "" {
		path = TokenPath(dataDir)
	}
	return LoadToken(path)
}

// ResolveLogLevel returns LOG_LEVEL, then log_level, then "info".
func (c *GlobalConfig) ResolveLogLevel() string {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		return lvl
	}
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return "info"
}

// TimeoutDuration parses the timeout key. Zero means the client default.
func (c *GlobalConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parsing timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout %q is negative", c.Timeout)
	}
	return d, nil
}

// SkipRowsOr returns skip_rows if set, else def.
func (c *GlobalConfig) SkipRowsOr(def int) int {
	if c.SkipRows != nil {
		return *c.SkipRows
	}
	return def
}
