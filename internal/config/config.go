package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Scan and render settings
	Root        string   `mapstructure:"root"`
	TailLines   int      `mapstructure:"tail_lines"`
	Extension   string   `mapstructure:"extension"`
	Output      string   `mapstructure:"output"`
	OpenBrowser bool     `mapstructure:"open_browser"`
	Exclude     []string `mapstructure:"exclude"`
}

// DefaultOutput is where the page is written unless configured otherwise
func DefaultOutput() string {
	return filepath.Join(os.TempDir(), "index.html")
}

// Default returns a Config with default values.
// Root is deliberately empty: the scan root must be chosen explicitly.
func Default() *Config {
	return &Config{
		Format:      "text",
		Quiet:       false,
		Verbose:     false,
		TailLines:   200,
		Extension:   ".log",
		Output:      DefaultOutput(),
		OpenBrowser: true,
	}
}

// Load reads the first file from SearchPaths, if any, then applies LOGVIEW_*
// environment overrides.
func Load() (*Config, error) {
	cfg := Default()
	if path := findConfigFile(); path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg = loaded
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists candidate config files, highest precedence first
func SearchPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths,
			filepath.Join(cwd, ".logview.yaml"),
			filepath.Join(cwd, ".logview.yml"),
			filepath.Join(cwd, "logview.yaml"),
			filepath.Join(cwd, "logview.yml"),
		)
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".logview.yaml"),
			filepath.Join(home, ".logview.yml"),
		)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "logview", "config.yaml"))
	}
	return append(paths, "/etc/logview/config.yaml")
}

func findConfigFile() string {
	for _, path := range SearchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// applyEnvOverrides applies LOGVIEW_* variables. Boolean switches only turn
// their setting on ("1" or "true").
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LOGVIEW_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOGVIEW_ROOT"); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv("LOGVIEW_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("LOGVIEW_TAIL_LINES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOGVIEW_TAIL_LINES: %w", err)
		}
		cfg.TailLines = n
	}
	if v := os.Getenv("LOGVIEW_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("LOGVIEW_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("LOGVIEW_NO_OPEN"); v == "true" || v == "1" {
		cfg.OpenBrowser = false
	}
	return nil
}

// LoadFromFile loads configuration from a specific file.
// The format follows the extension (yaml, yml, toml, json).
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	// Unmarshal over the defaults so absent keys keep them
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// ConfigFile returns the file Load would read, or "" when none exists
func ConfigFile() string {
	return findConfigFile()
}
