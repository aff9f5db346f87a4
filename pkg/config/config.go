package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/nessusparse/pkg/engine"
	"github.com/user/nessusparse/pkg/report"
)

// EnvPath overrides the config file location.
const EnvPath = "NESSUSPARSE_CONFIG"

var hexColor = regexp.MustCompile(`^#?([0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

type Config struct {
	Columns    []string          `yaml:"columns"`
	TabColors  map[string]string `yaml:"tab_colors"` // severity label -> RGB hex
	HeaderFill string            `yaml:"header_fill"`
	NoColor    bool              `yaml:"no_color"`
}

// Default returns the built-in configuration.
func Default() *Config {
	tabColors := make(map[string]string, len(report.DefaultTabColors))
	for s, c := range report.DefaultTabColors {
		tabColors[s.Label()] = c
	}
	columns := make([]string, 0, len(report.DefaultColumns))
	for _, c := range report.DefaultColumns {
		columns = append(columns, c.Header)
	}
	return &Config{
		Columns:    columns,
		TabColors:  tabColors,
		HeaderFill: report.DefaultHeaderFill,
	}
}

func GetConfigPath() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nessusparse", "config.yaml"), nil
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks column names and tab color keys.
func (c *Config) Validate() error {
	if _, err := report.ParseColumns(c.Columns); err != nil {
		return err
	}
	for label, color := range c.TabColors {
		if _, ok := severityByLabel(label); !ok {
			return fmt.Errorf("tab_colors: unknown severity %q", label)
		}
		if !hexColor.MatchString(color) {
			return fmt.Errorf("tab_colors: %s: invalid color %q (want RRGGBB or AARRGGBB hex)", label, color)
		}
	}
	if c.HeaderFill != "" && !hexColor.MatchString(c.HeaderFill) {
		return fmt.Errorf("header_fill: invalid color %q (want RRGGBB or AARRGGBB hex)", c.HeaderFill)
	}
	return nil
}

// ReportOptions converts the config into workbook options.
func (c *Config) ReportOptions() (report.Options, error) {
	cols, err := report.ParseColumns(c.Columns)
	if err != nil {
		return report.Options{}, err
	}
	colors := make(map[engine.Severity]string, len(c.TabColors))
	for label, color := range c.TabColors {
		if s, ok := severityByLabel(label); ok {
			colors[s] = color
		}
	}
	return report.Options{
		Columns:    cols,
		TabColors:  colors,
		HeaderFill: c.HeaderFill,
	}, nil
}

func severityByLabel(label string) (engine.Severity, bool) {
	for _, s := range engine.Severities() {
		if strings.EqualFold(s.Label(), label) {
			return s, true
		}
	}
	return 0, false
}
