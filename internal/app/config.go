package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/klabast/wb-services/uk-bank-holidays/internal/gendata"
)

// Constants
const (
	DefaultListenAddr = ":8080"

	// Error messages
	ErrInvalidYear    = "Invalid year"
	ErrInvalidDate    = "Invalid date"
	ErrInvalidRegion  = "Invalid region"
	ErrInvalidFormat  = "Invalid format"
	ErrYearNotFound   = "Year not found"
	ErrInternalServer = "Internal server error"

	// ICS constants
	ICSProductID = "-//Klabast//UK Bank Holidays//EN"
	ICSTimezone  = "Europe/London"
	ICSDomain    = "uk-bank-holidays.klabast.de"
)

// Config is the service configuration, read from an optional YAML file with
// environment variable overrides.
type Config struct {
	Listen string `yaml:"listen"`

	// DataFile points at an external TSV artifact to serve instead of the
	// embedded dataset. Empty means embedded.
	DataFile string `yaml:"data_file"`

	Refresh RefreshConfig `yaml:"refresh"`
}

// RefreshConfig holds parameters for the offline data-refresh tool.
type RefreshConfig struct {
	Source string `yaml:"source"`
	Output string `yaml:"output"`
}

// LoadConfig reads the YAML file at path (skipped when path is empty) and
// applies defaults and environment variable overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Listen: DefaultListenAddr,
		Refresh: RefreshConfig{
			Source: gendata.DefaultSourceURL,
			Output: "holidays/uk_bank_holidays.tsv",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Listen == "" {
		cfg.Listen = DefaultListenAddr
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("REFRESH_SOURCE"); v != "" {
		cfg.Refresh.Source = v
	}
}
