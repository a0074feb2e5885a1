// =============================================================================
// QRMS Invoice Export - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. The
// configuration covers directories, logging, output file naming, and the
// optional tax-code allow-list extension. Defaults are applied for any
// unset option, and required directories are created on load, so an empty
// config file is a fully working configuration.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration, loaded from config.yaml.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for batch documents.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where export files are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where batch documents are moved after
	// successful export. Failed documents stay in the input directory.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	// Default: "info". The --verbose flag overrides this with "debug".
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the export file name. Placeholders:
	//   {timestamp} - generation time (YYYYMMDD_HHMMSS)
	//   {uuid}      - a random UUID
	//   {reference} - the batch's QRMS reference
	// Default: "QRMS_Invoice_{timestamp}.xlsx"
	OutputNameFormat string `yaml:"output_name_format"`

	// SheetName is the name of the single worksheet in the export file.
	// Default: "Invoices"
	SheetName string `yaml:"sheet_name"`

	// =========================================================================
	// VALIDATION SETTINGS
	// =========================================================================

	// TaxCodeAllowlist optionally restricts tax codes per document type;
	// keys are document types, values the tax codes allowed for them.
	// Only document types present here are restricted. Leave empty to
	// accept any catalog tax code for any document type. The rule was not
	// consistent across revisions of the upload contract, so it is opt-in.
	TaxCodeAllowlist map[string][]string `yaml:"tax_code_allowlist"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of batch documents processed
	// at the same time. Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the configuration from a YAML file, applies defaults, and
// ensures the configured directories exist. A missing file is not an
// error: the defaults are used, matching the zero-setup case.
func Load(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := ensureDirectories(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset option.
func applyDefaults(cfg *Config) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./archive"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "QRMS_Invoice_{timestamp}.xlsx"
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Invoices"
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 4
	}
}

// ensureDirectories creates the configured directories if missing.
func ensureDirectories(cfg *Config) error {
	for _, dir := range []string{cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
