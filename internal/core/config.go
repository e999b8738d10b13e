package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Fuabioo/dehash/internal/security"
	"github.com/klauspost/compress/flate"
)

// DefaultOutputPrefix is prepended to the source base name to form the output name.
const DefaultOutputPrefix = "new_"

// Config holds global configuration for dehash.
type Config struct {
	Security  SecurityConfig  `json:"security"`
	Output    OutputConfig    `json:"output"`
	Rename    RenameConfig    `json:"rename"`
	Workspace WorkspaceConfig `json:"workspace"`
}

// SecurityConfig holds extraction limits.
type SecurityConfig struct {
	MaxExtractedSizeBytes uint64  `json:"max_extracted_size_bytes"`
	MaxFileCount          int     `json:"max_file_count"`
	MaxCompressionRatio   float64 `json:"max_compression_ratio"`
}

// OutputConfig controls how the rewritten archive is written.
type OutputConfig struct {
	Prefix           string `json:"prefix"`
	Overwrite        bool   `json:"overwrite"`
	CompressionLevel int    `json:"compression_level"`
}

// RenameConfig controls name allocation.
type RenameConfig struct {
	MaxAttempts int `json:"max_attempts"`
}

// WorkspaceConfig controls where working trees are created.
// An empty Dir means os.TempDir().
type WorkspaceConfig struct {
	Dir string `json:"dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Security: SecurityConfig{
			MaxExtractedSizeBytes: 1 * 1024 * 1024 * 1024, // 1GB
			MaxFileCount:          100000,
			MaxCompressionRatio:   100.0,
		},
		Output: OutputConfig{
			Prefix:           DefaultOutputPrefix,
			CompressionLevel: flate.DefaultCompression,
		},
		Rename: RenameConfig{
			MaxAttempts: DefaultMaxAttempts,
		},
	}
}

// LoadConfig loads configuration from config.json in the config directory.
// Falls back to default configuration if config.json doesn't exist.
// Environment variables override both file and default values.
func LoadConfig(configDir string) (*Config, error) {
	cfg := DefaultConfig()

	configPath := filepath.Join(configDir, "config.json")
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config.json: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config.json: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) error {
	if val, ok := os.LookupEnv("DEHASH_OUTPUT_PREFIX"); ok {
		cfg.Output.Prefix = val
	}

	if val, ok := os.LookupEnv("DEHASH_WORK_DIR"); ok {
		cfg.Workspace.Dir = val
	}

	if val, ok := os.LookupEnv("DEHASH_MAX_ATTEMPTS"); ok {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid DEHASH_MAX_ATTEMPTS: %w", err)
		}
		cfg.Rename.MaxAttempts = parsed
	}

	if val, ok := os.LookupEnv("DEHASH_MAX_EXTRACTED_SIZE"); ok {
		parsed, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid DEHASH_MAX_EXTRACTED_SIZE: %w", err)
		}
		cfg.Security.MaxExtractedSizeBytes = parsed
	}

	if val, ok := os.LookupEnv("DEHASH_MAX_FILE_COUNT"); ok {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid DEHASH_MAX_FILE_COUNT: %w", err)
		}
		cfg.Security.MaxFileCount = parsed
	}

	return nil
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if err := security.ValidatePrefix(c.Output.Prefix); err != nil {
		return fmt.Errorf("invalid output prefix: %w", err)
	}
	if c.Rename.MaxAttempts < 1 {
		return fmt.Errorf("rename.max_attempts must be at least 1, got %d", c.Rename.MaxAttempts)
	}
	if c.Output.CompressionLevel < flate.HuffmanOnly || c.Output.CompressionLevel > flate.BestCompression {
		return fmt.Errorf("output.compression_level must be between %d and %d, got %d",
			flate.HuffmanOnly, flate.BestCompression, c.Output.CompressionLevel)
	}
	return nil
}

// ToSecurityLimits converts the config to security.Limits for use with security package.
func (c *Config) ToSecurityLimits() security.Limits {
	return security.Limits{
		MaxExtractedSize:    c.Security.MaxExtractedSizeBytes,
		MaxFileCount:        c.Security.MaxFileCount,
		MaxCompressionRatio: c.Security.MaxCompressionRatio,
	}
}
