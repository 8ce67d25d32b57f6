package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-html2ooxml/internal/fileutil"
	"github.com/alnah/go-html2ooxml/internal/pipeline"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory searched under the user config directory.
const AppDirName = "go-html2ooxml"

// Field length limits.
const (
	MaxStyleIDLength = 100  // Word caps style names well below this
	MaxPathLength    = 4096 // PATH_MAX on Linux
)

// Logging levels, as accepted by logging.level.
const (
	LogLevelNone   = "none"
	LogLevelNormal = "normal"
	LogLevelDebug  = "debug"
)

// Config holds all configuration for the html2ooxml command.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Styles     StylesConfig     `yaml:"styles"`
	Numbering  NumberingConfig  `yaml:"numbering"`
	Conversion ConversionConfig `yaml:"conversion"`
	Logging    LoggingConfig    `yaml:"logging"`
	Workers    int              `yaml:"workers"` // 0 = auto
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	WriteHTML  bool   `yaml:"writeHTML"`  // Also write the HTML that entered the pipeline
}

// StylesConfig names the styles referenced by generated paragraphs.
type StylesConfig struct {
	Paragraph string `yaml:"paragraph"` // Empty = library default
	List      string `yaml:"list"`      // Empty = library default
}

// NumberingConfig controls list numbering ids.
type NumberingConfig struct {
	Start    int  `yaml:"start"`    // 0 = library default
	Continue bool `yaml:"continue"` // Thread ids across files, in discovery order
}

// ConversionConfig toggles optional pipeline collaborators.
type ConversionConfig struct {
	SkipWrap     bool `yaml:"skipWrap"`     // Input already has block structure
	Sanitize     bool `yaml:"sanitize"`     // Clean HTML input (default: true)
	InlineStyles bool `yaml:"inlineStyles"` // Convert inline formatting (default: true)
}

// LoggingConfig defines console logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // "none", "normal", "debug" (default: "normal")
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for callers who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateStyle("styles.paragraph", c.Styles.Paragraph); err != nil {
		return err
	}
	if err := validateStyle("styles.list", c.Styles.List); err != nil {
		return err
	}

	if c.Numbering.Start < 0 {
		return fmt.Errorf("%w: numbering.start must be at least 1, got %d", ErrInvalidValue, c.Numbering.Start)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidValue, c.Workers)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", LogLevelNone, LogLevelNormal, LogLevelDebug:
		// valid
	default:
		return fmt.Errorf("%w: logging.level %q (must be none, normal, or debug)", ErrInvalidValue, c.Logging.Level)
	}

	return nil
}

// validateStyle checks an optional style identifier.
func validateStyle(fieldName, id string) error {
	if id == "" {
		return nil
	}
	if err := validateFieldLength(fieldName, id, MaxStyleIDLength); err != nil {
		return err
	}
	if err := pipeline.ValidateStyleID(id); err != nil {
		return fmt.Errorf("%s: %w", fieldName, err)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// sanitizing and inline styles on, library defaults for styles and numbering.
func DefaultConfig() *Config {
	return &Config{
		Conversion: ConversionConfig{
			Sanitize:     true,
			InlineStyles: true,
		},
		Logging: LoggingConfig{Level: LogLevelNormal},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations:
// the current directory, then the user config directory.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
