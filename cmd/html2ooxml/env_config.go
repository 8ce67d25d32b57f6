package main

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-html2ooxml/internal/config"
)

// envPrefix marks the environment variables this command reads.
const envPrefix = "HTML2OOXML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // HTML2OOXML_CONFIG: config file name or path
	InputDir       string // HTML2OOXML_INPUT_DIR: default input directory
	OutputDir      string // HTML2OOXML_OUTPUT_DIR: default output directory
	ParagraphStyle string // HTML2OOXML_PARAGRAPH_STYLE: body paragraph style ID
	ListStyle      string // HTML2OOXML_LIST_STYLE: list item style ID
	NumberingStart int    // HTML2OOXML_NUMBERING_START: first numbering ID
	Workers        int    // HTML2OOXML_WORKERS: parallel workers
	LogLevel       string // HTML2OOXML_LOG_LEVEL: none, normal, debug
}

// knownEnvVars lists valid HTML2OOXML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2OOXML_CONFIG":          true,
	"HTML2OOXML_INPUT_DIR":       true,
	"HTML2OOXML_OUTPUT_DIR":      true,
	"HTML2OOXML_PARAGRAPH_STYLE": true,
	"HTML2OOXML_LIST_STYLE":      true,
	"HTML2OOXML_NUMBERING_START": true,
	"HTML2OOXML_WORKERS":         true,
	"HTML2OOXML_LOG_LEVEL":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed or non-positive numbers are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:     getenv("HTML2OOXML_CONFIG"),
		InputDir:       getenv("HTML2OOXML_INPUT_DIR"),
		OutputDir:      getenv("HTML2OOXML_OUTPUT_DIR"),
		ParagraphStyle: getenv("HTML2OOXML_PARAGRAPH_STYLE"),
		ListStyle:      getenv("HTML2OOXML_LIST_STYLE"),
		LogLevel:       getenv("HTML2OOXML_LOG_LEVEL"),
	}

	if start := getenv("HTML2OOXML_NUMBERING_START"); start != "" {
		if n, err := strconv.Atoi(start); err == nil && n > 0 {
			cfg.NumberingStart = n
		}
	}

	if workers := getenv("HTML2OOXML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized HTML2OOXML_* variables.
// Helps catch typos like HTML2OOXML_WORKER instead of HTML2OOXML_WORKERS.
func warnUnknownEnvVars(environ []string, log *zap.Logger) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			log.Warn("unknown environment variable (typo?)", zap.String("name", name))
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ParagraphStyle != "" && cfg.Styles.Paragraph == "" {
		cfg.Styles.Paragraph = env.ParagraphStyle
	}
	if env.ListStyle != "" && cfg.Styles.List == "" {
		cfg.Styles.List = env.ListStyle
	}
	if env.NumberingStart > 0 && cfg.Numbering.Start == 0 {
		cfg.Numbering.Start = env.NumberingStart
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	// Logging always has a value after DefaultConfig, so the env var wins.
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
}
