package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

// Sentinel errors for YAML decoding.
var (
	ErrNilData        = errors.New("yaml: nil or empty data")
	ErrNilDestination = errors.New("yaml: nil destination pointer")
	ErrInputTooLarge  = errors.New("yaml: input exceeds maximum size")
)

func validateYAMLInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// unmarshalStrict decodes data into v and rejects unknown fields.
func unmarshalStrict(data []byte, v any) error {
	if err := validateYAMLInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return nil
}

// Marshal encodes cfg as YAML, e.g. to print the effective configuration.
func Marshal(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return out, nil
}
