// Package config loads the generator configuration from defaults, an
// optional YAML or JSON file and MATHCAPTCHA_* environment variables, in
// that order of precedence.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathcaptcha/internal/problemgen"
)

// Format is the encoding of a config file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension. Anything that
// is not .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// fileConfig is the on-disk shape. Operations are kept as text so word
// forms such as "add" or "div" are accepted.
type fileConfig struct {
	DivisionPrecision    *int              `json:"divisionPrecision" yaml:"divisionPrecision"`
	NumberRange          *problemgen.Range `json:"numberRange" yaml:"numberRange"`
	Tolerance            *float64          `json:"tolerance" yaml:"tolerance"`
	Operations           []string          `json:"operations" yaml:"operations"`
	AvoidNegativeResults *bool             `json:"avoidNegativeResults" yaml:"avoidNegativeResults"`
	AvoidDivisionByZero  *bool             `json:"avoidDivisionByZero" yaml:"avoidDivisionByZero"`
	MaxAttempts          *int              `json:"maxAttempts" yaml:"maxAttempts"`
}

func (f fileConfig) patch() (problemgen.ConfigPatch, error) {
	p := problemgen.ConfigPatch{
		DivisionPrecision:    f.DivisionPrecision,
		NumberRange:          f.NumberRange,
		Tolerance:            f.Tolerance,
		AvoidNegativeResults: f.AvoidNegativeResults,
		AvoidDivisionByZero:  f.AvoidDivisionByZero,
		MaxAttempts:          f.MaxAttempts,
	}
	if f.Operations != nil {
		ops, err := problemgen.ParseOperations(f.Operations)
		if err != nil {
			return problemgen.ConfigPatch{}, err
		}
		p.Operations = ops
	}
	return p, nil
}

// Parse decodes a config document into a patch. Unknown keys, trailing
// documents and schema violations are errors. An empty document yields
// an empty patch.
func Parse(data []byte, format Format) (problemgen.ConfigPatch, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return problemgen.ConfigPatch{}, nil
	}

	var (
		doc any
		fc  fileConfig
	)
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return problemgen.ConfigPatch{}, fmt.Errorf("parse config: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fc); err != nil {
			return problemgen.ConfigPatch{}, fmt.Errorf("parse config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return problemgen.ConfigPatch{}, fmt.Errorf("parse config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&fc); err != nil {
			return problemgen.ConfigPatch{}, fmt.Errorf("parse config: %w", err)
		}
		var extra any
		if err := dec.Decode(&extra); err != io.EOF {
			if err == nil {
				return problemgen.ConfigPatch{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
			}
			return problemgen.ConfigPatch{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := validateDocument(doc); err != nil {
		return problemgen.ConfigPatch{}, err
	}

	p, err := fc.patch()
	if err != nil {
		return problemgen.ConfigPatch{}, fmt.Errorf("parse config: %w", err)
	}
	return p, nil
}

// ReadFile reads and parses the config file at path.
func ReadFile(path string) (problemgen.ConfigPatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return problemgen.ConfigPatch{}, fmt.Errorf("read config: %w", err)
	}
	p, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return problemgen.ConfigPatch{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Load builds the effective configuration: DefaultConfig, then the file
// at path (skipped when path is empty), then environment overrides. The
// result is validated.
func Load(path string) (problemgen.Config, error) {
	cfg := problemgen.DefaultConfig()

	if path != "" {
		p, err := ReadFile(path)
		if err != nil {
			return problemgen.Config{}, err
		}
		cfg = cfg.Apply(p)
	}

	cfg, err := ApplyEnv(cfg)
	if err != nil {
		return problemgen.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return problemgen.Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// IsNotExist reports whether err came from a missing config file.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// Marshal renders cfg as YAML.
func Marshal(cfg problemgen.Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}
