package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"github.com/jamescook/cssproc/css"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

// ProcessorConfig is this module's whole ambient configuration surface:
// the resource Limits the parser enforces, and where diagnostic logging
// goes. It mirrors the teacher's config.Config in shape (embedded template
// + yaml decode + struct-tag validation) but trimmed to what a CSS
// processing library actually needs, not the teacher's ebook-pipeline tree.
type ProcessorConfig struct {
	Limits  css.Limits    `yaml:"limits" validate:"required"`
	Logging LoggingConfig `yaml:"logging"`
}

var validate = validator.New()

// unmarshalConfig decodes data into cfg with KnownFields enforcement (so a
// typo'd key fails loudly instead of being silently ignored), matching the
// teacher's own decode-before-validate split.
func unmarshalConfig(data []byte, cfg *ProcessorConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return nil
}

// LoadConfig reads the embedded default template, then — if path is
// non-empty — overlays a file's values on top of it, the same two-pass
// shape as the teacher's LoadConfiguration (template first for defaults,
// then the caller-supplied file). The merged result is validated with
// validator/v10 struct tags.
func LoadConfig(path string) (*ProcessorConfig, error) {
	cfg := &ProcessorConfig{}
	if err := unmarshalConfig(ConfigTmpl, cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if path == "" {
		if err := validate.Struct(cfg); err != nil {
			return nil, fmt.Errorf("invalid default configuration: %w", err)
		}
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := unmarshalConfig(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Dump marshals cfg back to YAML, mirroring the teacher's config.Dump.
func Dump(cfg *ProcessorConfig) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// Logger builds the *zap.Logger described by cfg.Logging.
func (c *ProcessorConfig) Logger() (*zap.Logger, error) {
	return c.Logging.Prepare()
}
