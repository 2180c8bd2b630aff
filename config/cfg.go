package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"blox/style"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	CatalogConfig struct {
		// Path to catalog tables, built-in tables are used when empty.
		Path string `yaml:"path,omitempty"`
	}

	StylesConfig struct {
		Device       string   `yaml:"device" validate:"required"`
		Orientation  string   `yaml:"orientation" validate:"required"`
		Pseudo       string   `yaml:"pseudo" validate:"required"`
		Devices      []string `yaml:"devices" validate:"dive,required"`
		Orientations []string `yaml:"orientations" validate:"dive,required"`
		Pseudos      []string `yaml:"pseudos" validate:"dive,required"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Catalog CatalogConfig `yaml:"catalog"`
		Styles  StylesConfig  `yaml:"styles"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

// Defaults returns style context used when caller does not specify one.
func (s *StylesConfig) Defaults() style.Context {
	return style.Context{Device: s.Device, Orientation: s.Orientation, Pseudo: s.Pseudo}
}

// Dimensions returns known context dimension names.
func (s *StylesConfig) Dimensions() style.Dimensions {
	return style.Dimensions{Devices: s.Devices, Orientations: s.Orientations, Pseudos: s.Pseudos}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
		// default context has to be one of the declared ones
		if v := cfg.Styles.Dimensions().Validate(cfg.Styles.Defaults()); !v.Valid {
			return nil, fmt.Errorf("failed to validate configuration: %w", v.Err())
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
