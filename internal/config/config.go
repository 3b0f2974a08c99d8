// Package config loads generator settings with Viper from the .headset.yml
// file, HEADSET_ environment variables and command-line flags.
//
// The file holds the headset parameter sections at the top level next to an
// output section (where and how meshes are written) and a log section.
// Every key has a default taken from params.Default, so a partial file only
// overrides what it names.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conneroisu/headset/internal/errors"
	"github.com/conneroisu/headset/internal/headset"
	"github.com/conneroisu/headset/internal/logging"
	"github.com/conneroisu/headset/internal/params"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".headset.yml"

// EnvPrefix prefixes every environment override, e.g. HEADSET_HEAD_CIRCUMFERENCE.
const EnvPrefix = "HEADSET"

type Config struct {
	params.Headset `mapstructure:",squash" yaml:",inline"`

	Output OutputConfig `mapstructure:"output" yaml:"output"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

type OutputConfig struct {
	Dir        string   `mapstructure:"dir" yaml:"dir"`
	Format     string   `mapstructure:"format" yaml:"format"`
	Resolution int      `mapstructure:"resolution" yaml:"resolution"`
	Samples    int      `mapstructure:"samples" yaml:"samples"`
	Parts      []string `mapstructure:"parts" yaml:"parts"`
	Manifest   bool     `mapstructure:"manifest" yaml:"manifest"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Headset: params.Default(),
		Output: OutputConfig{
			Dir:        "out",
			Format:     "stl",
			Resolution: 200,
			Samples:    24,
			Parts:      []string{},
			Manifest:   true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Marshal encodes c as the YAML written by `headset init`.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// RegisterDefaults registers every key of Default with the global Viper
// instance. Viper only maps environment variables onto keys it knows, so this
// must run before Load for HEADSET_ overrides to apply.
func RegisterDefaults() error {
	data, err := Default().Marshal()
	if err != nil {
		return err
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	for key, value := range flatten("", tree) {
		viper.SetDefault(key, value)
	}
	return nil
}

func flatten(prefix string, tree map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]interface{}); ok {
			for sk, sv := range flatten(key, sub) {
				out[sk] = sv
			}
			continue
		}
		out[key] = v
	}
	return out
}

func Load() (*Config, error) {
	if err := RegisterDefaults(); err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInternalError, "failed to register defaults", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}

	// Handle parts set as a comma separated string (workaround for viper slice handling)
	if viper.IsSet("output.parts") && len(config.Output.Parts) == 0 {
		parts := viper.GetStringSlice("output.parts")
		if len(parts) > 0 {
			config.Output.Parts = parts
		}
	}
	config.Output.Format = strings.ToLower(config.Output.Format)

	// Validate configuration values
	if err := validateConfig(&config); err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "invalid configuration")
	}

	return &config, nil
}

// validateConfig validates configuration values for safety and correctness
func validateConfig(config *Config) error {
	if err := validateOutputConfig(&config.Output); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	return config.Headset.Validate()
}

// validateOutputConfig validates output configuration values
func validateOutputConfig(config *OutputConfig) error {
	if err := validatePath(config.Dir); err != nil {
		return fmt.Errorf("invalid output dir '%s': %w", config.Dir, err)
	}

	if config.Format != "stl" {
		return fmt.Errorf("unsupported format %q, only stl is written", config.Format)
	}

	if config.Resolution < 16 || config.Resolution > 2000 {
		return fmt.Errorf("resolution %d is not in valid range 16-2000", config.Resolution)
	}

	if config.Samples < 4 || config.Samples > 256 {
		return fmt.Errorf("samples %d is not in valid range 4-256", config.Samples)
	}

	known := make(map[string]bool)
	for _, name := range headset.Parts() {
		known[name] = true
	}
	for _, part := range config.Parts {
		if !known[strings.ToLower(strings.TrimSpace(part))] {
			return fmt.Errorf("unknown part %q, expected one of %s", part, strings.Join(headset.Parts(), ", "))
		}
	}

	return nil
}

// validateLogConfig validates log configuration values
func validateLogConfig(config *LogConfig) error {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		return err
	}

	switch config.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log format %q must be text or json", config.Format)
	}

	if config.File != "" {
		if err := validatePath(config.File); err != nil {
			return fmt.Errorf("invalid log file '%s': %w", config.File, err)
		}
	}

	return nil
}

// validatePath validates a file path for safety
func validatePath(path string) error {
	if path == "" {
		return errors.ErrInvalidPath(path).WithContext("reason", "empty")
	}

	// Clean the path
	cleanPath := filepath.Clean(path)

	// Reject path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return errors.ErrInvalidPath(path).WithContext("reason", "traversal")
	}

	// Reject dangerous characters
	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return errors.ErrInvalidPath(path).WithContext("reason", "dangerous character "+char)
		}
	}

	return nil
}
