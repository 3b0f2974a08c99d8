// Package cmd provides the command-line interface of the headset generator.
//
// Configuration System:
//
//	Settings are resolved from several sources with clear precedence:
//	1. Command-line flags (--output, --resolution, --log-level, ...) - highest priority
//	2. Individual environment variables (HEADSET_HEAD_CIRCUMFERENCE, ...)
//	3. The configuration file (--config, HEADSET_CONFIG_FILE or .headset.yml)
//	4. Built-in defaults for an average adult head - lowest priority
//
// Environment Variables:
//
//	HEADSET_CONFIG_FILE: Path to a custom configuration file
//	HEADSET_HEAD_CIRCUMFERENCE: Override the head circumference
//	HEADSET_OUTPUT_DIR: Override the mesh output directory
//	And every other key following the HEADSET_<SECTION>_<OPTION> pattern
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/conneroisu/headset/internal/config"
	"github.com/conneroisu/headset/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	configErr error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "headset",
	Short: "Generate printable parts for a parametric audio headset",
	Long: `headset builds the printable parts of an open audio headset from a handful
of body and component measurements and writes them as STL meshes.

Parts:
  headband          Arc over the crown with tweeter loops and a mic clip
  headbox           Electronics box worn on the back of the head
  tweeter_housing   Cup for one tweeter (print two)

Quick Start:
  headset init                    Write .headset.yml with default measurements
  headset params                  Show parameters and derived dimensions
  headset validate                Check the parameters without meshing
  headset generate                Write every part to ./out
  headset watch                   Regenerate whenever .headset.yml changes`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(cmd)
		return configErr
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .headset.yml, can also use HEADSET_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("log-file", "", "also write JSON logs to this file, rotated by size")
}

// initConfig initializes the configuration system.
//
// Configuration file lookup (highest to lowest):
//  1. --config flag
//  2. HEADSET_CONFIG_FILE environment variable
//  3. .headset.yml in the current directory
//
// A missing default file is not an error; an explicitly named file that
// cannot be read is reported before the command runs.
func initConfig() {
	configErr = nil
	explicit := true

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("HEADSET_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		explicit = false
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(strings.TrimSuffix(config.FileName, ".yml"))
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Using config file:", viper.ConfigFileUsed())
	case errors.As(err, &notFound) && !explicit:
	default:
		configErr = fmt.Errorf("failed to read config file: %w", err)
	}
}

// configFilePath is the file a run reads its parameters from, whether or
// not it exists yet.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.FileName
}

// newLogger writes to stderr and, when log.file is set, to a rotated file.
// The returned func closes the file.
func newLogger(cmd *cobra.Command, cfg *config.Config) (logging.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	console := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if cfg.Log.File == "" {
		return console, func() {}, nil
	}

	file, err := logging.NewFileLogger(&logging.LoggerConfig{Level: level}, logging.FileConfig{
		Path:       cfg.Log.File,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	if err != nil {
		return nil, nil, err
	}
	return logging.NewMultiLogger(console, file), func() { _ = file.Close() }, nil
}
