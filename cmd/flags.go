package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/conneroisu/headset/internal/headset"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagBindings maps flag names to the configuration keys they override.
var flagBindings = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
	"output":     "output.dir",
	"resolution": "output.resolution",
	"samples":    "output.samples",
	"parts":      "output.parts",
	"manifest":   "output.manifest",
}

// bindFlags binds every flag of cmd that has a configuration key. It runs
// before each command so bindings survive viper.Reset and two commands can
// declare the same flag.
func bindFlags(cmd *cobra.Command) {
	for flagName, configKey := range flagBindings {
		if flag := cmd.Flags().Lookup(flagName); flag != nil {
			_ = viper.BindPFlag(configKey, flag)
		}
	}
}

// OutputFlags are the flags shared by commands that write meshes.
type OutputFlags struct {
	Dir        string
	Resolution int
	Samples    int
	Parts      []string
	Manifest   bool
}

// AddOutputFlags adds the mesh output flags to a command
func AddOutputFlags(cmd *cobra.Command) *OutputFlags {
	flags := &OutputFlags{}
	cmd.Flags().StringVarP(&flags.Dir, "output", "o", "out", "Directory to write meshes to")
	cmd.Flags().IntVarP(&flags.Resolution, "resolution", "r", 200, "Mesh cells along the longest axis of each part")
	cmd.Flags().IntVar(&flags.Samples, "samples", 24, "Samples per axis when checking a part for volume")
	cmd.Flags().StringSliceVarP(&flags.Parts, "parts", "p", nil,
		"Parts to generate ("+strings.Join(headset.Parts(), ", ")+"), default all")
	cmd.Flags().BoolVar(&flags.Manifest, "manifest", true, "Write manifest.yml next to the meshes")

	AddFlagValidation(cmd, "resolution", ValidateResolution)
	return flags
}

// AddFormatFlag adds --format with the given allowed values, the first being the default.
func AddFormatFlag(cmd *cobra.Command, target *string, formats ...string) {
	cmd.Flags().StringVarP(target, "format", "f", formats[0], "Output format ("+strings.Join(formats, ", ")+")")
	AddFlagValidation(cmd, "format", func(val string) error {
		for _, f := range formats {
			if val == f {
				return nil
			}
		}
		return fmt.Errorf("unsupported format: %s (supported: %s)", val, strings.Join(formats, ", "))
	})
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}

// ValidateResolution checks a mesh resolution flag value
func ValidateResolution(val string) error {
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("invalid resolution: %s", val)
	}
	if n < 16 || n > 2000 {
		return fmt.Errorf("resolution must be between 16 and 2000, got %d", n)
	}
	return nil
}
