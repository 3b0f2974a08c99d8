package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/conneroisu/headset/internal/config"
	"github.com/conneroisu/headset/internal/errors"
	"github.com/conneroisu/headset/internal/geometry"
	"github.com/conneroisu/headset/internal/headset"
	"github.com/spf13/cobra"
)

var (
	validateFormat   string
	validateGeometry bool
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the parameters without writing meshes",
	Long: `Validate the resolved configuration and headset parameters. Every
violation is reported at once together with a suggested fix.

With --geometry the parts are also built and sampled to make sure none of
them is empty, which catches parameter sets that cut a part away entirely.

Examples:
  headset validate                    # Check parameters
  headset validate --geometry         # Also build and sample every part
  headset validate --format json      # Output results as JSON`,
	Args: cobra.NoArgs,
	RunE: runValidateCommand,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	AddFormatFlag(validateCmd, &validateFormat, "text", "json")
	validateCmd.Flags().
		BoolVar(&validateGeometry, "geometry", false, "Build every part and check that it has volume")
	validateCmd.Flags().Int("samples", geometry.DefaultSamples, "Samples per axis when checking a part for volume")
}

// ValidationResult is the outcome of one validation run.
type ValidationResult struct {
	Valid   bool                       `json:"valid"`
	Errors  []string                   `json:"errors"`
	Details []ErrorDetail              `json:"details,omitempty"`
	Derived map[string]float64         `json:"derived,omitempty"`
	Parts   map[string]geometry.Report `json:"parts,omitempty"`
}

// ErrorDetail classifies one reported error and carries its context.
// Kind is "parameters", "geometry" or "configuration".
type ErrorDetail struct {
	Kind    string                 `json:"kind"`
	Context map[string]interface{} `json:"context"`
}

func (r *ValidationResult) addError(err error) {
	r.Errors = append(r.Errors, errors.FormatErrorWithSuggestions(err))
	r.Details = append(r.Details, ErrorDetail{
		Kind:    errorKind(err),
		Context: errors.GetErrorContext(err),
	})
}

// errorKind names the root cause of err, looking through configuration wrappers.
func errorKind(err error) string {
	cause := errors.ExtractCause(err)
	switch {
	case errors.IsValidationError(cause):
		return "parameters"
	case errors.IsGeometryError(cause):
		return "geometry"
	default:
		return "configuration"
	}
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	result := ValidationResult{Errors: []string{}}

	cfg, err := config.Load()
	if err != nil {
		result.addError(err)
	} else {
		result.Derived = cfg.Headset.Derived()
		if validateGeometry {
			result.Parts, err = inspectParts(cfg)
			if err != nil {
				result.addError(err)
			}
		}
	}
	result.Valid = len(result.Errors) == 0

	out := cmd.OutOrStdout()
	if validateFormat == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return err
		}
	} else {
		printValidationText(out, result)
	}

	if !result.Valid {
		return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
	}
	return nil
}

func inspectParts(cfg *config.Config) (map[string]geometry.Report, error) {
	asm, err := headset.Build(cfg.Headset, cfg.Output.Parts...)
	if err != nil {
		return nil, err
	}

	reports := make(map[string]geometry.Report, len(asm.Parts))
	for _, part := range asm.Parts {
		report := geometry.Inspect(part.Solid, cfg.Output.Samples)
		reports[part.Name] = report
		if report.Empty() {
			return reports, errors.ErrEmptySolid(part.Name)
		}
	}
	return reports, nil
}

func printValidationText(out io.Writer, result ValidationResult) {
	if result.Valid {
		fmt.Fprintln(out, "Configuration is valid")
	}
	for _, msg := range result.Errors {
		fmt.Fprintf(out, "Error: %s\n", msg)
	}
	for _, part := range headset.Parts() {
		report, ok := result.Parts[part]
		if !ok {
			continue
		}
		size := report.Size()
		fmt.Fprintf(out, "  %-16s %.1f x %.1f x %.1f mm, ~%.0f mm3\n", part, size.X, size.Y, size.Z, report.Volume)
	}
}
