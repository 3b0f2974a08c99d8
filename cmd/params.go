package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/conneroisu/headset/internal/config"
	"github.com/conneroisu/headset/internal/export"
	"github.com/conneroisu/headset/internal/headset"
	"github.com/conneroisu/headset/internal/params"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	paramsFormat       string
	paramsFromManifest string
)

var paramsCmd = &cobra.Command{
	Use:     "params",
	Aliases: []string{"p"},
	Short:   "Show the resolved parameters and derived dimensions",
	Long: `Print the parameters after defaults, the configuration file, environment
variables and flags have been applied, together with the dimensions derived
from them.

Examples:
  headset params                 # Derived dimensions and part summaries
  headset params --format yaml   # Full parameter set as YAML
  headset params --format json   # Full parameter set as JSON
  headset params --from-manifest out/manifest.yml   # Parameters of an earlier run`,
	Args: cobra.NoArgs,
	RunE: runParams,
}

func init() {
	rootCmd.AddCommand(paramsCmd)
	AddFormatFlag(paramsCmd, &paramsFormat, "text", "json", "yaml")
	paramsCmd.Flags().StringVar(&paramsFromManifest, "from-manifest", "",
		"Show the parameters recorded in a run manifest instead of the configuration")
}

type paramsOutput struct {
	Params  params.Headset     `json:"params" yaml:"params"`
	Derived map[string]float64 `json:"derived" yaml:"derived"`
}

func runParams(cmd *cobra.Command, args []string) error {
	result, err := resolveParams()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch paramsFormat {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(result); err != nil {
			return err
		}
		return encoder.Close()
	default:
		printParamsText(out, result.Params)
		return nil
	}
}

// resolveParams returns the configured parameters, or those of the run
// recorded at --from-manifest.
func resolveParams() (paramsOutput, error) {
	if paramsFromManifest != "" {
		manifest, err := export.ReadManifest(paramsFromManifest)
		if err != nil {
			return paramsOutput{}, fmt.Errorf("failed to load manifest: %w", err)
		}
		return paramsOutput{Params: manifest.Params, Derived: manifest.Derived}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return paramsOutput{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return paramsOutput{Params: cfg.Headset, Derived: cfg.Headset.Derived()}, nil
}

func printParamsText(out io.Writer, hs params.Headset) {
	derived := hs.Derived()
	keys := make([]string, 0, len(derived))
	for k := range derived {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(out, "Derived dimensions (mm):")
	for _, k := range keys {
		fmt.Fprintf(out, "  %-28s %8.2f\n", k, derived[k])
	}

	fmt.Fprintln(out, "Parts:")
	for _, part := range headset.Parts() {
		fmt.Fprintf(out, "  %-16s %s\n", part, headset.Describe(hs, part))
	}
}
