package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/conneroisu/headset/internal/config"
	"github.com/conneroisu/headset/internal/export"
	"github.com/conneroisu/headset/internal/headset"
	"github.com/conneroisu/headset/internal/logging"
	"github.com/conneroisu/headset/internal/version"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ManifestName is the file written next to the meshes of a run.
const ManifestName = "manifest.yml"

// renderFunc meshes a part. Tests replace it to avoid marching cubes.
var renderFunc export.RenderFunc = export.RenderSTL

var generateCmd = &cobra.Command{
	Use:     "generate [part...]",
	Aliases: []string{"gen", "g"},
	Short:   "Write the headset parts as STL meshes",
	Long: `Build the headset parts from the current parameters and write one STL mesh
per part to the output directory, followed by a manifest recording the
parameters, derived dimensions and files of the run.

With no arguments every part is generated, otherwise only the named ones.

Examples:
  headset generate                          # All parts into ./out
  headset generate headband                 # Only the headband
  headset generate -o prints -r 300         # Finer meshes into ./prints
  HEADSET_HEAD_CIRCUMFERENCE=560 headset generate`,
	ValidArgs: headset.Parts(),
	RunE:      runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	AddOutputFlags(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closeLog, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parts := cfg.Output.Parts
	if len(args) > 0 {
		parts = args
	}

	_, err = generate(ctx, cfg, logger, cmd.OutOrStdout(), parts)
	return err
}

// generate builds and exports the requested parts, writes the manifest when
// enabled and prints a summary to out. It returns the manifest of the run.
func generate(ctx context.Context, cfg *config.Config, logger logging.Logger, out io.Writer, parts []string) (*export.Manifest, error) {
	runID := export.NewRunID()
	logger = logger.With("run_id", runID)

	asm, err := headset.Build(cfg.Headset, parts...)
	if err != nil {
		logger.Error(ctx, err, "Failed to build headset")
		return nil, err
	}

	exporter := export.NewExporter(cfg.Output.Dir, cfg.Output.Resolution, logger)
	exporter.Format = cfg.Output.Format
	exporter.Samples = cfg.Output.Samples
	exporter.Render = renderFunc

	artifacts, err := exporter.Export(ctx, asm)
	if err != nil {
		return nil, err
	}

	manifest := export.NewManifest(runID, version.GetVersion(), cfg.Headset, artifacts)
	if cfg.Output.Manifest {
		path := filepath.Join(cfg.Output.Dir, ManifestName)
		if err := export.WriteManifest(path, manifest); err != nil {
			return nil, err
		}
		logger.Debug(ctx, "Wrote manifest", "path", path)
	}

	printSummary(out, cfg, artifacts)
	return &manifest, nil
}

func printSummary(out io.Writer, cfg *config.Config, artifacts []export.Artifact) {
	title := cases.Title(language.English)
	for _, a := range artifacts {
		name := title.String(strings.ReplaceAll(a.Part, "_", " "))
		fmt.Fprintf(out, "%-16s %s (%d bytes)\n", name, a.Path, a.Bytes)
		fmt.Fprintf(out, "%-16s %s\n", "", headset.Describe(cfg.Headset, a.Part))
	}
	fmt.Fprintf(out, "Generated %d part(s) in %s\n", len(artifacts), cfg.Output.Dir)
}
