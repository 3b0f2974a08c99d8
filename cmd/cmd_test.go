package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conneroisu/headset/internal/config"
	herrors "github.com/conneroisu/headset/internal/errors"
	"github.com/conneroisu/headset/internal/export"
	"github.com/conneroisu/headset/internal/logging"
	"github.com/conneroisu/headset/internal/params"
	"github.com/conneroisu/headset/internal/watcher"
	"github.com/deadsy/sdfx/sdf"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCommand runs the test in an empty directory with fresh configuration
// and a renderer that writes a fixed-size file instead of meshing.
func setupCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Chdir(t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	oldRender := renderFunc
	renderFunc = func(s sdf.SDF3, path string, cells int) {
		_ = os.WriteFile(path, make([]byte, 512), 0o644)
	}
	t.Cleanup(func() { renderFunc = oldRender })

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetContext(context.Background())
	return cmd, &out
}

func TestInitCommand(t *testing.T) {
	cmd, out := setupCommand(t)
	initForce = false
	t.Cleanup(func() { initForce = false })

	require.NoError(t, runInit(cmd, []string{}))
	assert.FileExists(t, config.FileName)
	assert.Contains(t, out.String(), "Wrote "+config.FileName)

	err := runInit(cmd, []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	initForce = true
	assert.NoError(t, runInit(cmd, []string{}))

	viper.SetConfigFile(config.FileName)
	require.NoError(t, viper.ReadInConfig())
	cfg, err := config.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(params.Default(), cfg.Headset); diff != "" {
		t.Errorf("initialised parameters differ from defaults (-want +got):\n%s", diff)
	}
}

func TestInitCommandWithDirectory(t *testing.T) {
	cmd, _ := setupCommand(t)

	require.NoError(t, runInit(cmd, []string{"prints/alice"}))
	assert.FileExists(t, filepath.Join("prints", "alice", config.FileName))
}

func TestGenerateCommand(t *testing.T) {
	cmd, out := setupCommand(t)

	require.NoError(t, runGenerate(cmd, []string{"headband"}))

	assert.FileExists(t, filepath.Join("out", "headband.stl"))
	assert.NoFileExists(t, filepath.Join("out", "headbox.stl"))
	assert.Contains(t, out.String(), "Headband")
	assert.Contains(t, out.String(), "Generated 1 part(s) in out")

	manifest, err := export.ReadManifest(filepath.Join("out", ManifestName))
	require.NoError(t, err)
	require.Len(t, manifest.Artifacts, 1)
	assert.Equal(t, "headband", manifest.Artifacts[0].Part)
	assert.Equal(t, int64(512), manifest.Artifacts[0].Bytes)
	assert.NotEmpty(t, manifest.RunID)
}

func TestGenerateAllParts(t *testing.T) {
	cmd, out := setupCommand(t)
	viper.Set("output.dir", "prints")
	viper.Set("output.manifest", false)

	require.NoError(t, runGenerate(cmd, nil))

	for _, name := range []string{"headband", "headbox", "tweeter_housing"} {
		assert.FileExists(t, filepath.Join("prints", name+".stl"))
	}
	assert.NoFileExists(t, filepath.Join("prints", ManifestName))
	assert.Contains(t, out.String(), "Tweeter Housing")
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		args    []string
		wantErr string
	}{
		{
			name:    "unknown part",
			setup:   func() {},
			args:    []string{"visor"},
			wantErr: "visor",
		},
		{
			name: "invalid parameters",
			setup: func() {
				viper.Set("headbox.strap_guide_depth", 1)
			},
			wantErr: "strap_guide",
		},
		{
			name: "invalid log level",
			setup: func() {
				viper.Set("log.level", "loud")
			},
			wantErr: "configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := setupCommand(t)
			tt.setup()

			err := runGenerate(cmd, tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoFileExists(t, filepath.Join("out", "headband.stl"))
		})
	}
}

func TestParamsCommand(t *testing.T) {
	t.Cleanup(func() { paramsFormat = "text" })

	t.Run("text", func(t *testing.T) {
		cmd, out := setupCommand(t)
		paramsFormat = "text"

		require.NoError(t, runParams(cmd, nil))
		assert.Contains(t, out.String(), "head.radius")
		assert.Contains(t, out.String(), "headbox")
		assert.Contains(t, out.String(), "69.00")
	})

	t.Run("json", func(t *testing.T) {
		cmd, out := setupCommand(t)
		paramsFormat = "json"
		viper.Set("head.circumference", 600)

		require.NoError(t, runParams(cmd, nil))
		var got paramsOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, 600.0, got.Params.Head.Circumference)
		assert.InDelta(t, 600/(2*3.141592653589793), got.Derived["head.radius"], 1e-9)
	})

	t.Run("yaml", func(t *testing.T) {
		cmd, out := setupCommand(t)
		paramsFormat = "yaml"

		require.NoError(t, runParams(cmd, nil))
		assert.Contains(t, out.String(), "params:")
		assert.Contains(t, out.String(), "derived:")
		assert.Contains(t, out.String(), "strap_guide_depth: 6")
	})
}

func TestValidateCommand(t *testing.T) {
	t.Cleanup(func() {
		validateFormat = "text"
		validateGeometry = false
	})

	t.Run("valid", func(t *testing.T) {
		cmd, out := setupCommand(t)
		validateFormat = "text"
		validateGeometry = false

		require.NoError(t, runValidateCommand(cmd, nil))
		assert.Contains(t, out.String(), "Configuration is valid")
	})

	t.Run("invalid with suggestion", func(t *testing.T) {
		cmd, out := setupCommand(t)
		validateFormat = "text"
		viper.Set("headbox.strap_guide_depth", 1)

		err := runValidateCommand(cmd, nil)
		require.Error(t, err)
		assert.Contains(t, out.String(), "Error:")
		assert.Contains(t, out.String(), "use at least")
	})

	t.Run("json", func(t *testing.T) {
		cmd, out := setupCommand(t)
		validateFormat = "json"
		viper.Set("head.circumference", -1)

		require.Error(t, runValidateCommand(cmd, nil))
		var got ValidationResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.False(t, got.Valid)
		require.Len(t, got.Errors, 1)
		assert.Contains(t, got.Errors[0], "head.circumference")
	})

	t.Run("json details", func(t *testing.T) {
		cmd, out := setupCommand(t)
		validateFormat = "json"
		viper.Set("headbox.strap_guide_depth", 1)
		viper.Set("log.level", "loud")

		require.Error(t, runValidateCommand(cmd, nil))
		var got ValidationResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		require.Len(t, got.Details, 1)
		assert.Equal(t, "configuration", got.Details[0].Kind)
		assert.Equal(t, "config", got.Details[0].Context["type"])
		assert.Equal(t, false, got.Details[0].Context["recoverable"])

		out.Reset()
		viper.Set("log.level", "info")
		require.Error(t, runValidateCommand(cmd, nil))
		got = ValidationResult{}
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		require.Len(t, got.Details, 1)
		assert.Equal(t, "parameters", got.Details[0].Kind)
		detail, ok := got.Details[0].Context["headbox.strap_guide_depth"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, 1.0, detail["value"])
		assert.NotEmpty(t, detail["suggestions"])
	})

	t.Run("geometry", func(t *testing.T) {
		cmd, out := setupCommand(t)
		validateFormat = "json"
		validateGeometry = true

		require.NoError(t, runValidateCommand(cmd, nil))
		var got ValidationResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.True(t, got.Valid)
		assert.Len(t, got.Parts, 3)
		for name, report := range got.Parts {
			assert.False(t, report.Empty(), name)
		}
	})
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"parameters", herrors.WrapConfig(herrors.ErrUnknownPart("visor"), herrors.ErrCodeConfigInvalid, "invalid"), "parameters"},
		{"geometry", fmt.Errorf("inspect: %w", herrors.ErrEmptySolid("headbox")), "geometry"},
		{"configuration", herrors.WrapConfig(fmt.Errorf("unknown log level"), herrors.ErrCodeConfigInvalid, "invalid"), "configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorKind(tt.err))
		})
	}
}

func TestParamsFromManifest(t *testing.T) {
	t.Cleanup(func() {
		paramsFormat = "text"
		paramsFromManifest = ""
	})

	cmd, out := setupCommand(t)
	viper.Set("head.circumference", 560)
	require.NoError(t, runGenerate(cmd, []string{"headband"}))

	viper.Set("head.circumference", 600)
	paramsFormat = "json"
	paramsFromManifest = filepath.Join("out", ManifestName)
	out.Reset()

	require.NoError(t, runParams(cmd, nil))
	var got paramsOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 560.0, got.Params.Head.Circumference)
	assert.InDelta(t, 560/(2*3.141592653589793), got.Derived["head.radius"], 1e-9)

	paramsFromManifest = filepath.Join("out", "missing.yml")
	err := runParams(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWatchRejectsNonYAMLConfig(t *testing.T) {
	cmd, _ := setupCommand(t)
	require.NoError(t, os.WriteFile("headset.json", []byte("{}"), 0o644))
	viper.SetConfigFile("headset.json")

	err := runWatch(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only YAML")
	assert.NoDirExists(t, "out")
}

func TestVersionCommand(t *testing.T) {
	t.Cleanup(func() {
		versionFormat = "text"
		versionShort = false
	})

	tests := []struct {
		format string
		short  bool
		want   string
	}{
		{format: "text", want: "headset "},
		{format: "text", short: true, want: ""},
		{format: "json", want: `"kernel"`},
		{format: "yaml", want: "go_version:"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			versionFormat = tt.format
			versionShort = tt.short

			var out bytes.Buffer
			cmd := &cobra.Command{}
			cmd.Flags().Bool("detailed", false, "")
			cmd.SetOut(&out)

			require.NoError(t, runVersionCommand(cmd, nil))
			assert.NotEmpty(t, strings.TrimSpace(out.String()))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRegenerate(t *testing.T) {
	cmd, out := setupCommand(t)
	require.NoError(t, runInit(cmd, nil))
	viper.SetConfigFile(config.FileName)
	out.Reset()

	handler := regenerate(context.Background(), logging.Discard(), out)
	events := []watcher.ChangeEvent{{Type: watcher.EventTypeModified, Path: config.FileName}}

	require.NoError(t, os.WriteFile(config.FileName, []byte("headbox:\n  strap_guide_depth: 1\n"), 0o644))
	require.NoError(t, handler(events))
	assert.Contains(t, out.String(), "Configuration is invalid")
	assert.NoFileExists(t, filepath.Join("out", "headband.stl"))

	out.Reset()
	require.NoError(t, os.WriteFile(config.FileName, []byte("head:\n  circumference: 560\noutput:\n  parts: [tweeter_housing]\n"), 0o644))
	require.NoError(t, handler(events))
	assert.FileExists(t, filepath.Join("out", "tweeter_housing.stl"))
	assert.NoFileExists(t, filepath.Join("out", "headband.stl"))

	manifest, err := export.ReadManifest(filepath.Join("out", ManifestName))
	require.NoError(t, err)
	assert.Equal(t, 560.0, manifest.Params.Head.Circumference)
}

func TestValidateResolution(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"200", false},
		{"16", false},
		{"2000", false},
		{"15", true},
		{"2001", true},
		{"fine", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateResolution(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFlagValidation(t *testing.T) {
	cmd := &cobra.Command{}
	flags := AddOutputFlags(cmd)
	var format string
	AddFormatFlag(cmd, &format, "text", "json")

	assert.Error(t, cmd.Flags().Set("resolution", "5"))
	assert.Equal(t, 200, flags.Resolution)
	require.NoError(t, cmd.Flags().Set("resolution", "64"))
	assert.Equal(t, 64, flags.Resolution)

	assert.Equal(t, "text", format)
	assert.Error(t, cmd.Flags().Set("format", "xml"))
	require.NoError(t, cmd.Flags().Set("format", "json"))
	assert.Equal(t, "json", format)
}

func TestBindFlags(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := &cobra.Command{}
	AddOutputFlags(cmd)
	require.NoError(t, cmd.Flags().Set("output", "prints"))
	require.NoError(t, cmd.Flags().Set("parts", "headbox,headband"))
	bindFlags(cmd)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "prints", cfg.Output.Dir)
	assert.Equal(t, []string{"headbox", "headband"}, cfg.Output.Parts)
	assert.Equal(t, 200, cfg.Output.Resolution)
}
