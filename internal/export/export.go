// Package export meshes headset parts and records what was produced.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conneroisu/headset/internal/errors"
	"github.com/conneroisu/headset/internal/geometry"
	"github.com/conneroisu/headset/internal/headset"
	"github.com/conneroisu/headset/internal/logging"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
)

// FormatSTL is the only mesh format the exporter writes.
const FormatSTL = "stl"

// stlHeaderSize is the 80 byte header plus the triangle count of a binary STL.
const stlHeaderSize = 84

// RenderFunc writes s to path as a mesh with the given number of cells along
// the longest axis.
type RenderFunc func(s sdf.SDF3, path string, cells int)

// RenderSTL meshes with the kernel's octree marching cubes renderer.
func RenderSTL(s sdf.SDF3, path string, cells int) {
	render.ToSTL(s, path, render.NewMarchingCubesOctree(cells))
}

// Artifact is one exported part.
type Artifact struct {
	Part   string          `yaml:"part" json:"part"`
	Path   string          `yaml:"path" json:"path"`
	Bytes  int64           `yaml:"bytes" json:"bytes"`
	Report geometry.Report `yaml:"report" json:"report"`
}

// Exporter renders assemblies into a directory.
type Exporter struct {
	Dir        string
	Format     string
	Resolution int
	Samples    int
	Logger     logging.Logger
	Render     RenderFunc
}

// NewExporter returns an exporter writing STL files to dir.
func NewExporter(dir string, resolution int, logger logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Exporter{
		Dir:        dir,
		Format:     FormatSTL,
		Resolution: resolution,
		Samples:    geometry.DefaultSamples,
		Logger:     logger.WithComponent("export"),
		Render:     RenderSTL,
	}
}

// Export inspects and renders every part of asm. Empty parts fail the export
// before anything is written for them. Cancellation is checked between parts.
func (e *Exporter) Export(ctx context.Context, asm *headset.Assembly) ([]Artifact, error) {
	format := strings.ToLower(e.Format)
	if format == "" {
		format = FormatSTL
	}
	if format != FormatSTL {
		return nil, errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported mesh format %q", e.Format))
	}
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeWriteFailed, "failed to create output directory", err).WithFile(e.Dir)
	}

	artifacts := make([]Artifact, 0, len(asm.Parts))
	for _, part := range asm.Parts {
		if err := ctx.Err(); err != nil {
			return artifacts, errors.Wrap(err, errors.ErrorTypeInternal, errors.ErrCodeRenderCancelled, "export cancelled")
		}

		artifact, err := e.exportPart(ctx, part)
		if err != nil {
			return artifacts, err
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

func (e *Exporter) exportPart(ctx context.Context, part headset.Part) (Artifact, error) {
	report := geometry.Inspect(part.Solid, e.Samples)
	if report.Empty() {
		return Artifact{}, errors.ErrEmptySolid(part.Name)
	}

	path := filepath.Join(e.Dir, part.Name+"."+FormatSTL)
	// the renderer only logs its failures, so a mesh from an earlier run
	// must not be left where a missing one would be detected
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return Artifact{}, errors.WrapIO(err, errors.ErrCodeWriteFailed, "failed to remove previous mesh").
			WithPart(part.Name).WithFile(path)
	}

	op := logging.StartOperation(e.Logger, "render")
	e.Render(part.Solid, path, e.Resolution)

	info, err := os.Stat(path)
	if err != nil {
		op.EndWithError(ctx, err)
		return Artifact{}, errors.NewIOError(errors.ErrCodeWriteFailed, "renderer produced no file", err).
			WithPart(part.Name).WithFile(path)
	}
	if info.Size() <= stlHeaderSize {
		err := errors.NewGeometryError(errors.ErrCodeEmptySolid, "mesh has no triangles", nil).
			WithPart(part.Name).WithFile(path)
		op.EndWithError(ctx, err)
		return Artifact{}, err
	}

	op.End(ctx, "part", part.Name, "path", path, "bytes", info.Size(), "volume_mm3", report.Volume)
	return Artifact{Part: part.Name, Path: path, Bytes: info.Size(), Report: report}, nil
}
