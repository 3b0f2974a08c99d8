package export

import (
	"os"
	"path/filepath"
	"time"

	"github.com/conneroisu/headset/internal/errors"
	"github.com/conneroisu/headset/internal/params"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manifest records one generation run.
type Manifest struct {
	RunID     string             `yaml:"run_id" json:"run_id"`
	Version   string             `yaml:"version" json:"version"`
	Generated time.Time          `yaml:"generated" json:"generated"`
	Params    params.Headset     `yaml:"params" json:"params"`
	Derived   map[string]float64 `yaml:"derived" json:"derived"`
	Artifacts []Artifact         `yaml:"artifacts" json:"artifacts"`
}

// NewRunID returns an identifier for one generation run. It is logged with
// every message of the run and stored in the manifest.
func NewRunID() string {
	return uuid.New().String()
}

// NewManifest returns the manifest of run runID.
func NewManifest(runID, version string, hs params.Headset, artifacts []Artifact) Manifest {
	return Manifest{
		RunID:     runID,
		Version:   version,
		Generated: time.Now().UTC(),
		Params:    hs,
		Derived:   hs.Derived(),
		Artifacts: artifacts,
	}
}

// WriteManifest writes m to path as YAML.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeInternalError, "failed to encode manifest", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWriteFailed, "failed to create manifest directory").WithFile(path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO(err, errors.ErrCodeWriteFailed, "failed to write manifest").WithFile(path)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, errors.WrapIO(err, errors.ErrCodeFileNotFound, "failed to read manifest").WithFile(path)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "invalid manifest").WithFile(path)
	}
	return m, nil
}
