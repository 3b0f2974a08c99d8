// Package internal contains the core implementation packages for headset.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the headset CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - params: Dimensional parameters, derived dimensions and validation
//   - geometry: Parametric solid builders on signed distance functions
//   - headset: Assembly of the printable parts from one parameter set
//   - export: STL meshing and the run manifest
//   - config: Layered configuration with viper and validation
//   - errors: Typed errors with part, file and suggestion context
//   - logging: Structured logging with rotated file output
//   - watcher: File system monitoring with debouncing
//   - version: Build information
//
// # Data Flow
//
// A run moves through the packages in one direction:
//
//   - config resolves defaults, the file, environment and flags into params
//   - headset validates the params and builds one solid per part from geometry
//   - export samples each solid, meshes it and records the run in a manifest
//   - watcher reruns the whole flow when the configuration file is saved
//
// Every length is in millimetres and every angle in degrees.
package internal
