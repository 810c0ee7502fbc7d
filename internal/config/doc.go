// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface for reading it from various
// sources.
//
// The `config.Model` is the single source of truth for the app package: it
// names the spectra to build, the parameter overrides and scales to run, the
// extra capability units to register and the process bootstrap transport.
// Concrete loaders for HCL and YAML live in separate packages.
package config
