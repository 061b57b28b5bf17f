// Package config resolves the effective run configuration.
//
// Options come from three sources, merged key by key with later sources
// winning: the defaults of the current run mode, an optional JSON (or YAML)
// configuration document, and the options supplied on the command line.
// The merged reporter list is then parsed into a reporter map and validated
// before anything is executed.
package config
