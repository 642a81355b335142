// Package config defines the settings of the counter demo and provides
// helpers to load, validate and save them in YAML format.
//
// Values read from the file can be overridden with MVI_* environment variables.
package config
