// Package config resolves the settings of one CLI invocation: built-in
// defaults, an optional YAML file, then flag overrides.
package config
