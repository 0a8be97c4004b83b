// Package config loads and merges tfreview configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (TFREVIEW_PROVIDER, TFREVIEW_MODEL, TFREVIEW_INPUT, etc.)
//  3. Config file ($XDG_CONFIG_HOME/tfreview/config.yaml, or --config)
//  4. Built-in defaults
//
// The file is YAML. Keys missing from it keep their default, so a file that
// only sets provider still gets the default paths and retry policy.
package config
