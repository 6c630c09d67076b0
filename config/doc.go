// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the application configuration structure
// including server settings, breaker thresholds, probe intervals, and the list
// of guarded dependencies.
package config
