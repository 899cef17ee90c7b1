// Package config resolves the settings a relticket run operates with.
//
// Values come from, in order of precedence:
//   - Command-line flags
//   - Environment variables
//   - An optional YAML config file
//   - Built-in defaults
//
// The resolved PipelineConfig is immutable and shared read-only by every stage.
package config
