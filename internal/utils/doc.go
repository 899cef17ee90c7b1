// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Input source parsing (files, "-" and implicit stdin)
//   - Streaming line iteration over those sources
//   - Terminal detection
package utils
