// Package config loads and merges ctskit configuration files.
//
// Configuration is read from JSON files (.ctskit.config.json and friends)
// with CLI flags taking precedence over file values. The OpenCL interop
// switch lives here: it selects the live or disabled variant of the interop
// guard at startup.
package config
