// Package config loads API settings from environment variables (API_ prefix)
// and an optional config file, then validates them. Other packages receive
// the typed sections they need rather than reading the environment.
package config
