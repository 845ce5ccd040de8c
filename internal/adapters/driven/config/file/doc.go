// Package file provides the TOML-backed configuration store. Settings
// live in ~/.docdex/config.toml and are flattened to dot-notation keys
// (e.g. "embedding.model") for lookup.
package file
