// Package config loads, normalizes, and validates scribe configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// transcription pipeline and CLI need: where model weights and transcripts
// live, how models are fetched, which decoding parameters are passed to the
// speech model, and how logs are rendered.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
