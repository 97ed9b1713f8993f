// Package config loads, normalizes, and validates mediastack configuration data.
//
// It supplies repository defaults (including the stock video stacking
// expressions and audiobook part expressions), expands user paths such as
// tilde shortcuts, reads TOML files, and honours environment fallbacks such as
// MEDIASTACK_LOG_LEVEL. The Config type centralizes every knob the resolver and
// CLI need so naming rules, index location, and logging are discovered in one
// pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical extensions, and clear validation errors.
package config
