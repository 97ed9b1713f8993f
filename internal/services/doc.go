// Package services defines shared utilities consumed by the resolver, the
// audiobook parser, the run index, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and component names for
//     logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (bad input vs configuration vs transient) with errors.Is.
//
// Use these helpers when wiring new components so error classification and
// observability stay uniform across the module.
package services
