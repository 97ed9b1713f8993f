// Package library lists media directories into resolver entries.
//
// It is the only part of the resolution path that touches the filesystem.
// Listing is not recursive: the immediate children of a directory become
// folder and file entries, and classification is left to the resolver.
package library
