// Package main hosts the mediastack CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves paths given on the command line,
// scans directories into stacks, reads the run history kept in the index,
// parses audiobook file names, and scaffolds configuration. Resolution logic
// lives in internal packages; commands here only wire configuration,
// logging, and output formatting around them.
package main
