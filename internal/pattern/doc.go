// Package pattern evaluates naming expressions against filenames.
//
// Expressions use the .NET regular expression dialect (named groups written as
// (?<name>...), lazy quantifiers, lookarounds) via github.com/dlclark/regexp2,
// always case-insensitive. Stacking expressions capture four groups in order:
// title, volume, ignore, extension. Engine compiles each expression once and
// caches it; an expression that fails to compile never matches.
//
// Offsets and field indexes count runes, not bytes, so a retry offset taken
// from one match can be fed straight back into the next.
package pattern
