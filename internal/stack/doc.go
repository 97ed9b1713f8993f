// Package stack groups media paths that are parts of one logical title
// ("Movie CD1.avi", "Movie CD2.avi") into stacks.
//
// Candidates are filtered through a classify.Classifier, sorted by id with
// ordinal comparison, then scanned left to right. For each anchor the
// configured naming expressions are tried in priority order. An expression
// captures title, volume, ignore and extension; entries that agree on title,
// ignore and extension but differ in volume join the anchor's stack. A
// differing ignore field with a differing volume marks a sequel, and an equal
// volume with a differing ignore field marks a false positive that is retried
// from the anchor's ignore offset.
//
// Resolution is a pure function of its inputs. A Resolver holds no per-call
// state and may be shared between goroutines as long as its Matcher is safe
// for concurrent use (pattern.Engine is).
package stack
