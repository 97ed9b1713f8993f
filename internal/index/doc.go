// Package index persists resolution runs in a SQLite database so earlier
// scans can be listed and inspected.
//
// A run records the scanned root, the stacks found in discovery order, and
// the entries left unstacked. Writers serialise through a lock file next to
// the database so concurrent CLI invocations do not interleave their
// transactions.
package index
