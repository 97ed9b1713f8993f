// Package audiobook extracts container, part and chapter numbers from
// audiobook file paths.
//
// Parts and chapters come from the configured naming expressions, evaluated
// in order against the file name without its extension. Expressions name the
// values they capture with the "chapter" and "part" groups; the first
// expression that yields a number for a field decides that field.
package audiobook
