// Package textutil turns the raw names captured from file names into text
// suitable for display.
package textutil
