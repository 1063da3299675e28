// Package stringx provides the small set of string helpers shared by the
// numerik packages: blank detection, whitespace stripping and truncation.
package stringx
