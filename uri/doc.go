// Package uri implements an immutable Uniform Resource Identifier (URI)
// value. Deriving a modified URI always returns a new value and leaves
// the receiver untouched.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc3986
package uri
