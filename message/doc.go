// Package message implements HTTP messages as immutable value objects:
// Message, Request, ServerRequest, Response and UploadedFile. Every
// With- method validates its input, returns a new instance and leaves
// the receiver untouched, so values can be shared freely across
// goroutines. The one stateful exception is [UploadedFile], which is a
// single-use resource.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9110
package message
