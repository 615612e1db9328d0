// Package rule implements the core character rules shared by the HTTP
// field and URI grammars.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9110#section-5.6
//
// - https://datatracker.ietf.org/doc/html/rfc5234#appendix-B.1
package rule

import "strings"

const (
	CR   byte = '\r'
	LF   byte = '\n'
	SP   byte = ' '
	HTAB byte = '\t'
)

var OWS = []byte{SP, HTAB}

func IsWhitespace(r rune) bool {
	return r == rune(SP) || r == rune(HTAB)
}

func IsAlpha(r rune) bool { return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') }
func IsDigit(r rune) bool { return '0' <= r && r <= '9' }

func IsHex(r rune) bool {
	return IsDigit(r) ||
		('a' <= r && r <= 'f') ||
		('A' <= r && r <= 'F')
}

// TrimOWS trims optional whitespace from both ends of s.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.3
func TrimOWS(s string) string {
	return strings.Trim(s, string(OWS))
}
