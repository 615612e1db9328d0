package rule

import "strings"

// IsValidToken reports whether s is a valid token.
// Field names are required to be tokens.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.6.2-2
func IsValidToken(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if IsAlpha(c) || IsDigit(c) {
			continue
		}

		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+',
			'-', '.', '^', '_', '`', '|', '~':
			continue
		}

		return false
	}

	return true
}

// Unquote unquotes s if it was quoted with double quotes.
// If the quoted string includes escaped characters, they are unescaped.
func Unquote(s string) string {
	quoted := false
	if len(s) >= 2 {
		first, last := 0, len(s)-1
		if s[first] == '"' && s[last] == '"' {
			s = s[first+1 : last]
			quoted = true
		}
	}

	if !quoted {
		return s
	}

	b := new(strings.Builder)
	b.Grow(len(s))
	for idx := 0; idx < len(s); idx++ {
		c := s[idx]
		if c == '\\' && idx+1 < len(s) {
			// Escaped character inside quote.
			// Unescape it and write it away.
			idx++
			c = s[idx]
		}
		b.WriteByte(c)
	}

	return b.String()
}

// IsValidFieldValue reports whether s is valid field content:
// VCHAR, obs-text, SP and HTAB. CR, LF and NUL are rejected
// unconditionally since they allow response splitting.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-5.5-2
func IsValidFieldValue(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == SP || c == HTAB:
		case 0x21 <= c && c <= 0x7E:
		case c >= 0x80: // obs-text
		default:
			return false
		}
	}

	return true
}
