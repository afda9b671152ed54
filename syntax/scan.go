package syntax

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// specialEscapes are the escapes that consume exactly one rune after the
// backslash and have a fixed meaning.
const specialEscapes = `tnvfr0.\+*?^$[]{}()|/`

// ScanEscape returns the escape sequence at the start of s, which must begin
// with a backslash. Recognized forms are tried in order: three-digit octal
// (value 0-255), \xHH, \uHHHH, \cX, the fixed single-rune escapes, and
// finally any other rune after the backslash.
//
// ok is false when s ends right after the backslash.
func ScanEscape(s string) (esc string, ok bool) {
	if len(s) < 2 || s[0] != '\\' {
		return "", false
	}
	switch {
	case isOctalEscape(s):
		return s[:4], true
	case s[1] == 'x' && hasHexDigits(s[2:], 2):
		return s[:4], true
	case s[1] == 'u' && hasHexDigits(s[2:], 4):
		return s[:6], true
	case s[1] == 'c' && len(s) > 2 && isASCIILetter(s[2]):
		return s[:3], true
	case strings.IndexByte(specialEscapes, s[1]) >= 0:
		return s[:2], true
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	return s[:1+size], true
}

// ScanClass returns the bracketed class at the start of s, which must begin
// with '['. The class ends at the first unescaped ']'; a backslash always
// consumes the rune after it. ok is false when no closing bracket exists.
func ScanClass(s string) (class string, ok bool) {
	if s == "" || s[0] != '[' {
		return "", false
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			esc, ok := ScanEscape(s[i:])
			if !ok {
				return "", false
			}
			i += len(esc) - 1
		case ']':
			return s[:i+1], true
		}
	}
	return "", false
}

// DecodeEscape returns the rune denoted by an escape sequence produced by
// ScanEscape.
func DecodeEscape(esc string) rune {
	if len(esc) < 2 {
		return utf8.RuneError
	}
	switch {
	case len(esc) == 4 && isOctalEscape(esc):
		v, _ := strconv.ParseUint(esc[1:4], 8, 32)
		return rune(v)
	case len(esc) == 4 && esc[1] == 'x':
		v, _ := strconv.ParseUint(esc[2:4], 16, 32)
		return rune(v)
	case len(esc) == 6 && esc[1] == 'u':
		v, _ := strconv.ParseUint(esc[2:6], 16, 32)
		return rune(v)
	case len(esc) == 3 && esc[1] == 'c':
		return rune(esc[2] & 0x1f)
	}
	switch esc[1] {
	case 't':
		return '\t'
	case 'n':
		return '\n'
	case 'v':
		return '\v'
	case 'f':
		return '\f'
	case 'r':
		return '\r'
	case '0':
		return 0
	}
	r, _ := utf8.DecodeRuneInString(esc[1:])
	return r
}

func isOctalEscape(s string) bool {
	if len(s) < 4 {
		return false
	}
	for i := 1; i < 4; i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	// three octal digits reach 0777; only 0-0377 are bytes
	return s[1] <= '3'
}

func hasHexDigits(s string, n int) bool {
	if len(s) < n {
		return false
	}
	for i := 0; i < n; i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
