package main

import "strings"

// trimHex drops surrounding whitespace and one leading 0x/0X prefix.
func trimHex(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return s
}

func isHexDigit(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	default:
		return false
	}
}

func allHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

// isHexString reports whether the cell looks like a hex value. Byte length is
// not checked.
func isHexString(value string) bool {
	s := trimHex(value)
	return len(s) > 0 && allHexDigits(s)
}
