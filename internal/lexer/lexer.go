// Package lexer carves configuration lines into directive tokens. Functions
// never modify their input; they return positions or substrings of it.
package lexer

import "strings"

// Whitespace is the byte set treated as blank between tokens.
const Whitespace = " \t\n\v\f\r"

// StripComment returns line without its trailing comment. A '#' starts a
// comment unless it sits inside a double-quoted span; a backslash keeps the
// next '"' from opening or closing a span. Unterminated quotes are left for
// value parsing to reject.
func StripComment(line string) string {
	inQuote := false
	escape := false

	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			if !escape {
				inQuote = !inQuote
			}
			escape = false
		case '\\':
			escape = true
		case '#':
			if !inQuote {
				return line[:i]
			}
			escape = false
		default:
			escape = false
		}
	}
	return line
}

// TokenStart returns the index of the first non-blank byte of s, or len(s).
func TokenStart(s string) int {
	i := 0
	for i < len(s) && IsSpace(s[i]) {
		i++
	}
	return i
}

// TokenEnd returns the index of the first blank byte following the first
// token of s, or len(s) when the token runs to the end.
func TokenEnd(s string) int {
	i := TokenStart(s)
	for i < len(s) && !IsSpace(s[i]) {
		i++
	}
	return i
}

// SplitKeyword splits line into its leading token and the trimmed rest.
// Both are empty for a blank line.
func SplitKeyword(line string) (keyword, remainder string) {
	start, end := TokenStart(line), TokenEnd(line)
	return line[start:end], Trim(line[end:])
}

// Trim removes leading and trailing Whitespace.
func Trim(s string) string {
	return strings.Trim(s, Whitespace)
}

// TrimLeft removes leading Whitespace.
func TrimLeft(s string) string {
	return s[TokenStart(s):]
}

// IsSpace reports whether c is in Whitespace.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
