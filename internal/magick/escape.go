package magick

import "strings"

// shellSafe matches tokens that need no quoting in a POSIX shell. The
// bracket and caret characters are excluded: `[` and `]` are pathname
// expansion metacharacters, so an unquoted page selector like a.pdf[0]
// could match a sibling file instead of reaching the tool.
func shellSafe(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case strings.ContainsRune("-_./:,=%+@", r):
		default:
			return false
		}
	}
	return true
}

// shellQuote makes a single token safe for a POSIX shell. Embedded single
// quotes are closed, backslash-escaped, and reopened.
func shellQuote(s string) string {
	if shellSafe(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
