package classifier

import (
	"strings"
	"unicode"

	"leadscout/internal/identity/models"
)

// IsHandleShape reports whether s (without a leading "@") is a valid handle
// body: 1-30 characters from [a-zA-Z0-9._], no "..", and no leading or
// trailing ".".
func IsHandleShape(s string) bool {
	if s == "" || len(s) > models.MaxHandleLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHandleByte(s[i]) {
			return false
		}
	}
	if s[0] == '.' || s[len(s)-1] == '.' {
		return false
	}
	return !strings.Contains(s, "..")
}

// SanitizeHandle turns the first word of a line into a normalized handle.
// Characters outside [a-zA-Z0-9._@] are dropped, then one leading "@"; the
// remainder must pass IsHandleShape. Words containing non-ASCII letters are
// names, not handles, and are refused rather than mangled.
func SanitizeHandle(word string) (string, bool) {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if r < 0x80 {
			if isHandleByte(byte(r)) || r == '@' {
				b.WriteRune(r)
			}
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return "", false
		}
	}

	body := strings.TrimPrefix(b.String(), "@")
	if !IsHandleShape(body) {
		return "", false
	}
	return "@" + body, true
}

// hasHandleMarker reports whether the first word of a multi-word line looks
// like a handle rather than the start of a name.
func hasHandleMarker(word string) bool {
	if strings.HasPrefix(word, "@") {
		return true
	}
	return strings.ContainsFunc(word, func(r rune) bool {
		return r == '.' || r == '_' || unicode.IsDigit(r)
	})
}

func isHandleByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '.' || c == '_'
}
