package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const MaxNameLength = 64

// NormalizeName trims a display name and validates it. Any printable text is
// accepted; the name is only ever rendered as data.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrInvalidName
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", ErrInvalidName
		}
	}
	return name, nil
}
