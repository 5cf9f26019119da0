package unidata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseCodepoint parses "U+0301", "u+0301", "0x0301" or a single literal
// character.
func ParseCodepoint(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := ""
	switch {
	case strings.HasPrefix(token, "U+"), strings.HasPrefix(token, "u+"):
		hex = token[2:]
	case strings.HasPrefix(token, "0x"), strings.HasPrefix(token, "0X"):
		hex = token[2:]
	default:
		if r, size := utf8.DecodeRuneInString(token); size == len(token) && r != utf8.RuneError {
			return r, nil
		}
		return 0, fmt.Errorf("invalid codepoint %q", token)
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	r := rune(u)
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("codepoint %q is not a Unicode scalar value", token)
	}
	return r, nil
}

// ParseCodepoints parses a list of codepoints separated by commas or white
// space.
func ParseCodepoints(spec string) ([]rune, error) {
	parts := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := ParseCodepoint(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Format returns the U+XXXX notation of a codepoint.
func Format(cp rune) string {
	return fmt.Sprintf("U+%04X", cp)
}
