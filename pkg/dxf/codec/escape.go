package codec

import (
	"fmt"
	"strings"
)

// Separator delimits the items of list-valued fields.
const Separator = ';'

// Escape renders s so that it fits on a single line and contains no bare
// list separators.
func Escape(s string) string {
	if !strings.ContainsAny(s, "\\\n\t\r;") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case Separator:
			sb.WriteString(`\;`)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Unescape reverses Escape. Unknown escape sequences and a trailing lone
// backslash are errors; the caller attaches the stream location.
func Unescape(raw string) (string, error) {
	if strings.IndexByte(raw, '\\') < 0 {
		return raw, nil
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(raw) {
			return "", fmt.Errorf("dangling escape at end of value")
		}
		i++
		switch raw[i] {
		case '\\':
			sb.WriteByte('\\')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case Separator:
			sb.WriteByte(Separator)
		default:
			return "", fmt.Errorf("unknown escape sequence \\%c at position %d", raw[i], i-1)
		}
	}
	return sb.String(), nil
}

// JoinEscaped escapes every item and joins them with the list separator.
// The item count must be persisted separately since an empty list and a
// list with one empty item render identically.
func JoinEscaped(items []string) string {
	escaped := make([]string, len(items))
	for i, item := range items {
		escaped[i] = Escape(item)
	}
	return strings.Join(escaped, string(Separator))
}

// SplitEscaped splits raw on separators that are not escaped. The returned
// parts are still escaped.
func SplitEscaped(raw string) []string {
	if raw == "" {
		return nil
	}

	var parts []string
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case Separator:
			parts = append(parts, raw[start:i])
			start = i + 1
		}
	}
	return append(parts, raw[start:])
}

// SplitUnescaped splits raw like SplitEscaped and unescapes every part.
func SplitUnescaped(raw string) ([]string, error) {
	parts := SplitEscaped(raw)
	for i, p := range parts {
		u, err := Unescape(p)
		if err != nil {
			return nil, fmt.Errorf("list item %d: %w", i, err)
		}
		parts[i] = u
	}
	return parts, nil
}
