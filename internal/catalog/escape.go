package catalog

import (
	"fmt"
	"strings"
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

// unquote reverses quote for a single PO string literal.
func unquote(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("%w: %s is not quoted", ErrInvalidString, s)
	}
	body := s[1 : len(s)-1]

	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '"':
			return "", fmt.Errorf("%w: unescaped quote in %s", ErrInvalidString, s)
		case '\\':
			if i == len(body)-1 {
				return "", fmt.Errorf("%w: unterminated %s", ErrInvalidString, s)
			}
			i++
			switch body[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			default:
				return "", fmt.Errorf("%w: unknown escape \\%c", ErrInvalidString, body[i])
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}
