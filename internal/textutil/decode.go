// Package textutil holds the text decoding shared by the subtitle and catalog codecs.
package textutil

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidUTF8 is returned when a buffer without a UTF-16 byte order mark
// is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

var (
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Decode returns data as a string with any leading byte order mark removed.
// UTF-16 input is accepted when it carries a BOM; everything else must be UTF-8.
func Decode(data []byte) (string, error) {
	if bytes.HasPrefix(data, bomUTF16BE) || bytes.HasPrefix(data, bomUTF16LE) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", fmt.Errorf("decode utf-16: %w", err)
		}
		return string(out), nil
	}

	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decode utf-8: %w", err)
	}
	return string(out), nil
}

// Lines decodes data and splits it into lines, normalizing CRLF endings.
func Lines(data []byte) ([]string, error) {
	text, err := Decode(data)
	if err != nil {
		return nil, err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n"), nil
}

// IsBlank reports whether a line only separates records.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
