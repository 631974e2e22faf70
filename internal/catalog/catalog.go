// Package catalog reads and writes the subset of the gettext PO format used
// for subtitle translation: one comment, one msgid and one msgstr per record.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Extension is the file extension of translation catalogs.
const Extension = ".po"

var (
	ErrMissingMessageID    = errors.New("record has no msgid")
	ErrDuplicateKeyword    = errors.New("keyword repeated in record")
	ErrUnsupportedKeyword  = errors.New("unsupported catalog keyword")
	ErrUnexpectedLine      = errors.New("unexpected line")
	ErrCommentAfterMessage = errors.New("comment after msgid")
	ErrInvalidString       = errors.New("invalid quoted string")
)

// Entry is one translation record. An empty MessageString means the entry
// has not been translated yet.
type Entry struct {
	MessageID     string
	MessageString string
	Comment       string
}

// Translated reports whether the entry carries a translation.
func (e Entry) Translated() bool {
	return e.MessageString != ""
}

// isHeader matches the metadata record catalog editors put at the top of a
// file. It never carries a cue timing comment.
func (e Entry) isHeader() bool {
	return e.MessageID == "" &&
		e.MessageString != "" &&
		!strings.Contains(e.Comment, "-->")
}

// ParseError locates a malformed record in the input.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("po line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
