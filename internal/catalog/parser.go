package catalog

import (
	"fmt"
	"strings"

	"github.com/mgpai22/subpo/internal/textutil"
)

// Parse decodes a PO buffer into entries in file order. A leading metadata
// header and obsolete (#~) records are skipped; anything outside the
// supported subset fails the whole parse.
func Parse(data []byte) ([]Entry, error) {
	lines, err := textutil.Lines(data)
	if err != nil {
		return nil, fmt.Errorf("decode po: %w", err)
	}

	var entries []Entry
	var record []string
	recordStart := 0

	flush := func() error {
		if len(record) == 0 {
			return nil
		}
		entry, ok, err := parseRecord(record, recordStart)
		record = nil
		if err != nil {
			return err
		}
		if ok {
			entries = append(entries, entry)
		}
		return nil
	}

	for i, line := range lines {
		if textutil.IsBlank(line) {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if len(record) == 0 {
			recordStart = i + 1
		}
		record = append(record, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(entries) > 0 && entries[0].isHeader() {
		entries = entries[1:]
	}
	return entries, nil
}

// parseRecord returns ok=false for records that carry no entry.
func parseRecord(lines []string, lineNum int) (Entry, bool, error) {
	var (
		entry    Entry
		comments []string
		field    *string
		seenID   bool
		seenStr  bool
		obsolete bool
	)

	fail := func(offset int, err error) (Entry, bool, error) {
		return Entry{}, false, &ParseError{Line: lineNum + offset, Err: err}
	}

	for offset, raw := range lines {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, "#~"):
			obsolete = true
			field = nil
		case strings.HasPrefix(line, "#,"),
			strings.HasPrefix(line, "#:"),
			strings.HasPrefix(line, "#|"):
			field = nil
		case strings.HasPrefix(line, "#"):
			if seenID {
				return fail(offset, ErrCommentAfterMessage)
			}
			text := strings.TrimPrefix(line[1:], ".")
			comments = append(comments, strings.TrimPrefix(text, " "))
		case strings.HasPrefix(line, `"`):
			if field == nil {
				return fail(offset, fmt.Errorf("%w: dangling string %s", ErrUnexpectedLine, line))
			}
			value, err := unquote(line)
			if err != nil {
				return fail(offset, err)
			}
			*field += value
		default:
			keyword, rest, _ := strings.Cut(line, " ")
			switch {
			case keyword == "msgid":
				if seenID {
					return fail(offset, fmt.Errorf("%w: msgid", ErrDuplicateKeyword))
				}
				value, err := unquote(rest)
				if err != nil {
					return fail(offset, err)
				}
				entry.MessageID = value
				field = &entry.MessageID
				seenID = true
			case keyword == "msgstr":
				if !seenID {
					return fail(offset, ErrMissingMessageID)
				}
				if seenStr {
					return fail(offset, fmt.Errorf("%w: msgstr", ErrDuplicateKeyword))
				}
				value, err := unquote(rest)
				if err != nil {
					return fail(offset, err)
				}
				entry.MessageString = value
				field = &entry.MessageString
				seenStr = true
			case keyword == "msgctxt",
				keyword == "msgid_plural",
				strings.HasPrefix(keyword, "msgstr["):
				return fail(offset, fmt.Errorf("%w: %s", ErrUnsupportedKeyword, keyword))
			default:
				return fail(offset, fmt.Errorf("%w: %q", ErrUnexpectedLine, line))
			}
		}
	}

	if obsolete {
		return Entry{}, false, nil
	}
	if !seenID {
		return fail(0, ErrMissingMessageID)
	}

	entry.Comment = strings.Join(comments, "\n")
	return entry, true, nil
}
