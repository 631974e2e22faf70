package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mgpai22/subpo/internal/catalog"
	"github.com/mgpai22/subpo/internal/subtitle"
)

// DefaultSentinel replaces line breaks when cue content is flattened into a
// single message id. Content that already contains it does not round-trip.
const DefaultSentinel = "<nl>"

// Mapper turns cues into catalog entries and back. The cue index and timing
// travel in the entry comment as "index\nstart --> end".
type Mapper struct {
	sentinel string
}

func NewMapper(sentinel string) Mapper {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	return Mapper{sentinel: sentinel}
}

func (m Mapper) Sentinel() string {
	return m.sentinel
}

// Join flattens content lines into one message string.
func (m Mapper) Join(lines []string) string {
	return strings.Join(lines, m.sentinel)
}

// Split reverses Join. Literal line breaks typed by a translator also split.
func (m Mapper) Split(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, part := range strings.Split(text, m.sentinel) {
		lines = append(lines, strings.Split(part, "\n")...)
	}
	return lines
}

// Encode maps a cue to an untranslated entry.
func (m Mapper) Encode(cue subtitle.Cue) catalog.Entry {
	return catalog.Entry{
		MessageID: m.Join(cue.Content),
		Comment:   strconv.Itoa(cue.Index) + "\n" + subtitle.FormatTiming(cue.Start, cue.End),
	}
}

// Decode rebuilds a cue from an entry, preferring the translation over the
// source text. There is no best-effort recovery from a broken comment.
func (m Mapper) Decode(entry catalog.Entry) (subtitle.Cue, error) {
	text := entry.MessageString
	if text == "" {
		text = entry.MessageID
	}

	cue, err := parseComment(entry.Comment)
	if err != nil {
		return subtitle.Cue{}, err
	}
	cue.Content = m.Split(text)

	if err := cue.Validate(); err != nil {
		return subtitle.Cue{}, malformed(err)
	}
	return cue, nil
}

func parseComment(comment string) (subtitle.Cue, error) {
	if strings.Count(comment, "\n") != 1 {
		return subtitle.Cue{}, fmt.Errorf(
			"%w: comment %q must hold the cue index and timing on two lines",
			ErrMalformedInput,
			comment,
		)
	}
	indexLine, timingLine, _ := strings.Cut(comment, "\n")

	index, err := strconv.Atoi(strings.TrimSpace(indexLine))
	if err != nil {
		return subtitle.Cue{}, fmt.Errorf("%w: cue index %q: %w", ErrMalformedInput, indexLine, subtitle.ErrInvalidIndex)
	}

	startText, endText, ok := strings.Cut(strings.TrimSpace(timingLine), subtitle.TimingSeparator)
	if !ok {
		return subtitle.Cue{}, fmt.Errorf(
			"%w: timing %q has no %q separator",
			ErrMalformedInput,
			timingLine,
			subtitle.TimingSeparator,
		)
	}
	start, err := subtitle.ParseTimestamp(startText)
	if err != nil {
		return subtitle.Cue{}, malformed(fmt.Errorf("start: %w", err))
	}
	end, err := subtitle.ParseTimestamp(endText)
	if err != nil {
		return subtitle.Cue{}, malformed(fmt.Errorf("end: %w", err))
	}

	return subtitle.Cue{Index: index, Start: start, End: end}, nil
}
