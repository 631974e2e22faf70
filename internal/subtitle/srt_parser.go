package subtitle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mgpai22/subpo/internal/textutil"
)

// Parse decodes an SRT buffer into cues in file order. Any malformed block
// fails the whole parse.
func Parse(data []byte) ([]Cue, error) {
	lines, err := textutil.Lines(data)
	if err != nil {
		return nil, fmt.Errorf("decode srt: %w", err)
	}

	var cues []Cue
	var block []string
	blockStart := 0

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		cue, err := parseBlock(block, blockStart)
		if err != nil {
			return err
		}
		cues = append(cues, cue)
		block = nil
		return nil
	}

	for i, line := range lines {
		if textutil.IsBlank(line) {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if len(block) == 0 {
			blockStart = i + 1
		}
		block = append(block, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return cues, nil
}

func parseBlock(lines []string, lineNum int) (Cue, error) {
	if len(lines) < 2 {
		return Cue{}, &ParseError{Line: lineNum, Err: ErrIncompleteBlock}
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || index < 1 {
		return Cue{}, &ParseError{
			Line: lineNum,
			Err:  fmt.Errorf("%w %q", ErrInvalidIndex, lines[0]),
		}
	}

	start, end, err := ParseTiming(lines[1])
	if err != nil {
		return Cue{}, &ParseError{Line: lineNum + 1, Err: err}
	}

	cue := Cue{Index: index, Start: start, End: end}
	if len(lines) > 2 {
		cue.Content = append(cue.Content, lines[2:]...)
	}
	if err := cue.Validate(); err != nil {
		return Cue{}, &ParseError{Line: lineNum + 1, Err: err}
	}
	return cue, nil
}
