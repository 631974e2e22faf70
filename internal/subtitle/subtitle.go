// Package subtitle models SubRip cues and converts them to and from SRT text.
package subtitle

import (
	"errors"
	"fmt"
	"time"
)

// Extension is the file extension of SubRip files.
const Extension = ".srt"

var (
	ErrIncompleteBlock  = errors.New("block needs an index line and a timing line")
	ErrInvalidIndex     = errors.New("invalid cue index")
	ErrInvalidTiming    = errors.New("invalid timing line")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// Cue is one timed subtitle unit. Index is only used for display and
// round-trips; it is never an offset into a slice.
type Cue struct {
	Index   int
	Start   time.Duration
	End     time.Duration
	Content []string
}

// Validate checks the structural invariants of a cue.
func (c Cue) Validate() error {
	if c.Index < 1 {
		return fmt.Errorf("%w: %d is not positive", ErrInvalidIndex, c.Index)
	}
	if c.Start < 0 {
		return fmt.Errorf("%w: negative start %s", ErrInvalidTiming, c.Start)
	}
	if c.End < c.Start {
		return fmt.Errorf(
			"%w: end %s is before start %s",
			ErrInvalidTiming,
			FormatTimestamp(c.End),
			FormatTimestamp(c.Start),
		)
	}
	return nil
}

// ParseError locates a malformed block in the input.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("srt line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
