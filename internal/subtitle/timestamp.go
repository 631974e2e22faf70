package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// HH:MM:SS,mmm; hours may grow past two digits
var timestampRegex = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2}),(\d{3})$`)

// maxHours keeps a parsed timestamp inside time.Duration.
const maxHours = math.MaxInt64 / int64(time.Hour)

// TimingSeparator sits between the start and end timestamps of a cue.
const TimingSeparator = " --> "

// ParseTimestamp parses the canonical HH:MM:SS,mmm form.
func ParseTimestamp(s string) (time.Duration, error) {
	matches := timestampRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidTimestamp, s)
	}

	h, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidTimestamp, s, err)
	}
	if int64(h) >= maxHours {
		return 0, fmt.Errorf("%w %q: hours out of range", ErrInvalidTimestamp, s)
	}
	m, _ := strconv.Atoi(matches[2])
	sec, _ := strconv.Atoi(matches[3])
	ms, _ := strconv.Atoi(matches[4])
	if m > 59 || sec > 59 {
		return 0, fmt.Errorf("%w %q: minutes and seconds must be below 60", ErrInvalidTimestamp, s)
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

// FormatTimestamp renders d as zero-padded HH:MM:SS,mmm. Sub-millisecond
// precision is truncated and negative values render as zero.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond

	return fmt.Sprintf("%02d:%02d:%02d,%03d", int64(h), int64(m), int64(s), int64(ms))
}

// FormatTiming renders the "start --> end" line of a cue.
func FormatTiming(start, end time.Duration) string {
	return FormatTimestamp(start) + TimingSeparator + FormatTimestamp(end)
}

// ParseTiming parses a timing line. Whitespace around the arrow is not
// significant.
func ParseTiming(line string) (time.Duration, time.Duration, error) {
	startText, endText, ok := strings.Cut(line, "-->")
	if !ok {
		return 0, 0, fmt.Errorf("%w %q: missing -->", ErrInvalidTiming, line)
	}
	start, err := ParseTimestamp(strings.TrimSpace(startText))
	if err != nil {
		return 0, 0, fmt.Errorf("start: %w", err)
	}
	end, err := ParseTimestamp(strings.TrimSpace(endText))
	if err != nil {
		return 0, 0, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}
