package subtitle

import (
	"bytes"
	"strconv"
	"strings"
)

// Marshal renders a single cue as an SRT block followed by a blank line.
// Blank content lines are left out since they would end the block early.
func Marshal(cue Cue) []byte {
	var buf bytes.Buffer
	writeCue(&buf, cue)
	return buf.Bytes()
}

// MarshalAll renders cues in the order given. Indices are written as-is,
// not renumbered.
func MarshalAll(cues []Cue) []byte {
	var buf bytes.Buffer
	for _, cue := range cues {
		writeCue(&buf, cue)
	}
	return buf.Bytes()
}

func writeCue(buf *bytes.Buffer, cue Cue) {
	buf.WriteString(strconv.Itoa(cue.Index))
	buf.WriteByte('\n')
	buf.WriteString(FormatTiming(cue.Start, cue.End))
	buf.WriteByte('\n')
	for _, line := range cue.Content {
		if strings.TrimSpace(line) == "" {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
}
