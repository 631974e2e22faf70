package catalog

import (
	"bytes"
	"strings"
)

// Marshal renders one entry as a PO record followed by a blank line.
func Marshal(entry Entry) []byte {
	var buf bytes.Buffer
	writeEntry(&buf, entry)
	return buf.Bytes()
}

// MarshalAll renders entries in the order given.
func MarshalAll(entries []Entry) []byte {
	var buf bytes.Buffer
	for _, entry := range entries {
		writeEntry(&buf, entry)
	}
	return buf.Bytes()
}

func writeEntry(buf *bytes.Buffer, entry Entry) {
	if entry.Comment != "" {
		for _, line := range strings.Split(entry.Comment, "\n") {
			buf.WriteString("# ")
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	buf.WriteString("msgid ")
	buf.WriteString(quote(entry.MessageID))
	buf.WriteByte('\n')
	buf.WriteString("msgstr ")
	buf.WriteString(quote(entry.MessageString))
	buf.WriteString("\n\n")
}
