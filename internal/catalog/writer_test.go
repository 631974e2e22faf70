package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshal(t *testing.T) {
	entry := Entry{
		MessageID: "Hello<nl>World",
		Comment:   "1\n00:00:01,000 --> 00:00:02,000",
	}
	want := "# 1\n" +
		"# 00:00:01,000 --> 00:00:02,000\n" +
		"msgid \"Hello<nl>World\"\n" +
		"msgstr \"\"\n\n"
	if got := string(Marshal(entry)); got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
}

func TestMarshalWithoutComment(t *testing.T) {
	want := "msgid \"a\"\nmsgstr \"b\"\n\n"
	if got := string(Marshal(Entry{MessageID: "a", MessageString: "b"})); got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
}

func TestMarshalParseRoundTrip(t *testing.T) {
	entries := []Entry{
		{MessageID: `quote " backslash \ tab	end`, MessageString: "line\nbreak", Comment: "1\n00:00:01,000 --> 00:00:02,000"},
		{MessageID: "plain", Comment: "2\n00:00:02,000 --> 00:00:03,000"},
		{MessageID: "", Comment: "3\n00:00:03,000 --> 00:00:04,000"},
		{MessageID: "日本語<nl>テキスト", MessageString: "Japanese text", Comment: "4\n00:00:05,000 --> 00:00:06,000"},
	}

	got, err := Parse(MarshalAll(entries))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`""`, ""},
		{`"abc"`, "abc"},
		{`"a\nb"`, "a\nb"},
		{`"\\n"`, `\n`},
		{`"\"quoted\""`, `"quoted"`},
		{`  "padded"  `, "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := unquote(tt.input)
			if err != nil {
				t.Fatalf("unquote(%s) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("unquote(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
