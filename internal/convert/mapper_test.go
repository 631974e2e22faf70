package convert

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mgpai22/subpo/internal/catalog"
	"github.com/mgpai22/subpo/internal/subtitle"
)

func TestEncode(t *testing.T) {
	cue := subtitle.Cue{
		Index:   1,
		Start:   time.Second,
		End:     2 * time.Second,
		Content: []string{"Hello", "World"},
	}

	got := NewMapper("").Encode(cue)
	want := catalog.Entry{
		MessageID: "Hello<nl>World",
		Comment:   "1\n00:00:01,000 --> 00:00:02,000",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	cues := []subtitle.Cue{
		{Index: 1, Start: 0, End: 0, Content: []string{"Zero length"}},
		{Index: 2, Start: time.Second, End: 2 * time.Second, Content: []string{"Hello", "World"}},
		{Index: 3, Start: 3 * time.Second, End: 4 * time.Second},
		{Index: 4, Start: time.Hour, End: 101 * time.Hour, Content: []string{"a", "", "b"}},
		{Index: 57, Start: 5 * time.Millisecond, End: 6 * time.Millisecond, Content: []string{"  padded  ", "ünïcödé"}},
	}

	for _, sentinel := range []string{"", "|", "[[BR]]"} {
		mapper := NewMapper(sentinel)
		for _, cue := range cues {
			got, err := mapper.Decode(mapper.Encode(cue))
			if err != nil {
				t.Fatalf("sentinel %q: Decode(Encode(%d)) error: %v", sentinel, cue.Index, err)
			}
			if diff := cmp.Diff(cue, got); diff != "" {
				t.Errorf("sentinel %q: round trip mismatch (-want +got):\n%s", sentinel, diff)
			}
		}
	}
}

func TestDecodePrefersTranslation(t *testing.T) {
	entry := catalog.Entry{
		MessageID:     "Hello<nl>World",
		MessageString: "Bonjour<nl>le monde",
		Comment:       "3\n00:00:01,000 --> 00:00:02,000",
	}
	cue, err := NewMapper("").Decode(entry)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if diff := cmp.Diff([]string{"Bonjour", "le monde"}, cue.Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
	if cue.Index != 3 {
		t.Errorf("expected index 3, got %d", cue.Index)
	}
}

func TestDecodeSplitsLiteralLineBreaks(t *testing.T) {
	entry := catalog.Entry{
		MessageID:     "x",
		MessageString: "one\r\ntwo<nl>three\nfour",
		Comment:       "1\n00:00:01,000 --> 00:00:02,000",
	}
	cue, err := NewMapper("").Decode(entry)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	want := []string{"one", "two", "three", "four"}
	if diff := cmp.Diff(want, cue.Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMalformedComment(t *testing.T) {
	tests := []struct {
		name    string
		comment string
	}{
		{"empty", ""},
		{"no newline", "1 00:00:01,000 --> 00:00:02,000"},
		{"two newlines", "1\n00:00:01,000 --> 00:00:02,000\nextra"},
		{"no separator", "1\n00:00:01,000 00:00:02,000"},
		{"tight arrow", "1\n00:00:01,000-->00:00:02,000"},
		{"bad start", "1\n00:00:1,000 --> 00:00:02,000"},
		{"bad end", "1\n00:00:01,000 --> soon"},
		{"double arrow", "1\n00:00:01,000 --> 00:00:02,000 --> 00:00:03,000"},
		{"non numeric index", "one\n00:00:01,000 --> 00:00:02,000"},
		{"zero index", "0\n00:00:01,000 --> 00:00:02,000"},
		{"end before start", "1\n00:00:03,000 --> 00:00:02,000"},
		{"hour overflow", "1\n00:00:01,000 --> 5124096:00:00,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMapper("").Decode(catalog.Entry{MessageID: "text", Comment: tt.comment})
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestSplitJoin(t *testing.T) {
	mapper := NewMapper("")
	if got := mapper.Split(""); got != nil {
		t.Errorf("Split(\"\") = %q, want nil", got)
	}
	if got := mapper.Join(nil); got != "" {
		t.Errorf("Join(nil) = %q, want empty", got)
	}
	if mapper.Sentinel() != DefaultSentinel {
		t.Errorf("expected default sentinel, got %q", mapper.Sentinel())
	}
}
