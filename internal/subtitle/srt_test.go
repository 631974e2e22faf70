package subtitle

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseSRT(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final subtitle.
`

	cues, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []Cue{
		{Index: 1, Start: time.Second, End: 4 * time.Second, Content: []string{"Hello, world!"}},
		{
			Index:   2,
			Start:   5500 * time.Millisecond,
			End:     8200 * time.Millisecond,
			Content: []string{"This is a test.", "With multiple lines."},
		},
		{Index: 3, Start: 10 * time.Second, End: 12500 * time.Millisecond, Content: []string{"Final subtitle."}},
	}
	if diff := cmp.Diff(want, cues); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSRTToleratesBOMAndCRLF(t *testing.T) {
	content := "\ufeff7\r\n00:01:00,000 --> 00:01:02,250\r\nLine one\r\nLine two\r\n\r\n\r\n8\r\n00:01:03,000 --> 00:01:04,000\r\nNext\r\n"

	cues, err := Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Index != 7 {
		t.Errorf("expected index 7, got %d", cues[0].Index)
	}
	if diff := cmp.Diff([]string{"Line one", "Line two"}, cues[0].Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSRTEmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "\ufeff"} {
		cues, err := Parse([]byte(input))
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", input, err)
		}
		if len(cues) != 0 {
			t.Errorf("Parse(%q) returned %d cues", input, len(cues))
		}
	}
}

func TestParseSRTCueWithoutContent(t *testing.T) {
	cues, err := Parse([]byte("4\n00:00:01,000 --> 00:00:02,000\n\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cues) != 1 || cues[0].Content != nil {
		t.Fatalf("expected one cue without content, got %+v", cues)
	}
}

func TestParseSRTMalformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantLine int
	}{
		{
			name:     "block too short",
			input:    "1\n00:00:01,000 --> 00:00:02,000\nok\n\n2\n",
			wantErr:  ErrIncompleteBlock,
			wantLine: 5,
		},
		{
			name:     "non numeric index",
			input:    "one\n00:00:01,000 --> 00:00:02,000\nHello\n",
			wantErr:  ErrInvalidIndex,
			wantLine: 1,
		},
		{
			name:     "zero index",
			input:    "0\n00:00:01,000 --> 00:00:02,000\nHello\n",
			wantErr:  ErrInvalidIndex,
			wantLine: 1,
		},
		{
			name:     "missing arrow",
			input:    "1\n00:00:01,000 00:00:02,000\nHello\n",
			wantErr:  ErrInvalidTiming,
			wantLine: 2,
		},
		{
			name:     "bad timestamp",
			input:    "1\n00:00:01.000 --> 00:00:02,000\nHello\n",
			wantErr:  ErrInvalidTimestamp,
			wantLine: 2,
		},
		{
			name:     "end before start",
			input:    "1\n00:00:05,000 --> 00:00:02,000\nHello\n",
			wantErr:  ErrInvalidTiming,
			wantLine: 2,
		},
		{
			name:     "second block broken",
			input:    "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\nnot a timing line\nWorld\n",
			wantErr:  ErrInvalidTiming,
			wantLine: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cues, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatalf("expected error, got %d cues", len(cues))
			}
			if cues != nil {
				t.Errorf("expected no partial result, got %d cues", len(cues))
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if parseErr.Line != tt.wantLine {
				t.Errorf("expected line %d, got %d", tt.wantLine, parseErr.Line)
			}
		})
	}
}

func TestParseSRTRejectsInvalidUTF8(t *testing.T) {
	_, err := Parse([]byte("1\n00:00:01,000 --> 00:00:02,000\n\xff\xfe\xfd\n"))
	if err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestMarshalCanonicalRoundTrip(t *testing.T) {
	canonical := "1\n00:00:01,000 --> 00:00:02,000\nHello\nWorld\n\n" +
		"2\n00:00:03,500 --> 00:00:05,000\n\n" +
		"10\n01:02:03,004 --> 101:00:00,000\n  indented  \nä ö ü\n\n"

	cues, err := Parse([]byte(canonical))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got := string(MarshalAll(cues)); got != canonical {
		t.Errorf("MarshalAll() = %q, want %q", got, canonical)
	}
}

func TestMarshal(t *testing.T) {
	cue := Cue{
		Index:   1,
		Start:   time.Second,
		End:     2 * time.Second,
		Content: []string{"Hello", "World"},
	}
	want := "1\n00:00:01,000 --> 00:00:02,000\nHello\nWorld\n\n"
	if got := string(Marshal(cue)); got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
}

func TestMarshalDropsBlankContentLines(t *testing.T) {
	cues := []Cue{
		{Index: 1, Start: time.Second, End: 2 * time.Second, Content: []string{"A", "", " ", "\t", "B"}},
		{Index: 2, Start: 3 * time.Second, End: 4 * time.Second, Content: []string{"", "C"}},
	}
	want := "1\n00:00:01,000 --> 00:00:02,000\nA\nB\n\n" +
		"2\n00:00:03,000 --> 00:00:04,000\nC\n\n"

	out := MarshalAll(cues)
	if got := string(out); got != want {
		t.Fatalf("MarshalAll() = %q, want %q", got, want)
	}

	parsed, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse() of marshalled output: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(parsed))
	}
	if diff := cmp.Diff([]string{"A", "B"}, parsed[0].Content); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}
