package convert

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type zipMember struct {
	name string
	data string
}

func buildZip(t *testing.T, members ...zipMember) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, m := range members {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     m.name,
			Method:   zip.Store,
			Modified: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("create %s: %v", m.name, err)
		}
		if _, err := w.Write([]byte(m.data)); err != nil {
			t.Fatalf("write %s: %v", m.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func readZip(t *testing.T, data []byte) ([]string, map[string]string, []*zip.File) {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open output zip: %v", err)
	}
	var names []string
	contents := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		names = append(names, f.Name)
		contents[f.Name] = string(b)
	}
	return names, contents, zr.File
}

const (
	sampleSRT = "1\n00:00:01,000 --> 00:00:02,000\nHello\nWorld\n\n"
	samplePO  = "# 1\n# 00:00:01,000 --> 00:00:02,000\nmsgid \"Hello<nl>World\"\nmsgstr \"\"\n\n"
)

func TestConvertArchiveFiltersAndKeepsOrder(t *testing.T) {
	input := buildZip(t,
		zipMember{"notes.txt", "ignore me"},
		zipMember{"season1/ep2.srt", sampleSRT},
		zipMember{"season1/", ""},
		zipMember{"ep1.po", samplePO},
		zipMember{"cover.SRT", sampleSRT},
		zipMember{"README", "no extension"},
	)

	result, err := Default().ConvertFile("batch.zip", input)
	if err != nil {
		t.Fatalf("ConvertFile() error: %v", err)
	}
	if result.Name != "batch.converted.zip" {
		t.Errorf("expected batch.converted.zip, got %q", result.Name)
	}

	names, contents, files := readZip(t, result.Data)
	if diff := cmp.Diff([]string{"season1/ep2.po", "ep1.srt"}, names); diff != "" {
		t.Errorf("member names mismatch (-want +got):\n%s", diff)
	}
	if contents["season1/ep2.po"] != samplePO {
		t.Errorf("unexpected catalog member %q", contents["season1/ep2.po"])
	}
	if contents["ep1.srt"] != sampleSRT {
		t.Errorf("unexpected subtitle member %q", contents["ep1.srt"])
	}
	for _, f := range files {
		if f.Method != zip.Deflate {
			t.Errorf("member %s: expected deflate, got method %d", f.Name, f.Method)
		}
		if !f.Modified.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
			t.Errorf("member %s: modified time not preserved: %v", f.Name, f.Modified)
		}
	}
}

func TestConvertArchiveFailingMemberAbortsBatch(t *testing.T) {
	input := buildZip(t,
		zipMember{"good.srt", sampleSRT},
		zipMember{"bad.srt", "1\n00:00:05,000 --> 00:00:04,000\nbackwards\n"},
		zipMember{"later.po", samplePO},
	)

	result, err := Default().ConvertFile("batch.zip", input)
	if err == nil {
		t.Fatal("expected error for failing member")
	}
	if result.Data != nil || result.Name != "" {
		t.Errorf("expected no output, got %+v", result)
	}

	var memberErr *BatchMemberError
	if !errors.As(err, &memberErr) {
		t.Fatalf("expected BatchMemberError, got %T: %v", err, err)
	}
	if memberErr.Member != "bad.srt" {
		t.Errorf("expected bad.srt to be named, got %q", memberErr.Member)
	}
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected member error to wrap ErrMalformedInput, got %v", err)
	}
}

func TestConvertArchiveNested(t *testing.T) {
	inner := buildZip(t, zipMember{"inner.srt", sampleSRT})
	outer := buildZip(t,
		zipMember{"pack.zip", string(inner)},
		zipMember{"top.po", samplePO},
	)

	result, err := Default().ConvertFile("outer.zip", outer)
	if err != nil {
		t.Fatalf("ConvertFile() error: %v", err)
	}

	names, contents, _ := readZip(t, result.Data)
	if diff := cmp.Diff([]string{"pack.converted.zip", "top.srt"}, names); diff != "" {
		t.Fatalf("member names mismatch (-want +got):\n%s", diff)
	}

	innerNames, innerContents, _ := readZip(t, []byte(contents["pack.converted.zip"]))
	if diff := cmp.Diff([]string{"inner.po"}, innerNames); diff != "" {
		t.Errorf("nested member names mismatch (-want +got):\n%s", diff)
	}
	if innerContents["inner.po"] != samplePO {
		t.Errorf("unexpected nested catalog %q", innerContents["inner.po"])
	}
}

func TestConvertArchiveEmptyResult(t *testing.T) {
	input := buildZip(t, zipMember{"notes.txt", "nothing to do"})

	result, err := Default().ConvertFile("batch.zip", input)
	if err != nil {
		t.Fatalf("ConvertFile() error: %v", err)
	}
	names, _, _ := readZip(t, result.Data)
	if len(names) != 0 {
		t.Errorf("expected empty archive, got %v", names)
	}
}

func TestConvertArchiveDropsUnsafeNames(t *testing.T) {
	input := buildZip(t,
		zipMember{"../escape.srt", sampleSRT},
		zipMember{"/abs.srt", sampleSRT},
		zipMember{`dir\win.srt`, sampleSRT},
		zipMember{"sub/../../up.po", samplePO},
		zipMember{"ok.srt", sampleSRT},
	)

	result, err := Default().ConvertFile("batch.zip", input)
	if err != nil {
		t.Fatalf("ConvertFile() error: %v", err)
	}
	names, _, _ := readZip(t, result.Data)
	if diff := cmp.Diff([]string{"ok.po"}, names); diff != "" {
		t.Errorf("member names mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertArchiveCorrupt(t *testing.T) {
	_, err := Default().ConvertFile("broken.zip", []byte("definitely not a zip"))
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}
	var memberErr *BatchMemberError
	if errors.As(err, &memberErr) {
		t.Errorf("corrupt archive should not name a member, got %q", memberErr.Member)
	}
}
