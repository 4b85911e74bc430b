package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/whisper"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{65, "00:01:05"},
		{3661, "01:01:01"},
		{59.999, "00:00:59"},
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func render(t *testing.T, interval float64, segments []whisper.Segment) (string, int) {
	t.Helper()
	var sb strings.Builder
	n, err := NewWriter(interval).Write(&sb, segments)
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	return sb.String(), n
}

func TestWriteSingleBucket(t *testing.T) {
	out, chars := render(t, 180, []whisper.Segment{
		{Start: 1, Text: " one "},
		{Start: 50, Text: "two"},
		{Start: 179, Text: "three\n"},
	})
	if want := "\n[00:00:01]\none two three "; out != want {
		t.Fatalf("unexpected output %q, want %q", out, want)
	}
	if strings.Count(out, "[") != 1 {
		t.Fatalf("expected exactly one header: %q", out)
	}
	if chars != len("one")+len("two")+len("three") {
		t.Fatalf("unexpected char count %d", chars)
	}
}

func TestWriteSpansBuckets(t *testing.T) {
	out, _ := render(t, 180, []whisper.Segment{
		{Start: 10, Text: "a"},
		{Start: 200, Text: "b"},
	})
	if want := "\n[00:00:10]\na \n[00:03:20]\nb "; out != want {
		t.Fatalf("unexpected output %q, want %q", out, want)
	}
}

func TestWriteCountsCodePoints(t *testing.T) {
	_, chars := render(t, 180, []whisper.Segment{{Start: 0, Text: " привет "}})
	if chars != 6 {
		t.Fatalf("expected 6 code points, got %d", chars)
	}
}

func TestWriteEmptySegments(t *testing.T) {
	out, chars := render(t, 180, nil)
	if out != "" || chars != 0 {
		t.Fatalf("expected empty output, got %q (%d)", out, chars)
	}
}

func TestNewWriterDefaultsInterval(t *testing.T) {
	if got := NewWriter(0).Interval(); got != DefaultInterval {
		t.Fatalf("Interval = %v, want %v", got, DefaultInterval)
	}
	out, _ := render(t, 60, []whisper.Segment{{Start: 30, Text: "a"}, {Start: 61, Text: "b"}})
	if strings.Count(out, "[") != 2 {
		t.Fatalf("expected two headers at 60s interval: %q", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportsIOError(t *testing.T) {
	_, err := NewWriter(180).Write(failingWriter{}, []whisper.Segment{{Start: 0, Text: "x"}})
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected WriteError, got %v", err)
	}
}

func TestWriteFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcripts", "talk.txt")
	chars, err := NewWriter(180).WriteFile([]whisper.Segment{{Start: 0, End: 4, Text: "test"}}, path)
	if err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if chars != 4 {
		t.Fatalf("unexpected chars: %d", chars)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\n[00:00:00]\ntest " {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestWriteFileFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewWriter(180).WriteFile(nil, filepath.Join(blocker, "out.txt"))
	var we *WriteError
	if !errors.As(err, &we) || we.Path == "" {
		t.Fatalf("expected WriteError with path, got %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("/t", "/in/audio.v2.wav"); got != "/t/audio.v2.txt" {
		t.Fatalf("OutputPath = %s", got)
	}
	if got := OutputPath("/t", "noext"); got != "/t/noext.txt" {
		t.Fatalf("OutputPath = %s", got)
	}
}
