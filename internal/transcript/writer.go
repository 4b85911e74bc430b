package transcript

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"scribe/internal/fileutil"
	"scribe/internal/whisper"
)

// DefaultInterval is the header bucket width in seconds.
const DefaultInterval = 180

// WriteError wraps an I/O failure while producing a transcript.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("write transcript: %v", e.Err)
	}
	return fmt.Sprintf("write transcript %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Writer renders segments using a fixed bucket interval.
type Writer struct {
	interval float64
}

// NewWriter creates a Writer. Non-positive intervals fall back to DefaultInterval.
func NewWriter(intervalSeconds float64) *Writer {
	if intervalSeconds <= 0 || math.IsNaN(intervalSeconds) {
		intervalSeconds = DefaultInterval
	}
	return &Writer{interval: intervalSeconds}
}

// Interval returns the bucket width in seconds.
func (w *Writer) Interval() float64 {
	return w.interval
}

// Write renders segments to out and returns the number of characters of
// trimmed segment text written.
func (w *Writer) Write(out io.Writer, segments []whisper.Segment) (int, error) {
	chars := 0
	lastBucket := int64(-1)
	for _, seg := range segments {
		bucket := int64(math.Floor(seg.Start / w.interval))
		if bucket != lastBucket {
			if _, err := io.WriteString(out, "\n["+FormatTimestamp(seg.Start)+"]\n"); err != nil {
				return chars, &WriteError{Err: err}
			}
			lastBucket = bucket
		}
		text := strings.TrimSpace(seg.Text)
		if _, err := io.WriteString(out, text+" "); err != nil {
			return chars, &WriteError{Err: err}
		}
		chars += utf8.RuneCountInString(text)
	}
	return chars, nil
}

// WriteFile writes segments to path, creating its directory on demand. The
// file is replaced atomically, so an interrupted run never leaves a partial
// transcript behind.
func (w *Writer) WriteFile(segments []whisper.Segment, path string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, &WriteError{Path: path, Err: err}
	}
	var chars int
	err := fileutil.WriteAtomic(path, 0o644, func(out io.Writer) error {
		n, err := w.Write(out, segments)
		chars = n
		return err
	})
	if err != nil {
		return 0, &WriteError{Path: path, Err: unwrapWriteError(err)}
	}
	return chars, nil
}

// OutputPath returns <dir>/<audio basename without extension>.txt.
func OutputPath(dir, audioPath string) string {
	base := filepath.Base(audioPath)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".txt")
}

func unwrapWriteError(err error) error {
	if we, ok := err.(*WriteError); ok {
		return we.Err
	}
	return err
}
