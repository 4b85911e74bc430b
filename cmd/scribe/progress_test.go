package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestTranscriptionBarAbortLeavesBarIncomplete(t *testing.T) {
	var buf bytes.Buffer
	bar := &transcriptionBar{w: &buf}
	bar.Start(10)
	bar.Abort()
	if strings.Contains(buf.String(), "100%") {
		t.Fatalf("aborted bar rendered as complete: %q", buf.String())
	}
	// A second call after the bar is gone is a no-op.
	bar.Abort()
	bar.Finish()
}

func TestTranscriptionBarFinishCompletes(t *testing.T) {
	var buf bytes.Buffer
	bar := &transcriptionBar{w: &buf}
	bar.Start(10)
	bar.Finish()
	if !strings.Contains(buf.String(), "100%") {
		t.Fatalf("finished bar not rendered as complete: %q", buf.String())
	}
}

func TestNewTranscriptionProgressDisabled(t *testing.T) {
	if p := newTranscriptionProgress(false); p != nil {
		t.Fatalf("expected nil progress when disabled, got %T", p)
	}
}
