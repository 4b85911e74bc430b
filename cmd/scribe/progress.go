package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"scribe/internal/modelstore"
	"scribe/internal/pipeline"
)

// progressEnabled reports whether stderr can render interactive bars.
func progressEnabled() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newDownloadProgress(w io.Writer) modelstore.ProgressFactory {
	return func(model string, total int64) modelstore.Progress {
		return progressbar.NewOptions64(
			total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(fmt.Sprintf("downloading model %s", model)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		)
	}
}

// transcriptionBar tracks audio seconds. Inference reports no intermediate
// progress, so the bar jumps to full when the model returns.
type transcriptionBar struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newTranscriptionProgress(enabled bool) pipeline.TranscriptionProgress {
	if !enabled {
		return nil
	}
	return &transcriptionBar{w: os.Stderr}
}

func (t *transcriptionBar) Start(audioSeconds float64) {
	total := int64(math.Ceil(audioSeconds))
	if total <= 0 {
		total = -1
	}
	t.bar = progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(t.w),
		progressbar.OptionSetDescription("transcribing"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("s"),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(t.w) }),
	)
	_ = t.bar.RenderBlank()
}

// Abort stops the bar where it is, leaving it short of 100%.
func (t *transcriptionBar) Abort() {
	if t.bar == nil {
		return
	}
	_ = t.bar.Exit()
	fmt.Fprintln(t.w)
	t.bar = nil
}

func (t *transcriptionBar) Finish() {
	if t.bar == nil {
		return
	}
	_ = t.bar.Finish()
	t.bar = nil
}
