package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"scribe/internal/logging"
)

// SampleRate is the fixed rate every decoded clip is delivered at.
const SampleRate = 16000

// ErrNoSamples marks input that decodes to zero samples.
var ErrNoSamples = errors.New("no audio samples")

// Clip is a decoded mono recording.
type Clip struct {
	Samples    []float32
	SampleRate int
}

// Frames returns the number of mono sample frames.
func (c Clip) Frames() int {
	return len(c.Samples)
}

// Duration returns the clip length in seconds, or 0 when the rate is unknown.
func (c Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// Decoder turns a file into samples.
type Decoder interface {
	Decode(ctx context.Context, path string) (Clip, error)
}

// LoadError wraps any failure to obtain samples from an input file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load audio %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader loads audio through a Decoder and rejects empty results.
type Loader struct {
	decoder Decoder
	logger  *slog.Logger
}

// NewLoader constructs a Loader. A nil decoder selects the default FileDecoder.
func NewLoader(decoder Decoder, logger *slog.Logger) *Loader {
	if decoder == nil {
		decoder = NewFileDecoder("")
	}
	return &Loader{decoder: decoder, logger: logging.NewComponentLogger(logger, "audio")}
}

// Load decodes path into a Clip.
func (l *Loader) Load(ctx context.Context, path string) (Clip, error) {
	clip, err := l.decoder.Decode(ctx, path)
	if err != nil {
		return Clip{}, &LoadError{Path: path, Err: err}
	}
	if len(clip.Samples) == 0 {
		return Clip{}, &LoadError{Path: path, Err: ErrNoSamples}
	}
	if clip.SampleRate <= 0 {
		return Clip{}, &LoadError{Path: path, Err: fmt.Errorf("invalid sample rate %d", clip.SampleRate)}
	}
	logging.WithContext(ctx, l.logger).Debug("audio decoded",
		logging.String("path", path),
		logging.Int("frames", clip.Frames()),
		logging.Int("sample_rate", clip.SampleRate),
		logging.Float64("duration_seconds", clip.Duration()),
	)
	return clip, nil
}
