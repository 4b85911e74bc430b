package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// FFmpegCommand is the default converter binary.
const FFmpegCommand = "ffmpeg"

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// FileDecoder decodes 16 kHz mono WAV files directly and resamples anything
// else to that format with ffmpeg.
type FileDecoder struct {
	ffmpegBinary  string
	tempDir       string
	commandRunner CommandRunner
}

// NewFileDecoder creates a decoder using the given ffmpeg binary (default "ffmpeg").
func NewFileDecoder(ffmpegBinary string) *FileDecoder {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = FFmpegCommand
	}
	return &FileDecoder{ffmpegBinary: ffmpegBinary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (d *FileDecoder) WithCommandRunner(runner CommandRunner) *FileDecoder {
	d.commandRunner = runner
	return d
}

// WithTempDir sets the parent directory for conversion scratch files.
func (d *FileDecoder) WithTempDir(dir string) *FileDecoder {
	d.tempDir = dir
	return d
}

// Decode implements Decoder.
func (d *FileDecoder) Decode(ctx context.Context, path string) (Clip, error) {
	file, err := os.Open(path)
	if err != nil {
		return Clip{}, err
	}
	defer file.Close()

	header := wav.NewDecoder(file)
	if header.IsValidFile() && int(header.SampleRate) == SampleRate && header.NumChans == 1 {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return Clip{}, err
		}
		return decodeWAV(file)
	}
	return d.convertAndDecode(ctx, path)
}

func (d *FileDecoder) convertAndDecode(ctx context.Context, source string) (Clip, error) {
	workDir, err := os.MkdirTemp(d.tempDir, "scribe-audio-")
	if err != nil {
		return Clip{}, fmt.Errorf("create conversion dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	dest := filepath.Join(workDir, "converted.wav")
	if err := d.run(ctx, d.ffmpegBinary, buildFFmpegConvertArgs(source, dest)...); err != nil {
		return Clip{}, err
	}

	converted, err := os.Open(dest)
	if err != nil {
		return Clip{}, fmt.Errorf("open converted audio: %w", err)
	}
	defer converted.Close()
	return decodeWAV(converted)
}

func (d *FileDecoder) run(ctx context.Context, name string, args ...string) error {
	if d.commandRunner != nil {
		return d.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func buildFFmpegConvertArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", fmt.Sprint(SampleRate),
		"-c:a", "pcm_s16le",
		dest,
	}
}

func decodeWAV(r io.ReadSeeker) (Clip, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return Clip{}, errors.New("invalid wav file")
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Clip{}, err
	}
	decoder = wav.NewDecoder(r)
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("decode wav: %w", err)
	}
	if buf == nil || buf.Format == nil {
		return Clip{}, errors.New("decode wav: missing format")
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(decoder.BitDepth)
	}
	return Clip{
		Samples:    downmix(buf, bitDepth),
		SampleRate: buf.Format.SampleRate,
	}, nil
}

// downmix averages interleaved channels and scales integer PCM into [-1, 1).
func downmix(buf *goaudio.IntBuffer, bitDepth int) []float32 {
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	if bitDepth < 1 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))
	frames := len(buf.Data) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum int
		for c := 0; c < channels; c++ {
			sum += buf.Data[i*channels+c]
		}
		out[i] = float32(sum) / float32(channels) / scale
	}
	return out
}
