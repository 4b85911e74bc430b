package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"

	"scribe/internal/audio"
	"scribe/internal/logging"
	"scribe/internal/report"
	"scribe/internal/transcript"
	"scribe/internal/whisper"
)

// ModelAcquirer makes model weights available locally.
type ModelAcquirer interface {
	Ensure(ctx context.Context, name string) (string, error)
}

// AudioLoader decodes an audio file.
type AudioLoader interface {
	Load(ctx context.Context, path string) (audio.Clip, error)
}

// SpeechTranscriber runs a loaded model over an audio file.
type SpeechTranscriber interface {
	Transcribe(ctx context.Context, model whisper.Model, audioPath string, opts whisper.Options) (whisper.Result, error)
}

// TranscriptWriter persists segments.
type TranscriptWriter interface {
	WriteFile(segments []whisper.Segment, path string) (int, error)
	Interval() float64
}

// TranscriptionProgress is notified around the transcription stage. Exactly
// one of Finish or Abort follows Start.
type TranscriptionProgress interface {
	Start(audioSeconds float64)
	Finish()
	Abort()
}

// Config carries the per-invocation settings that are not part of a request.
type Config struct {
	TranscriptsDir string
	RunID          string
}

// Request describes one run.
type Request struct {
	AudioPath string
	Model     string
	Options   whisper.Options
}

// Outcome reports a successful run.
type Outcome struct {
	OutputPath string
	Result     whisper.Result
	Stats      report.Stats
}

// Runner executes the pipeline with injected collaborators.
type Runner struct {
	cfg         Config
	acquirer    ModelAcquirer
	models      whisper.ModelLoader
	audio       AudioLoader
	transcriber SpeechTranscriber
	writer      TranscriptWriter
	now         func() time.Time
	console     io.Writer
	failure     *color.Color
	progress    TranscriptionProgress
	logger      *slog.Logger
}

// Option customizes a Runner.
type Option func(*Runner)

// WithClock overrides the time source used for processing-time measurement.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithConsole sets the writer for user-facing output. Defaults to stdout.
func WithConsole(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.console = w
		}
	}
}

// WithProgress installs a transcription progress indicator.
func WithProgress(p TranscriptionProgress) Option {
	return func(r *Runner) {
		r.progress = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner constructs a Runner.
func NewRunner(cfg Config, acquirer ModelAcquirer, models whisper.ModelLoader, loader AudioLoader, transcriber SpeechTranscriber, writer TranscriptWriter, opts ...Option) *Runner {
	r := &Runner{
		cfg:         cfg,
		acquirer:    acquirer,
		models:      models,
		audio:       loader,
		transcriber: transcriber,
		writer:      writer,
		now:         time.Now,
		console:     os.Stdout,
		failure:     color.New(color.FgRed),
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "pipeline")
	return r
}

// Run executes every stage in order. The first failure is printed to the
// console and returned as a *StageError; no later stage runs.
func (r *Runner) Run(ctx context.Context, req Request) (Outcome, error) {
	outcome, err := r.run(ctx, req)
	if err != nil {
		var stageErr *StageError
		if errors.As(err, &stageErr) {
			r.fail(ctx, req, stageErr)
		}
		return Outcome{}, err
	}
	return outcome, nil
}

func (r *Runner) run(ctx context.Context, req Request) (Outcome, error) {
	inputSize, err := r.validateInput(req.AudioPath)
	if err != nil {
		return Outcome{}, err
	}

	weights, err := stage(r, ctx, StageAcquireModel, func(ctx context.Context) (string, error) {
		return r.acquirer.Ensure(ctx, req.Model)
	})
	if err != nil {
		return Outcome{}, err
	}

	model, err := stage(r, ctx, StageLoadModel, func(ctx context.Context) (whisper.Model, error) {
		return r.models.Load(ctx, req.Model, weights)
	})
	if err != nil {
		return Outcome{}, err
	}

	clip, err := stage(r, ctx, StageLoadAudio, func(ctx context.Context) (audio.Clip, error) {
		return r.audio.Load(ctx, req.AudioPath)
	})
	if err != nil {
		return Outcome{}, err
	}
	duration := clip.Duration()
	fmt.Fprintln(r.console, report.StartMessage(req.AudioPath, duration))

	started := r.now()
	result, err := stage(r, ctx, StageTranscribe, func(ctx context.Context) (whisper.Result, error) {
		if r.progress == nil {
			return r.transcriber.Transcribe(ctx, model, req.AudioPath, req.Options)
		}
		r.progress.Start(duration)
		result, err := r.transcriber.Transcribe(ctx, model, req.AudioPath, req.Options)
		if err != nil {
			r.progress.Abort()
			return result, err
		}
		r.progress.Finish()
		return result, nil
	})
	if err != nil {
		return Outcome{}, err
	}
	elapsed := r.now().Sub(started)

	fmt.Fprintln(r.console, report.SavingMessage(int(r.writer.Interval())))
	outputPath := transcript.OutputPath(r.cfg.TranscriptsDir, req.AudioPath)
	chars, err := stage(r, ctx, StageWriteTranscript, func(context.Context) (int, error) {
		return r.writer.WriteFile(result.Segments, outputPath)
	})
	if err != nil {
		return Outcome{}, err
	}

	var outputSize int64
	if info, statErr := os.Stat(outputPath); statErr == nil {
		outputSize = info.Size()
	}
	stats := report.Compute(report.Input{
		AudioPath:       req.AudioPath,
		AudioDuration:   duration,
		Frames:          clip.Frames(),
		InputSizeBytes:  inputSize,
		OutputPath:      outputPath,
		OutputChars:     chars,
		OutputSizeBytes: outputSize,
		ProcessingTime:  elapsed,
		Model:           model.Name(),
		ModelParams:     model.Dims().String(),
		Language:        result.Language,
		RunID:           r.cfg.RunID,
	})
	if stats.Clamped {
		r.logger.Debug("processing time clamped",
			logging.Duration("measured", elapsed),
			logging.Duration("clamped_to", report.MinProcessingTime),
		)
	}
	fmt.Fprint(r.console, report.Summarize(stats))

	r.logger.Info("run complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("output", outputPath),
		logging.Int("chars", chars),
		logging.Duration("processing_time", stats.ProcessingTime),
	)
	return Outcome{OutputPath: outputPath, Result: result, Stats: stats}, nil
}

func (r *Runner) validateInput(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, &StageError{Stage: StageValidateInput, Err: err}
	}
	if !info.Mode().IsRegular() {
		return 0, &StageError{Stage: StageValidateInput, Err: fmt.Errorf("%s is not a regular file", path)}
	}
	return info.Size(), nil
}

// stage runs fn with the stage recorded in ctx and wraps any failure.
func stage[T any](r *Runner, ctx context.Context, name Stage, fn func(context.Context) (T, error)) (T, error) {
	ctx = logging.WithStage(ctx, string(name))
	logger := logging.WithContext(ctx, r.logger)
	logger.Debug("stage started")
	started := time.Now()
	value, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, &StageError{Stage: name, Err: err}
	}
	logger.Debug("stage finished", logging.Duration("elapsed", time.Since(started)))
	return value, nil
}

func (r *Runner) fail(ctx context.Context, req Request, err *StageError) {
	r.failure.Fprintln(r.console, Message(req, err))
	logger := logging.WithContext(logging.WithStage(ctx, string(err.Stage)), r.logger)
	logging.ErrorWithContext(logger, "run failed", "stage_failed",
		logging.Error(err.Err),
		logging.String("audio", req.AudioPath),
		logging.String("model", req.Model),
		logging.String(logging.FieldErrorHint, failureHint(err.Stage)),
	)
}

func failureHint(stage Stage) string {
	switch stage {
	case StageValidateInput:
		return "check the audio path"
	case StageAcquireModel:
		return "check network access and the models directory"
	case StageLoadModel:
		return "delete the cached model file and retry"
	case StageLoadAudio:
		return "run scribe check to verify ffmpeg"
	case StageWriteTranscript:
		return "check permissions on the transcripts directory"
	default:
		return "check logs for details"
	}
}

// Message renders the console line for a stage failure.
func Message(req Request, err *StageError) string {
	switch err.Stage {
	case StageValidateInput:
		return fmt.Sprintf("Ошибка: файл не найден: %s", req.AudioPath)
	case StageAcquireModel, StageLoadModel:
		return fmt.Sprintf("Ошибка загрузки модели '%s': %v", req.Model, err.Err)
	case StageLoadAudio:
		return fmt.Sprintf("Ошибка загрузки аудио: %v", err.Err)
	case StageTranscribe:
		return fmt.Sprintf("Ошибка при транскрипции: %v", err.Err)
	case StageWriteTranscript:
		return fmt.Sprintf("Ошибка записи результата: %v", err.Err)
	default:
		return fmt.Sprintf("Ошибка: %v", err.Err)
	}
}
