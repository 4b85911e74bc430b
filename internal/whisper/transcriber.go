package whisper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"scribe/internal/language"
	"scribe/internal/logging"
)

// Transcriber resolves options and runs a Model over an audio file.
type Transcriber struct {
	logger *slog.Logger
}

// NewTranscriber constructs a Transcriber.
func NewTranscriber(logger *slog.Logger) *Transcriber {
	return &Transcriber{logger: logging.NewComponentLogger(logger, "whisper")}
}

// Transcribe runs model over audioPath. Every failure, including option
// resolution, is returned as *TranscriptionError. Segments are stably sorted
// by start time.
func (t *Transcriber) Transcribe(ctx context.Context, model Model, audioPath string, opts Options) (Result, error) {
	if model == nil {
		return Result{}, &TranscriptionError{Err: errors.New("model not loaded")}
	}
	resolved, err := t.resolveOptions(model, opts)
	if err != nil {
		return Result{}, &TranscriptionError{Err: err}
	}

	logger := logging.WithContext(ctx, t.logger)
	logger.Info("transcription started",
		logging.String("model", model.Name()),
		logging.String("audio", audioPath),
		logging.String("language", resolved.Language),
		logging.Any("suppress_tokens", resolved.SuppressTokens),
	)
	started := time.Now()

	result, err := model.Transcribe(ctx, audioPath, resolved)
	if err != nil {
		return Result{}, &TranscriptionError{Err: err}
	}

	sort.SliceStable(result.Segments, func(i, j int) bool {
		return result.Segments[i].Start < result.Segments[j].Start
	})
	if result.Language == "" {
		result.Language = resolved.Language
	}

	logger.Info("transcription finished",
		logging.Int("segments", len(result.Segments)),
		logging.String("detected_language", result.Language),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func (t *Transcriber) resolveOptions(model Model, opts Options) (Options, error) {
	defaults := DefaultOptions()
	resolved := opts
	resolved.Task = strings.ToLower(strings.TrimSpace(resolved.Task))
	if resolved.Task == "" {
		resolved.Task = defaults.Task
	}
	if resolved.Task != "transcribe" && resolved.Task != "translate" {
		return Options{}, fmt.Errorf("unsupported task %q", opts.Task)
	}
	if resolved.BeamSize <= 0 {
		resolved.BeamSize = defaults.BeamSize
	}
	if resolved.BestOf <= 0 {
		resolved.BestOf = defaults.BestOf
	}
	if len(resolved.Temperature) == 0 {
		resolved.Temperature = defaults.Temperature
	}

	lang, err := language.Normalize(opts.Language)
	if err != nil {
		return Options{}, fmt.Errorf("language hint: %w", err)
	}
	if lang != "" && lang != "en" && !model.IsMultilingual() {
		logging.WarnWithContext(t.logger, "language hint ignored by English-only model", "language_hint_ignored",
			logging.String("model", model.Name()),
			logging.String("language", lang),
			logging.String(logging.FieldImpact, "audio is decoded as English"),
			logging.String(logging.FieldErrorHint, "use a multilingual model for non-English audio"),
		)
		lang = "en"
	}
	resolved.Language = lang

	resolved.SuppressTokens = append([]int(nil), opts.SuppressTokens...)
	if len(opts.SuppressLanguageTokens) > 0 {
		tokens, err := LanguageTokens(model, opts.SuppressLanguageTokens)
		if err != nil {
			return Options{}, fmt.Errorf("suppress language tokens: %w", err)
		}
		resolved.SuppressTokens = append(resolved.SuppressTokens, tokens...)
	}
	return resolved, nil
}
