package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/audio"
	"scribe/internal/config"
	"scribe/internal/deps"
	"scribe/internal/logging"
	"scribe/internal/modelstore"
	"scribe/internal/pipeline"
	"scribe/internal/transcript"
	"scribe/internal/whisper"
)

const defaultAudioPath = "audio/audio.wav"

func runTranscription(cmd *cobra.Command, ctx *commandContext, flags runFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	req := buildRequest(cmd, cfg, flags)
	logger.Debug("run configured",
		logging.String("audio", req.AudioPath),
		logging.String("model", req.Model),
		logging.String("language", req.Options.Language),
		logging.Bool("suppress_lang_tokens", len(req.Options.SuppressLanguageTokens) > 0),
	)

	runner := pipeline.NewRunner(
		pipeline.Config{TranscriptsDir: cfg.Paths.TranscriptsDir, RunID: ctx.runID},
		newAcquirer(cfg, logger, progressEnabled()),
		whisper.NewCLILoader(whisper.CLIConfig{
			Command: cfg.Transcription.Command,
			Device:  cfg.Transcription.Device,
		}, logger),
		audio.NewLoader(audio.NewFileDecoder(deps.FFmpegCommand), logger),
		whisper.NewTranscriber(logger),
		transcript.NewWriter(float64(cfg.Transcription.TimestampInterval)),
		pipeline.WithConsole(cmd.OutOrStdout()),
		pipeline.WithProgress(newTranscriptionProgress(progressEnabled())),
		pipeline.WithLogger(logger),
	)

	_, err = runner.Run(cmd.Context(), req)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if flags.strictExit {
		return &exitError{code: pipeline.ExitCode(err), err: err}
	}
	// The failure has already been printed; the default contract exits 0.
	return nil
}

// buildRequest merges explicitly set flags over configuration values.
func buildRequest(cmd *cobra.Command, cfg *config.Config, flags runFlags) pipeline.Request {
	t := cfg.Transcription
	model := cfg.Model.Name
	if cmd.Flags().Changed("model") {
		model = flags.model
	}
	language := t.Language
	if cmd.Flags().Changed("language") {
		language = flags.language
	}
	suppress := t.SuppressLangTokens
	if cmd.Flags().Changed("suppress-lang-tokens") {
		suppress = flags.suppressLangTokens
	}

	opts := whisper.Options{
		Task:                    t.Task,
		Language:                language,
		BeamSize:                t.BeamSize,
		BestOf:                  t.BestOf,
		Temperature:             append([]float64(nil), t.Temperature...),
		ConditionOnPreviousText: t.ConditionOnPreviousText,
	}
	if suppress {
		opts.SuppressLanguageTokens = append([]string(nil), t.SuppressLanguages...)
	}
	return pipeline.Request{AudioPath: flags.audio, Model: model, Options: opts}
}

func newAcquirer(cfg *config.Config, logger *slog.Logger, showProgress bool) *modelstore.Acquirer {
	opts := []modelstore.Option{
		modelstore.WithBaseURL(cfg.Model.DownloadBaseURL),
		modelstore.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Model.DownloadTimeout) * time.Second}),
		modelstore.WithChecksum(cfg.Model.VerifyChecksum),
		modelstore.WithLogger(logger),
	}
	if showProgress {
		opts = append(opts, modelstore.WithProgress(newDownloadProgress(os.Stderr)))
	}
	return modelstore.New(cfg.Paths.ModelsDir, opts...)
}

func modelNotFound(name string) error {
	return fmt.Errorf("%w: %s (available: see `scribe models list`)", modelstore.ErrUnknownModel, name)
}
