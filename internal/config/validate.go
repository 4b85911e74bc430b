package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"scribe/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateModel() error {
	if strings.TrimSpace(c.Model.Name) == "" {
		return errors.New("model.name must be set")
	}
	parsed, err := url.Parse(c.Model.DownloadBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("model.download_base_url must be an absolute URL, got %q", c.Model.DownloadBaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("model.download_base_url must use http or https, got %q", parsed.Scheme)
	}
	if c.Model.DownloadTimeout <= 0 {
		return errors.New("model.download_timeout must be positive")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	t := c.Transcription
	switch t.Task {
	case "transcribe", "translate":
	default:
		return fmt.Errorf("transcription.task must be transcribe or translate, got %q", t.Task)
	}
	if t.BeamSize < 1 {
		return errors.New("transcription.beam_size must be at least 1")
	}
	if t.BestOf < 1 {
		return errors.New("transcription.best_of must be at least 1")
	}
	if t.TimestampInterval < 1 {
		return errors.New("transcription.timestamp_interval must be at least 1")
	}
	if err := validateTemperatureLadder(t.Temperature); err != nil {
		return err
	}
	if t.SuppressLangTokens && len(t.SuppressLanguages) == 0 {
		return errors.New("transcription.suppress_languages must be set when suppress_lang_tokens is true")
	}
	if _, err := language.Normalize(t.Language); err != nil {
		return fmt.Errorf("transcription.language: %w", err)
	}
	if _, err := language.NormalizeList(t.SuppressLanguages); err != nil {
		return fmt.Errorf("transcription.suppress_languages: %w", err)
	}
	switch t.Device {
	case "cpu", "cuda":
	default:
		return fmt.Errorf("transcription.device must be cpu or cuda, got %q", t.Device)
	}
	return nil
}

// validateTemperatureLadder requires ascending, evenly spaced values in [0, 1]
// so the ladder can be expressed as a start value plus a fixed increment.
func validateTemperatureLadder(ladder []float64) error {
	if len(ladder) == 0 {
		return errors.New("transcription.temperature must contain at least one value")
	}
	for i, value := range ladder {
		if value < 0 || value > 1 {
			return fmt.Errorf("transcription.temperature[%d] must be between 0 and 1", i)
		}
	}
	if len(ladder) < 2 {
		return nil
	}
	step := ladder[1] - ladder[0]
	if step <= 0 {
		return errors.New("transcription.temperature must be strictly ascending")
	}
	const epsilon = 1e-6
	for i := 2; i < len(ladder); i++ {
		diff := ladder[i] - ladder[i-1]
		if diff <= 0 {
			return errors.New("transcription.temperature must be strictly ascending")
		}
		if diff-step > epsilon || step-diff > epsilon {
			return errors.New("transcription.temperature must be evenly spaced")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
