package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeModel()
	c.normalizeTranscription()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("SCRIBE_MODELS_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.ModelsDir = value
	}
	if strings.TrimSpace(c.Paths.ModelsDir) == "" {
		c.Paths.ModelsDir = defaultModelsDir
	}
	if strings.TrimSpace(c.Paths.TranscriptsDir) == "" {
		c.Paths.TranscriptsDir = defaultTranscriptsDir
	}
	var err error
	if c.Paths.ModelsDir, err = expandPath(c.Paths.ModelsDir); err != nil {
		return fmt.Errorf("paths.models_dir: %w", err)
	}
	if c.Paths.TranscriptsDir, err = expandPath(c.Paths.TranscriptsDir); err != nil {
		return fmt.Errorf("paths.transcripts_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeModel() {
	c.Model.Name = strings.TrimSpace(c.Model.Name)
	if c.Model.Name == "" {
		c.Model.Name = defaultModelName
	}
	c.Model.DownloadBaseURL = strings.TrimRight(strings.TrimSpace(c.Model.DownloadBaseURL), "/")
	if c.Model.DownloadBaseURL == "" {
		c.Model.DownloadBaseURL = defaultDownloadBaseURL
	}
	if c.Model.DownloadTimeout <= 0 {
		c.Model.DownloadTimeout = defaultDownloadTimeout
	}
}

func (c *Config) normalizeTranscription() {
	t := &c.Transcription
	t.Language = strings.ToLower(strings.TrimSpace(t.Language))
	langs := make([]string, 0, len(t.SuppressLanguages))
	for _, lang := range t.SuppressLanguages {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang != "" {
			langs = append(langs, lang)
		}
	}
	t.SuppressLanguages = langs
	t.Task = strings.ToLower(strings.TrimSpace(t.Task))
	if t.Task == "" {
		t.Task = defaultTask
	}
	if t.BeamSize == 0 {
		t.BeamSize = defaultBeamSize
	}
	if t.BestOf == 0 {
		t.BestOf = defaultBestOf
	}
	if len(t.Temperature) == 0 {
		t.Temperature = []float64{0.0}
	}
	if t.TimestampInterval == 0 {
		t.TimestampInterval = defaultTimestampInterval
	}
	t.Command = strings.TrimSpace(t.Command)
	if t.Command == "" {
		t.Command = defaultTranscriptionCommand
	}
	t.Device = strings.ToLower(strings.TrimSpace(t.Device))
	if t.Device == "" {
		t.Device = defaultTranscriptionDevice
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		expanded, err := expandPath(c.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
