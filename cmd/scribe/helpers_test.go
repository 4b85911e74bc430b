package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/config"
	"scribe/internal/testsupport"
)

type cliTestEnv struct {
	cfg            *config.Config
	baseDir        string
	configPath     string
	modelsDir      string
	transcriptsDir string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()
	t.Setenv("SCRIBE_MODELS_DIR", "")

	opts = append([]testsupport.ConfigOption{testsupport.WithTranscriptionCommand("fake-whisper")}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Transcription.Language = "ru"
	cfg.Transcription.SuppressLangTokens = true
	cfg.Transcription.BeamSize = 3
	cfg.Transcription.Temperature = []float64{0, 0.5, 1}

	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	env := &cliTestEnv{
		cfg:            cfg,
		baseDir:        base,
		configPath:     filepath.Join(base, "scribe.toml"),
		modelsDir:      cfg.Paths.ModelsDir,
		transcriptsDir: cfg.Paths.TranscriptsDir,
	}
	testsupport.WriteConfigFile(t, env.configPath, cfg)
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
