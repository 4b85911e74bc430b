package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/pipeline"
)

func TestRootMissingAudioExitsCleanly(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "absent.wav")

	out, _, err := runCLI(t, []string{"--audio", missing}, env.configPath)
	if err != nil {
		t.Fatalf("expected nil error without --strict-exit, got %v", err)
	}
	requireContains(t, out, "Ошибка: файл не найден: "+missing)
	if _, statErr := os.Stat(env.transcriptsDir); !os.IsNotExist(statErr) {
		t.Fatalf("transcripts dir created for a missing input: %v", statErr)
	}
}

func TestRootStrictExitCodes(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "absent.wav")

	_, _, err := runCLI(t, []string{"--audio", missing, "--strict-exit"}, env.configPath)
	var exitErr *exitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exitError, got %v", err)
	}
	if exitErr.code != pipeline.ExitInputNotFound {
		t.Fatalf("exit code = %d, want %d", exitErr.code, pipeline.ExitInputNotFound)
	}
}

func TestRootUnknownModelFailsAcquisition(t *testing.T) {
	env := setupCLITestEnv(t)
	audioPath := filepath.Join(env.baseDir, "talk.wav")
	if err := os.WriteFile(audioPath, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	out, _, err := runCLI(t, []string{"--audio", audioPath, "--model", "gigantic", "--strict-exit"}, env.configPath)
	var exitErr *exitError
	if !errors.As(err, &exitErr) || exitErr.code != pipeline.ExitModelAcquisition {
		t.Fatalf("expected acquisition exit code, got %v", err)
	}
	requireContains(t, out, "Ошибка загрузки модели 'gigantic'")
}

func TestBuildRequestMergesFlagsOverConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Model.Name = "base"
	cfg.Transcription.Language = "ru"
	cfg.Transcription.SuppressLangTokens = true
	cfg.Transcription.SuppressLanguages = []string{"ru", "en"}
	cfg.Transcription.Temperature = []float64{0, 0.5, 1}

	tests := []struct {
		name         string
		args         []string
		wantModel    string
		wantLanguage string
		wantSuppress []string
		wantAudio    string
	}{
		{
			name:         "config values",
			wantModel:    "base",
			wantLanguage: "ru",
			wantSuppress: []string{"ru", "en"},
			wantAudio:    defaultAudioPath,
		},
		{
			name:         "flags override",
			args:         []string{"--model", "small", "--language", "", "--suppress-lang-tokens=false", "--audio", "x.mp3"},
			wantModel:    "small",
			wantLanguage: "",
			wantSuppress: nil,
			wantAudio:    "x.mp3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags runFlags
			cmd := &cobra.Command{Use: "test"}
			registerRunFlags(cmd, &flags)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}
			req := buildRequest(cmd, &cfg, flags)
			if req.Model != tt.wantModel {
				t.Fatalf("model = %q, want %q", req.Model, tt.wantModel)
			}
			if req.Options.Language != tt.wantLanguage {
				t.Fatalf("language = %q, want %q", req.Options.Language, tt.wantLanguage)
			}
			if !reflect.DeepEqual(req.Options.SuppressLanguageTokens, tt.wantSuppress) {
				t.Fatalf("suppress = %v, want %v", req.Options.SuppressLanguageTokens, tt.wantSuppress)
			}
			if req.AudioPath != tt.wantAudio {
				t.Fatalf("audio = %q, want %q", req.AudioPath, tt.wantAudio)
			}
			if !reflect.DeepEqual(req.Options.Temperature, []float64{0, 0.5, 1}) {
				t.Fatalf("temperature = %v", req.Options.Temperature)
			}
		})
	}
}
