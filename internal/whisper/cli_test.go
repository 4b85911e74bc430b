package whisper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"scribe/internal/modelstore"
)

func writeWeights(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiny.pt")
	if err := os.WriteFile(path, []byte("weights"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func argValue(args []string, flag string) (string, bool) {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func TestCLILoaderValidatesInputs(t *testing.T) {
	weights := writeWeights(t)
	empty := filepath.Join(t.TempDir(), "empty.pt")
	_ = os.WriteFile(empty, nil, 0o644)
	noop := func(context.Context, string, ...string) error { return nil }

	tests := []struct {
		name    string
		model   string
		weights string
		loader  *CLILoader
	}{
		{"unknown model", "gigantic", weights, NewCLILoader(CLIConfig{}, nil).WithCommandRunner(noop)},
		{"missing weights", "tiny", filepath.Join(t.TempDir(), "none.pt"), NewCLILoader(CLIConfig{}, nil).WithCommandRunner(noop)},
		{"empty weights", "tiny", empty, NewCLILoader(CLIConfig{}, nil).WithCommandRunner(noop)},
		{"missing runner", "tiny", weights, NewCLILoader(CLIConfig{Command: "definitely-not-a-whisper-binary"}, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.loader.Load(context.Background(), tt.model, tt.weights)
			var loadErr *ModelLoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected ModelLoadError, got %v", err)
			}
		})
	}
}

func TestCLIModelTranscribe(t *testing.T) {
	weights := writeWeights(t)
	var gotName string
	var gotArgs []string
	runner := func(_ context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		outDir, _ := argValue(args, "--output_dir")
		payload := `{"text":" привет мир","language":"ru","segments":[` +
			`{"id":1,"start":5.0,"end":7.5,"text":" мир"},` +
			`{"id":0,"start":0.0,"end":5.0,"text":" привет","tokens":[1,2]}]}`
		return os.WriteFile(filepath.Join(outDir, "lecture.json"), []byte(payload), 0o644)
	}

	loader := NewCLILoader(CLIConfig{TempDir: t.TempDir()}, nil).WithCommandRunner(runner)
	model, err := loader.Load(context.Background(), "tiny", weights)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !model.IsMultilingual() || model.Name() != "tiny" || model.Dims().NVocab != 51865 {
		t.Fatalf("unexpected model metadata: %s %v %+v", model.Name(), model.IsMultilingual(), model.Dims())
	}

	opts := DefaultOptions()
	opts.Language = "ru"
	opts.Temperature = []float64{0, 0.2, 0.4}
	opts.SuppressTokens = []int{50263, 50259}
	result, err := model.Transcribe(context.Background(), "/data/lecture.m4a", opts)
	if err != nil {
		t.Fatalf("Transcribe error: %v", err)
	}

	if gotName != UVXCommand {
		t.Fatalf("unexpected command: %s", gotName)
	}
	if !slices.Equal(gotArgs[:4], []string{"--from", WhisperPackage, WhisperCommand, "/data/lecture.m4a"}) {
		t.Fatalf("unexpected uvx prefix: %v", gotArgs[:4])
	}
	expect := map[string]string{
		"--model":                             weights,
		"--output_format":                     "json",
		"--task":                              "transcribe",
		"--beam_size":                         "5",
		"--best_of":                           "5",
		"--temperature":                       "0",
		"--temperature_increment_on_fallback": "0.2",
		"--condition_on_previous_text":        "False",
		"--fp16":                              "False",
		"--device":                            "cpu",
		"--language":                          "ru",
		"--suppress_tokens":                   "50263,50259",
	}
	for flag, want := range expect {
		if got, ok := argValue(gotArgs, flag); !ok || got != want {
			t.Errorf("%s = %q (present=%v), want %q", flag, got, ok, want)
		}
	}

	if result.Language != "ru" || len(result.Segments) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if strings.TrimSpace(result.Segments[1].Text) != "привет" {
		t.Fatalf("unexpected segment text: %q", result.Segments[1].Text)
	}
}

func TestCLIModelDirectBinaryOmitsUVXPrefix(t *testing.T) {
	model := &CLIModel{
		spec:        mustSpec(t, "base.en"),
		weightsPath: "/m/base.en.pt",
		cfg:         CLIConfig{Command: "/usr/local/bin/whisper", Device: CUDADevice},
	}
	args := model.buildArgs("a.wav", "/out", Options{Task: "translate", BeamSize: 1, BestOf: 1, Temperature: []float64{0.5}})
	if args[0] != "a.wav" {
		t.Fatalf("expected audio path first, got %v", args[:2])
	}
	if v, _ := argValue(args, "--temperature_increment_on_fallback"); v != "None" {
		t.Fatalf("expected fallback disabled, got %q", v)
	}
	if v, _ := argValue(args, "--fp16"); v != "True" {
		t.Fatalf("expected fp16 on cuda, got %q", v)
	}
	if _, ok := argValue(args, "--language"); ok {
		t.Fatal("expected no language flag for auto-detection")
	}
	if _, ok := argValue(args, "--suppress_tokens"); ok {
		t.Fatal("expected default suppression when no tokens resolved")
	}
}

func TestCLIModelRunnerFailure(t *testing.T) {
	boom := errors.New("exit status 1")
	loader := NewCLILoader(CLIConfig{TempDir: t.TempDir()}, nil).WithCommandRunner(func(context.Context, string, ...string) error { return boom })
	model, err := loader.Load(context.Background(), "tiny", writeWeights(t))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if _, err := model.Transcribe(context.Background(), "a.wav", DefaultOptions()); !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
}

func TestLoadResultRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	_ = os.WriteFile(path, []byte("{not json"), 0o644)
	if _, err := LoadResult(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func mustSpec(t *testing.T, name string) modelstore.Spec {
	t.Helper()
	spec, ok := modelstore.Lookup(name)
	if !ok {
		t.Fatalf("unknown model %s", name)
	}
	return spec
}
