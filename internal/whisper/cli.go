package whisper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"scribe/internal/fileutil"
	"scribe/internal/logging"
	"scribe/internal/modelstore"
)

// Command names and fixed CLI settings.
const (
	UVXCommand     = "uvx"
	WhisperPackage = "openai-whisper"
	WhisperCommand = "whisper"
	OutputFormat   = "json"
	CPUDevice      = "cpu"
	CUDADevice     = "cuda"
)

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// CLIConfig captures runtime settings for the whisper command line.
type CLIConfig struct {
	// Command is "uvx" (runs the openai-whisper package on demand) or a
	// directly installed whisper executable.
	Command string
	// Device is "cpu" or "cuda".
	Device string
	// TempDir is the parent for per-run output directories.
	TempDir string
}

// CLILoader loads CLIModel instances.
type CLILoader struct {
	cfg           CLIConfig
	commandRunner CommandRunner
	logger        *slog.Logger
}

// NewCLILoader creates a loader with the given configuration.
func NewCLILoader(cfg CLIConfig, logger *slog.Logger) *CLILoader {
	if strings.TrimSpace(cfg.Command) == "" {
		cfg.Command = UVXCommand
	}
	if strings.TrimSpace(cfg.Device) == "" {
		cfg.Device = CPUDevice
	}
	return &CLILoader{cfg: cfg, logger: logging.NewComponentLogger(logger, "whisper")}
}

// WithCommandRunner sets a custom command runner (for testing).
func (l *CLILoader) WithCommandRunner(runner CommandRunner) *CLILoader {
	l.commandRunner = runner
	return l
}

// Load validates the weights and the runner binary and returns a ready model.
func (l *CLILoader) Load(_ context.Context, name, weightsPath string) (Model, error) {
	spec, ok := modelstore.Lookup(name)
	if !ok {
		return nil, &ModelLoadError{Model: name, Err: fmt.Errorf("%w: %q", modelstore.ErrUnknownModel, name)}
	}
	size, err := fileutil.RequireNonEmptyFile(weightsPath)
	if err != nil {
		return nil, &ModelLoadError{Model: name, Err: fmt.Errorf("weights: %w", err)}
	}
	if l.commandRunner == nil {
		if _, err := exec.LookPath(l.cfg.Command); err != nil {
			return nil, &ModelLoadError{Model: name, Err: fmt.Errorf("runner %q: %w", l.cfg.Command, err)}
		}
	}
	l.logger.Debug("model loaded",
		logging.String("model", spec.Name),
		logging.String("weights", weightsPath),
		logging.Int64("weights_bytes", size),
		logging.Bool("multilingual", spec.Multilingual()),
	)
	return &CLIModel{
		spec:          spec,
		weightsPath:   weightsPath,
		cfg:           l.cfg,
		commandRunner: l.commandRunner,
	}, nil
}

// CLIModel transcribes by invoking the whisper command line.
type CLIModel struct {
	spec          modelstore.Spec
	weightsPath   string
	cfg           CLIConfig
	commandRunner CommandRunner
}

// Name implements Model.
func (m *CLIModel) Name() string { return m.spec.Name }

// IsMultilingual implements Model.
func (m *CLIModel) IsMultilingual() bool { return m.spec.Multilingual() }

// Dims implements Model.
func (m *CLIModel) Dims() modelstore.Dims { return m.spec.Dims }

// Transcribe implements Model.
func (m *CLIModel) Transcribe(ctx context.Context, audioPath string, opts Options) (Result, error) {
	if audioPath == "" {
		return Result{}, errors.New("audio path required")
	}
	outputDir, err := os.MkdirTemp(m.cfg.TempDir, "scribe-whisper-")
	if err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outputDir)

	args := m.buildArgs(audioPath, outputDir, opts)
	if err := m.run(ctx, m.cfg.Command, args...); err != nil {
		return Result{}, fmt.Errorf("whisper: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return LoadResult(filepath.Join(outputDir, baseName+"."+OutputFormat))
}

// run executes a command, using the custom runner if set.
func (m *CLIModel) run(ctx context.Context, name string, args ...string) error {
	if m.commandRunner != nil {
		return m.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// buildArgs constructs the command arguments. The CLI expresses temperature
// fallback as a start value plus an increment that continues up to 1.0.
func (m *CLIModel) buildArgs(audioPath, outputDir string, opts Options) []string {
	args := make([]string, 0, 40)
	if filepath.Base(m.cfg.Command) == UVXCommand {
		args = append(args, "--from", WhisperPackage, WhisperCommand)
	}

	temperature, increment := temperatureArgs(opts.Temperature)
	fp16 := "False"
	if m.cfg.Device == CUDADevice {
		fp16 = "True"
	}

	args = append(args,
		audioPath,
		"--model", m.weightsPath,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--task", opts.Task,
		"--beam_size", strconv.Itoa(opts.BeamSize),
		"--best_of", strconv.Itoa(opts.BestOf),
		"--temperature", temperature,
		"--temperature_increment_on_fallback", increment,
		"--condition_on_previous_text", titleBool(opts.ConditionOnPreviousText),
		"--fp16", fp16,
		"--verbose", "False",
		"--device", m.cfg.Device,
	)
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	if len(opts.SuppressTokens) > 0 {
		ids := make([]string, len(opts.SuppressTokens))
		for i, id := range opts.SuppressTokens {
			ids[i] = strconv.Itoa(id)
		}
		args = append(args, "--suppress_tokens", strings.Join(ids, ","))
	}
	return args
}

func temperatureArgs(ladder []float64) (string, string) {
	if len(ladder) == 0 {
		return "0", "None"
	}
	start := formatFloat(ladder[0])
	if len(ladder) < 2 {
		return start, "None"
	}
	return start, formatFloat(ladder[1] - ladder[0])
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func titleBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// LoadResult parses a whisper JSON output file.
func LoadResult(jsonPath string) (Result, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return Result{}, err
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("parse whisper json: %w", err)
	}
	return result, nil
}
