package pipeline

import (
	"errors"
	"fmt"
)

// Stage identifies a pipeline step.
type Stage string

const (
	StageValidateInput   Stage = "validate_input"
	StageAcquireModel    Stage = "acquire_model"
	StageLoadModel       Stage = "load_model"
	StageLoadAudio       Stage = "load_audio"
	StageTranscribe      Stage = "transcribe"
	StageWriteTranscript Stage = "write_transcript"
)

// Sentinel kinds matched with errors.Is against a *StageError.
var (
	ErrInputNotFound    = errors.New("input not found")
	ErrModelAcquisition = errors.New("model acquisition failed")
	ErrModelLoad        = errors.New("model load failed")
	ErrAudioLoad        = errors.New("audio load failed")
	ErrTranscription    = errors.New("transcription failed")
	ErrOutputWrite      = errors.New("output write failed")
)

var stageKinds = map[Stage]error{
	StageValidateInput:   ErrInputNotFound,
	StageAcquireModel:    ErrModelAcquisition,
	StageLoadModel:       ErrModelLoad,
	StageLoadAudio:       ErrAudioLoad,
	StageTranscribe:      ErrTranscription,
	StageWriteTranscript: ErrOutputWrite,
}

// StageError reports the stage that stopped a run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap exposes both the stage's sentinel kind and the underlying cause.
func (e *StageError) Unwrap() []error {
	kind, ok := stageKinds[e.Stage]
	if !ok {
		return []error{e.Err}
	}
	return []error{kind, e.Err}
}

// Exit codes returned by ExitCode. Zero means success or non-strict mode.
const (
	ExitOK               = 0
	ExitUnknown          = 1
	ExitInputNotFound    = 2
	ExitModelAcquisition = 3
	ExitModelLoad        = 4
	ExitAudioLoad        = 5
	ExitTranscription    = 6
	ExitOutputWrite      = 7
)

// ExitCode maps a run error to a process exit status. Stage failures map to
// 2 through 7 in stage order; anything else maps to 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInputNotFound):
		return ExitInputNotFound
	case errors.Is(err, ErrModelAcquisition):
		return ExitModelAcquisition
	case errors.Is(err, ErrModelLoad):
		return ExitModelLoad
	case errors.Is(err, ErrAudioLoad):
		return ExitAudioLoad
	case errors.Is(err, ErrTranscription):
		return ExitTranscription
	case errors.Is(err, ErrOutputWrite):
		return ExitOutputWrite
	default:
		return ExitUnknown
	}
}
