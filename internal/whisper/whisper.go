package whisper

import (
	"context"

	"scribe/internal/modelstore"
)

// Segment is a timed span of recognized speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the output of one transcription.
type Result struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Options controls decoding.
type Options struct {
	// Task is "transcribe" or "translate".
	Task string
	// Language is a hint; empty lets the model detect it.
	Language string
	BeamSize int
	BestOf   int
	// Temperature is the fallback ladder; a single value disables fallback.
	Temperature             []float64
	ConditionOnPreviousText bool
	// SuppressLanguageTokens lists language codes whose marker tokens are suppressed.
	SuppressLanguageTokens []string
	// SuppressTokens holds resolved token IDs. Transcriber fills it from
	// SuppressLanguageTokens before calling the model.
	SuppressTokens []int
}

// DefaultOptions returns the decoding parameters used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Task:        "transcribe",
		BeamSize:    5,
		BestOf:      5,
		Temperature: []float64{0},
	}
}

// Model is a loaded speech model.
type Model interface {
	Name() string
	IsMultilingual() bool
	Dims() modelstore.Dims
	Transcribe(ctx context.Context, audioPath string, opts Options) (Result, error)
}

// ModelLoader prepares a Model from a weights file.
type ModelLoader interface {
	Load(ctx context.Context, name, weightsPath string) (Model, error)
}
