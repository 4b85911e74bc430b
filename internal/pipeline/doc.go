// Package pipeline sequences one transcription run.
//
// A run moves through fixed stages:
//
//	ValidateInput → AcquireModel → LoadModel → LoadAudio → Transcribe → WriteTranscript → Report
//
// Each stage either yields a value for the next one or stops the run with a
// *StageError. The Runner prints a stage-specific console message for the
// failure and never executes later stages. Side effects of earlier stages,
// such as downloaded weights, are left in place.
package pipeline
