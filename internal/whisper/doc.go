// Package whisper runs speech recognition against downloaded model weights.
//
// Model and ModelLoader abstract the inference engine. The default
// implementation, CLIModel, drives the reference openai-whisper command line
// (via uvx by default) and parses its JSON output. Transcriber layers option
// resolution on top: language hints are normalized, language-marker tokens are
// translated into token IDs for suppression, and returned segments are sorted
// by start time.
package whisper
