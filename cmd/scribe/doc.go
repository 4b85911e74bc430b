// Package main hosts the scribe CLI entrypoint and command graph.
//
// The root command runs one transcription: it resolves configuration, wires
// the model store, audio decoder, whisper runner and transcript writer into a
// pipeline.Runner, and prints the run report. Subcommands manage cached model
// weights, scaffold configuration, and check the host environment.
//
// Keep this package lean: behaviour belongs in the internal packages and is
// surfaced here through flags and commands.
package main
