package preflight

import (
	"context"

	"scribe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks and, when modelURL is non-empty, the
// model source reachability check.
func RunAll(ctx context.Context, cfg *config.Config, modelURL string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Models directory", cfg.Paths.ModelsDir),
		CheckDirectoryAccess("Transcripts directory", cfg.Paths.TranscriptsDir),
	}
	if modelURL != "" {
		results = append(results, CheckModelSource(ctx, modelURL))
	}
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
