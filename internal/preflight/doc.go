// Package preflight provides readiness checks for the filesystem paths,
// external binaries, and model download source that scribe depends on.
//
// The "scribe check" command runs these checks and renders the results. The
// network check is opt-in because transcription with cached weights works
// offline.
package preflight
