// Package transcript renders recognized segments as plain text with periodic
// time headers.
//
// A header "[HH:MM:SS]" is emitted whenever a segment falls into a different
// fixed-width time bucket than the previous one. Segments within one bucket
// are joined on a single line, each followed by a space. Segments must arrive
// ordered by start time; the writer does not reorder them.
package transcript
