package modelstore

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownModel marks names absent from the registry.
	ErrUnknownModel = errors.New("unknown model")
	// ErrChecksumMismatch marks downloads whose digest differs from the registry.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// DownloadError reports a network, protocol, or integrity failure while fetching weights.
type DownloadError struct {
	Model      string
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("download %s: HTTP %d: %v", e.Model, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("download %s: HTTP %d from %s", e.Model, e.StatusCode, e.URL)
	default:
		return fmt.Sprintf("download %s: %v", e.Model, e.Err)
	}
}

func (e *DownloadError) Unwrap() error { return e.Err }

// IOError reports a local filesystem failure while storing weights.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
