package modelstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"

	"scribe/internal/fileutil"
	"scribe/internal/logging"
)

const (
	// DefaultBaseURL is the public model registry host.
	DefaultBaseURL = "https://openaipublic.azureedge.net/main/whisper/models"

	chunkSize      = 8 * 1024
	partialSuffix  = ".partial"
	lockSuffix     = ".lock"
	lockRetryDelay = 250 * time.Millisecond
)

// HTTPDoer is the subset of *http.Client used for downloads.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Progress receives byte counts as a download advances.
type Progress interface {
	Add64(n int64) error
	Finish() error
}

// ProgressFactory creates a progress indicator for one download. total is -1
// when the size is unknown.
type ProgressFactory func(model string, total int64) Progress

// Acquirer ensures model weights are present in a local directory.
type Acquirer struct {
	dir      string
	baseURL  string
	client   HTTPDoer
	verify   bool
	progress ProgressFactory
	logger   *slog.Logger
}

// Option configures an Acquirer.
type Option func(*Acquirer)

// WithBaseURL overrides the registry host.
func WithBaseURL(baseURL string) Option {
	return func(a *Acquirer) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			a.baseURL = strings.TrimRight(trimmed, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for downloads.
func WithHTTPClient(client HTTPDoer) Option {
	return func(a *Acquirer) {
		if client != nil {
			a.client = client
		}
	}
}

// WithChecksum toggles SHA256 verification of completed downloads.
func WithChecksum(verify bool) Option {
	return func(a *Acquirer) { a.verify = verify }
}

// WithProgress installs a progress indicator factory.
func WithProgress(factory ProgressFactory) Option {
	return func(a *Acquirer) { a.progress = factory }
}

// WithLogger sets the logger for download events.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Acquirer) { a.logger = logger }
}

// New constructs an Acquirer storing weights under dir.
func New(dir string, opts ...Option) *Acquirer {
	a := &Acquirer{
		dir:     dir,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Minute},
		verify:  true,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logging.NewComponentLogger(a.logger, "modelstore")
	return a
}

// Dir returns the weights directory.
func (a *Acquirer) Dir() string {
	return a.dir
}

// Path returns where the weights for name live, whether or not they exist.
// Aliases resolve to their canonical file name.
func (a *Acquirer) Path(name string) string {
	if spec, ok := Lookup(name); ok {
		return filepath.Join(a.dir, spec.FileName())
	}
	return filepath.Join(a.dir, strings.TrimSpace(name)+".pt")
}

// URL returns the download URL for a registry model.
func (a *Acquirer) URL(name string) (string, error) {
	spec, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return spec.URL(a.baseURL), nil
}

// Cached reports whether the weights for name are already on disk.
func (a *Acquirer) Cached(name string) bool {
	info, err := os.Stat(a.Path(name))
	return err == nil && info.Mode().IsRegular()
}

// Ensure returns the local weights path for name, downloading the file when it
// is absent. A present file short-circuits without any network traffic.
func (a *Acquirer) Ensure(ctx context.Context, name string) (string, error) {
	final := a.Path(name)
	if a.Cached(name) {
		a.logger.Debug("model weights cached", logging.String("model", name), logging.String("path", final))
		return final, nil
	}

	spec, ok := Lookup(name)
	if !ok {
		return "", &DownloadError{Model: name, Err: fmt.Errorf("%w: %q", ErrUnknownModel, name)}
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", &IOError{Op: "create directory", Path: a.dir, Err: err}
	}

	lock := flock.New(final + lockSuffix)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", &IOError{Op: "lock", Path: lock.Path(), Err: err}
	}
	if !locked {
		return "", &IOError{Op: "lock", Path: lock.Path(), Err: errors.New("lock not acquired")}
	}
	defer func() {
		_ = lock.Unlock()
	}()

	// Another process may have finished the download while we waited.
	if a.Cached(name) {
		return final, nil
	}

	if err := a.download(ctx, spec, final); err != nil {
		return "", err
	}
	return final, nil
}

func (a *Acquirer) download(ctx context.Context, spec Spec, final string) error {
	url := spec.URL(a.baseURL)
	partial := final + partialSuffix

	var offset int64
	if info, err := os.Stat(partial); err == nil && info.Mode().IsRegular() {
		offset = info.Size()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &DownloadError{Model: spec.Name, URL: url, Err: err}
	}
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	a.logger.Info("downloading model weights",
		logging.String("model", spec.Name),
		logging.String("url", url),
		logging.Int64("resume_offset", offset),
	)

	resp, err := a.client.Do(req)
	if err != nil {
		return &DownloadError{Model: spec.Name, URL: url, Err: err}
	}
	defer resp.Body.Close()

	var (
		flags = os.O_CREATE | os.O_WRONLY
		total = int64(-1)
	)
	switch {
	case resp.StatusCode == http.StatusPartialContent && offset > 0:
		if start := contentRangeStart(resp.Header.Get("Content-Range")); start != offset {
			logging.WarnWithContext(a.logger, "partial response does not continue the download; restarting", "model_download_restart",
				logging.String("model", spec.Name),
				logging.Int64("expected_start", offset),
				logging.Int64("range_start", start),
				logging.String(logging.FieldImpact, "previously downloaded bytes are discarded"),
			)
			resp.Body.Close()
			if err := os.Remove(partial); err != nil && !os.IsNotExist(err) {
				return &IOError{Op: "remove", Path: partial, Err: err}
			}
			return a.download(ctx, spec, final)
		}
		flags |= os.O_APPEND
		total = contentRangeTotal(resp.Header.Get("Content-Range"))
		if total < 0 && resp.ContentLength >= 0 {
			total = offset + resp.ContentLength
		}
	case resp.StatusCode == http.StatusRequestedRangeNotSatisfiable && offset > 0:
		// The partial file already holds every byte.
		a.logger.Info("partial download already complete", logging.String("model", spec.Name))
		return a.finalize(spec, url, partial, final)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if offset > 0 {
			logging.WarnWithContext(a.logger, "server ignored range request; restarting download", "model_download_restart",
				logging.String("model", spec.Name),
				logging.Int("status", resp.StatusCode),
				logging.String(logging.FieldImpact, "previously downloaded bytes are discarded"),
			)
		}
		flags |= os.O_TRUNC
		offset = 0
		total = resp.ContentLength
	default:
		return &DownloadError{Model: spec.Name, URL: url, StatusCode: resp.StatusCode}
	}

	file, err := os.OpenFile(partial, flags, 0o644)
	if err != nil {
		return &IOError{Op: "open", Path: partial, Err: err}
	}

	progress := a.newProgress(spec.Name, total)
	if offset > 0 {
		_ = progress.Add64(offset)
	}

	written, copyErr := a.copyChunks(file, resp.Body, progress, spec.Name, partial, offset, total)
	closeErr := file.Close()
	if copyErr != nil {
		return copyErr
	}
	if closeErr != nil {
		return &IOError{Op: "close", Path: partial, Err: closeErr}
	}
	_ = progress.Finish()

	a.logger.Info("model weights downloaded",
		logging.String("model", spec.Name),
		logging.String("size", humanize.IBytes(uint64(offset+written))),
	)
	return a.finalize(spec, url, partial, final)
}

func (a *Acquirer) copyChunks(dst io.Writer, src io.Reader, progress Progress, model, path string, offset, total int64) (int64, error) {
	sampler := logging.NewProgressSampler(10)
	buf := make([]byte, chunkSize)
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return written, &IOError{Op: "write", Path: path, Err: err}
			}
			written += int64(n)
			_ = progress.Add64(int64(n))
			if total > 0 {
				percent := float64(offset+written) / float64(total) * 100
				if sampler.ShouldLog(percent, "download") {
					a.logger.Debug("download progress",
						logging.String("model", model),
						logging.Float64("percent", percent),
						logging.String("received", humanize.IBytes(uint64(offset+written))),
					)
				}
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, &DownloadError{Model: model, Err: readErr}
		}
	}
}

func (a *Acquirer) finalize(spec Spec, url, partial, final string) error {
	if a.verify {
		sum, err := fileutil.HashFile(partial)
		if err != nil {
			return &IOError{Op: "hash", Path: partial, Err: err}
		}
		if sum != spec.SHA256 {
			_ = os.Remove(partial)
			return &DownloadError{
				Model: spec.Name,
				URL:   url,
				Err:   fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, sum, spec.SHA256),
			}
		}
	}
	if err := os.Rename(partial, final); err != nil {
		return &IOError{Op: "rename", Path: final, Err: err}
	}
	return nil
}

func (a *Acquirer) newProgress(model string, total int64) Progress {
	if a.progress == nil {
		return nopProgress{}
	}
	if p := a.progress(model, total); p != nil {
		return p
	}
	return nopProgress{}
}

// contentRangeTotal extracts the complete length from "bytes a-b/total".
func contentRangeTotal(header string) int64 {
	idx := strings.LastIndexByte(header, '/')
	if idx < 0 || idx == len(header)-1 {
		return -1
	}
	total, err := strconv.ParseInt(strings.TrimSpace(header[idx+1:]), 10, 64)
	if err != nil {
		return -1
	}
	return total
}

// contentRangeStart extracts the first byte position from "bytes a-b/total",
// or -1 when the header is malformed.
func contentRangeStart(header string) int64 {
	rest, ok := strings.CutPrefix(strings.TrimSpace(header), "bytes ")
	if !ok {
		return -1
	}
	first, _, ok := strings.Cut(rest, "-")
	if !ok {
		return -1
	}
	start, err := strconv.ParseInt(strings.TrimSpace(first), 10, 64)
	if err != nil {
		return -1
	}
	return start
}

type nopProgress struct{}

func (nopProgress) Add64(int64) error { return nil }

func (nopProgress) Finish() error { return nil }
