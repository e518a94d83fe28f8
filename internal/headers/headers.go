// Package headers computes response headers for sitemap file delivery:
// content type probing, length, last-modified, cache control, and the
// download-vs-inline disposition decision.
package headers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// fallbackContentType is used when probing cannot classify the file
const fallbackContentType = "application/octet-stream"

// sniffLen is how many leading bytes content sniffing reads
const sniffLen = 512

// Meta describes the file a response is being built for.
type Meta struct {
	Name        string
	Size        int64
	ModTime     time.Time
	ContentType string // optional; probed from the file when empty
}

// Options controls header computation.
type Options struct {
	// Files larger than this many bytes get an attachment disposition.
	// Negative disables forced attachment.
	DispositionThreshold int64

	// CacheMaxAge in seconds; zero or negative omits Cache-Control.
	CacheMaxAge int
}

// Build computes the full header set for a file response. It returns an
// error when the meta fails validity checks; callers must then send no
// headers and no body rather than a partial response.
func Build(meta Meta, opts Options) (http.Header, error) {
	if meta.Name == "" {
		return nil, errors.New("headers: empty file name")
	}
	if meta.Size < 0 {
		return nil, fmt.Errorf("headers: negative length %d for %q", meta.Size, meta.Name)
	}
	if meta.ModTime.IsZero() {
		return nil, fmt.Errorf("headers: zero modification time for %q", meta.Name)
	}

	ct := meta.ContentType
	if ct == "" {
		ct = fallbackContentType
	}

	h := http.Header{}
	h.Set("Content-Type", ct)
	h.Set("Content-Length", fmt.Sprintf("%d", meta.Size))
	h.Set("Last-Modified", meta.ModTime.UTC().Format(http.TimeFormat))
	h.Set("Accept-Ranges", "bytes")

	if opts.CacheMaxAge > 0 {
		h.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", opts.CacheMaxAge))
	}

	// Force a download for large files; small sitemaps render inline
	if opts.DispositionThreshold >= 0 && meta.Size > opts.DispositionThreshold {
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", meta.Name))
	}

	return h, nil
}

// ProbeContentType determines the media type of a file. It tries the
// extension mapping first, then sniffs the leading bytes, and falls back
// to a generic binary type. It never fails.
func ProbeContentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}

	f, err := os.Open(path)
	if err != nil {
		return fallbackContentType
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, sniffLen)
	n, err := f.Read(buf)
	if n <= 0 || (err != nil && n == 0) {
		return fallbackContentType
	}
	return http.DetectContentType(buf[:n])
}
