package server

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"

	"golang.org/x/time/rate"
)

func TestCountingWriterRecordsStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &countingWriter{ResponseWriter: rec}

	if cw.Status() != http.StatusOK {
		t.Errorf("default status = %d, want 200", cw.Status())
	}

	cw.WriteHeader(http.StatusPartialContent)
	_, _ = cw.Write([]byte("hello"))

	if cw.Status() != http.StatusPartialContent {
		t.Errorf("status = %d, want 206", cw.Status())
	}
	if cw.BytesWritten() != 5 {
		t.Errorf("bytes = %d, want 5", cw.BytesWritten())
	}
	if cw.Aborted() {
		t.Error("Aborted() = true without a write error")
	}
}

func TestCountingWriterImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &countingWriter{ResponseWriter: rec}

	_, _ = cw.Write([]byte("x"))
	if cw.Status() != http.StatusOK {
		t.Errorf("status = %d, want 200 after bare Write", cw.Status())
	}
}

// A single Write call must survive being larger than the limiter burst;
// ServeContent copies in 32KB chunks while low rates get a 4KB burst.
func TestCountingWriterLimitedWriteLargerThanBurst(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &countingWriter{
		ResponseWriter: rec,
		limiter:        rate.NewLimiter(rate.Limit(4<<20), 4096),
	}

	body := bytes.Repeat([]byte("x"), 32*1024)
	n, err := cw.Write(body)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != len(body) {
		t.Errorf("Write() = %d, want %d", n, len(body))
	}
	if cw.BytesWritten() != int64(len(body)) {
		t.Errorf("BytesWritten() = %d, want %d", cw.BytesWritten(), len(body))
	}
	if rec.Body.Len() != len(body) {
		t.Errorf("delivered %d bytes, want %d", rec.Body.Len(), len(body))
	}
}

// errWriter fails every write with a fixed error
type errWriter struct {
	http.ResponseWriter
	err error
}

func (e *errWriter) Write(p []byte) (int, error) { return 0, e.err }

func TestCountingWriterCapturesAbort(t *testing.T) {
	abort := &net.OpError{Op: "write", Err: syscall.EPIPE}
	cw := &countingWriter{ResponseWriter: &errWriter{httptest.NewRecorder(), abort}}

	_, err := cw.Write([]byte("x"))
	if err == nil {
		t.Fatal("expected write error")
	}
	if !cw.Aborted() {
		t.Error("Aborted() = false for a broken pipe")
	}
}

func TestIsClientAbort(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{syscall.EPIPE, true},
		{syscall.ECONNRESET, true},
		{&net.OpError{Op: "write", Err: syscall.EPIPE}, true},
		{fmt.Errorf("write tcp: %w", syscall.ECONNRESET), true},
		{errors.New("write tcp 1.2.3.4: broken pipe"), true},
		{errors.New("connection reset by peer"), true},
		{errors.New("disk full"), false},
		{errors.New("permission denied"), false},
	}

	for _, tt := range tests {
		if got := isClientAbort(tt.err); got != tt.want {
			t.Errorf("isClientAbort(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExtLabel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"sitemap0.html", "html"},
		{"sitemap0.XML", "xml"},
		{"sitemap", "no_ext"},
	}

	for _, tt := range tests {
		if got := extLabel(tt.name); got != tt.want {
			t.Errorf("extLabel(%s) = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestIsCompressible(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"sitemap0.html", true},
		{"sitemap0.xml", true},
		{"robots.txt", true},
		{"sitemap0.html.gz", false},
		{"archive.zip", false},
	}

	for _, tt := range tests {
		if got := isCompressible(tt.name); got != tt.want {
			t.Errorf("isCompressible(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
