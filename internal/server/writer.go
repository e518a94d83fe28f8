package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"syscall"

	"golang.org/x/time/rate"
)

// countingWriter wraps the response writer to record the final status and
// byte count, apply optional bandwidth limiting, and capture the first
// write error so client disconnects can be told apart from real failures.
type countingWriter struct {
	http.ResponseWriter

	limiter *rate.Limiter
	status  int
	written int64
	err     error
}

func (cw *countingWriter) WriteHeader(code int) {
	if cw.status == 0 {
		cw.status = code
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.status == 0 {
		cw.status = http.StatusOK
	}
	if cw.limiter == nil {
		n, err := cw.ResponseWriter.Write(p)
		cw.written += int64(n)
		if err != nil && cw.err == nil {
			cw.err = err
		}
		return n, err
	}

	// ServeContent hands us chunks larger than the limiter burst, and WaitN
	// fails outright when asked for more tokens than the burst holds. Feed
	// the limiter burst-sized slices so every write succeeds at any rate.
	burst := cw.limiter.Burst()
	total := 0
	for len(p) > 0 {
		n := min(len(p), burst)
		if err := cw.limiter.WaitN(context.Background(), n); err != nil {
			if cw.err == nil {
				cw.err = err
			}
			return total, err
		}
		w, err := cw.ResponseWriter.Write(p[:n])
		total += w
		cw.written += int64(w)
		if err != nil {
			if cw.err == nil {
				cw.err = err
			}
			return total, err
		}
		p = p[n:]
	}
	return total, nil
}

// Status returns the response status, defaulting to 200 when the handler
// never wrote an explicit one
func (cw *countingWriter) Status() int {
	if cw.status == 0 {
		return http.StatusOK
	}
	return cw.status
}

// BytesWritten returns how many body bytes reached the connection
func (cw *countingWriter) BytesWritten() int64 {
	return cw.written
}

// Aborted reports whether the client dropped the connection mid-transfer
func (cw *countingWriter) Aborted() bool {
	return cw.err != nil && isClientAbort(cw.err)
}

// isClientAbort classifies transport-level errors caused by the peer going
// away, which are expected during downloads and never worth a 5xx
func isClientAbort(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "client disconnected")
}
