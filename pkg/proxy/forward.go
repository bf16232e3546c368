package proxy

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Forwarder issues a single upstream attempt per inbound request and relays
// the upstream response back verbatim. No retries, no response buffering.
type Forwarder struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewForwarder creates a Forwarder with the given upstream timeout. A zero
// timeout disables the per-request deadline.
func NewForwarder(timeout time.Duration) *Forwarder {
	return &Forwarder{
		// The deadline is applied per request via context; http.Client.Timeout
		// stays zero so the context carries cancellation from the caller too.
		client:  &http.Client{},
		timeout: timeout,
		logger:  slog.Default().With("component", "proxy.forwarder"),
	}
}

// Forward sends the original method and body to targetURL with the given
// headers and relays the upstream status, headers, and body stream to w.
// It returns a terminal error only if nothing has been written to w yet.
func (f *Forwarder) Forward(w http.ResponseWriter, r *http.Request, targetURL string, headers http.Header) *APIError {
	ctx := r.Context()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	upstream, err := http.NewRequestWithContext(ctx, r.Method, targetURL, r.Body)
	if err != nil {
		f.logger.Error("failed to build upstream request",
			"target_url", targetURL,
			"error", err,
		)
		return NewInternalError("failed to build upstream request")
	}
	upstream.Header = headers
	// Preserve the declared length so upstream servers that require
	// Content-Length keep working; -1 means chunked.
	upstream.ContentLength = r.ContentLength

	resp, err := f.client.Do(upstream)
	if err != nil {
		f.logger.Warn("upstream request failed",
			"method", r.Method,
			"target_url", targetURL,
			"error", err,
		)
		return NewUpstreamError("failed to reach upstream provider")
	}
	defer resp.Body.Close()

	h := w.Header()
	for name, values := range resp.Header {
		for _, v := range values {
			h.Add(name, v)
		}
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(newFlushWriter(w), resp.Body); err != nil {
		// The status line is already on the wire; nothing more to send.
		f.logger.Warn("upstream body relay interrupted",
			"target_url", targetURL,
			"error", err,
		)
	}
	return nil
}

// flushWriter flushes after every write so streamed upstream responses
// (server-sent events in particular) reach the client without buffering.
type flushWriter struct {
	w       io.Writer
	flusher http.Flusher
}

func newFlushWriter(w http.ResponseWriter) *flushWriter {
	fw := &flushWriter{w: w}
	if f, ok := w.(http.Flusher); ok {
		fw.flusher = f
	}
	return fw
}

func (fw *flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if fw.flusher != nil {
		fw.flusher.Flush()
	}
	return n, err
}
