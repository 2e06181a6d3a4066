// Package gateway detects whether the OpenClaw gateway is answering
// on its configured port.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openclaw/pairctl/internal/logging"
	"github.com/openclaw/pairctl/internal/system"
)

// DefaultTimeout bounds each liveness strategy.
const DefaultTimeout = 2 * time.Second

// SocketTableQuery inspects the OS socket table for a TCP listener.
type SocketTableQuery interface {
	// Listening reports whether a process listens on port. conclusive
	// is false when the query could not be trusted (tool missing,
	// insufficient privilege) and the caller should try another
	// strategy.
	Listening(ctx context.Context, port int) (listening bool, conclusive bool)
}

// HTTPProbe checks for an HTTP responder at a URL.
type HTTPProbe interface {
	// Alive reports whether anything completed an HTTP response at
	// url. Any status code counts; only transport failure is false.
	Alive(ctx context.Context, url string) bool
}

// Probe is the gateway liveness check. It never returns an error; all
// failures collapse to "not running".
type Probe struct {
	Sockets SocketTableQuery
	HTTP    HTTPProbe
	Timeout time.Duration
}

// NewProbe builds a Probe using the given executor for socket-table
// inspection and a real HTTP client for the fallback.
func NewProbe(exec system.CommandExecutor, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Probe{
		Sockets: &lsofQuery{exec: exec},
		HTTP:    &httpProbe{timeout: timeout},
		Timeout: timeout,
	}
}

// IsRunning reports whether something is listening on port. The socket
// table is consulted first; if that is inconclusive, a bounded HTTP
// request to loopback decides.
func (p *Probe) IsRunning(ctx context.Context, port int) bool {
	sctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	if listening, conclusive := p.Sockets.Listening(sctx, port); conclusive {
		logging.Debug("socket table answered", "port", port, "listening", listening)
		return listening
	}

	logging.Debug("socket table inconclusive, probing over HTTP", "port", port)

	hctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	return p.HTTP.Alive(hctx, fmt.Sprintf("http://127.0.0.1:%d/", port))
}

// lsofQuery implements SocketTableQuery by shelling out to lsof, which
// works unprivileged for the caller's own processes.
type lsofQuery struct {
	exec system.CommandExecutor
}

func (q *lsofQuery) Listening(ctx context.Context, port int) (bool, bool) {
	if _, err := q.exec.LookPath("lsof"); err != nil {
		return false, false
	}

	out, err := q.exec.Execute(ctx, "lsof",
		"-nP", fmt.Sprintf("-iTCP:%d", port), "-sTCP:LISTEN")
	if err == nil && strings.Contains(string(out), "LISTEN") {
		return true, true
	}

	// lsof exits 1 both for "no matches" and for real failures; an
	// empty output means it ran and found nothing.
	if len(strings.TrimSpace(string(out))) == 0 && ctx.Err() == nil {
		return false, true
	}

	return false, false
}

// httpProbe implements HTTPProbe with a real client.
type httpProbe struct {
	timeout time.Duration
}

func (h *httpProbe) Alive(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	client := &http.Client{Timeout: h.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	// A 404 or 500 still proves a listener; only transport errors
	// count as absence.
	return true
}
