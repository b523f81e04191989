// Package httputil provides the shared HTTP plumbing for outbound
// report delivery: pooled clients, bounded body reads, and a semaphore
// for fire-and-forget dispatch.
package httputil

import (
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// MaxResponseSize bounds how much of a callback response we read. The
// reporting endpoint returns small acknowledgements; anything larger is
// misbehaving.
const MaxResponseSize = 2 * 1024 * 1024 // 2MB

// Shared transport so every outbound call reuses the same connection
// pool regardless of which client tier made it.
var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// TimeoutTier groups outbound calls by how long they may reasonably run.
type TimeoutTier int

const (
	// TierProbe for connectivity probes and other quick checks (5s).
	TierProbe TimeoutTier = iota
	// TierReport for report webhook delivery (15s).
	TierReport
)

var timeoutDurations = map[TimeoutTier]time.Duration{
	TierProbe:  5 * time.Second,
	TierReport: 15 * time.Second,
}

var (
	clientProbe  *http.Client
	clientReport *http.Client
	clientOnce   sync.Once
)

func initClients() {
	clientProbe = &http.Client{
		Timeout:   timeoutDurations[TierProbe],
		Transport: sharedTransport,
	}
	clientReport = &http.Client{
		Timeout:   timeoutDurations[TierReport],
		Transport: sharedTransport,
	}
}

// Client returns the shared HTTP client for a tier. Use these instead of
// constructing per-request clients so the connection pool is actually
// shared.
func Client(tier TimeoutTier) *http.Client {
	clientOnce.Do(initClients)
	if tier == TierProbe {
		return clientProbe
	}
	return clientReport
}

// ReadResponseBody reads a response body with a hard size limit.
func ReadResponseBody(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = MaxResponseSize
	}
	return io.ReadAll(io.LimitReader(r, maxSize))
}

// DrainAndClose drains and closes a response body so the underlying
// connection goes back to the pool.
func DrainAndClose(body io.ReadCloser) {
	if body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, MaxResponseSize))
		_ = body.Close()
	}
}
