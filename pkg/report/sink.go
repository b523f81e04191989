package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lurebox/lurebox/pkg/httputil"
	"github.com/lurebox/lurebox/pkg/logger"
)

// Sink delivers a finished payload somewhere. The engine treats delivery
// as best-effort: a failed send never rewinds the escalation decision.
type Sink interface {
	Send(ctx context.Context, p Payload) error
}

// NopSink swallows payloads. Used when no callback URL is configured and
// in tests.
type NopSink struct{}

func (NopSink) Send(context.Context, Payload) error { return nil }

// =========================================================================
// WEBHOOK SINK
// =========================================================================

const (
	defaultRetries = 2
	retryBackoff   = time.Second
	maxAsyncSends  = 50
)

// WebhookSink POSTs payloads as JSON to a callback endpoint with bounded
// retry.
type WebhookSink struct {
	url     string
	retries int
	client  *http.Client
	sem     *httputil.Semaphore
}

// NewWebhookSink builds a sink for the given endpoint. Negative retries
// fall back to the default.
func NewWebhookSink(url string, retries int) *WebhookSink {
	if retries < 0 {
		retries = defaultRetries
	}
	return &WebhookSink{
		url:     url,
		retries: retries,
		client:  httputil.Client(httputil.TierReport),
		sem:     httputil.NewSemaphore(maxAsyncSends),
	}
}

// Send posts the payload, retrying transient failures with a flat
// backoff. A non-2xx status on the final attempt is returned as an
// error.
func (s *WebhookSink) Send(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal report payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = s.post(ctx, body)
		if lastErr == nil {
			logger.Info("report delivered",
				zap.String("sessionId", p.SessionID),
				zap.String("reportId", p.ReportID),
				zap.Int("attempt", attempt+1))
			return nil
		}
		logger.Warn("report delivery attempt failed",
			zap.String("sessionId", p.SessionID),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr))
	}
	return fmt.Errorf("report delivery failed after %d attempts: %w", s.retries+1, lastErr)
}

func (s *WebhookSink) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer httputil.DrainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := httputil.ReadResponseBody(resp.Body, 1024)
		return fmt.Errorf("callback returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}

// SendAsync fires the delivery on its own goroutine, shedding load when
// too many sends are already in flight.
func (s *WebhookSink) SendAsync(p Payload) {
	if !s.sem.TryAcquire() {
		logger.Warn("report delivery dropped, too many in flight",
			zap.String("sessionId", p.SessionID),
			zap.Int64("droppedTotal", s.sem.DroppedCount()))
		return
	}
	go func() {
		defer s.sem.Release()
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		if err := s.Send(ctx, p); err != nil {
			logger.Error("async report delivery failed",
				zap.String("sessionId", p.SessionID),
				zap.Error(err))
		}
	}()
}
