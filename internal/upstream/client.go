package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/lmbridge/lm-proxy/internal/models"
	"go.uber.org/zap"
)

// RequestTimeout is the fixed per-call deadline for upstream requests,
// covering the full exchange including streamed body reads.
const RequestTimeout = 120 * time.Second

const streamBufferSize = 4096

// Client talks to the single upstream completion endpoint. It is safe
// for concurrent use; one instance is shared by all requests.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the given completion endpoint URL.
func NewClient(url string, logger *zap.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: RequestTimeout},
		logger:     logger,
	}
}

// Complete issues a single non-streaming call and decodes the reply.
// Failures come back as *StatusError, ErrTimeout or *TransportError.
func (c *Client) Complete(ctx context.Context, payload *models.CompletionPayload) (*models.CompletionResponse, error) {
	resp, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var reply models.CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, &TransportError{Err: err}
	}

	return &reply, nil
}

// Stream issues a streaming call and relays raw body chunks in arrival
// order over the returned channel. On any failure the final element is a
// single "ERROR: ..." chunk; no structured error escapes, because by the
// time a failure can be detected the downstream connection is already
// committed to an event-stream response. The channel closes when the
// stream ends.
func (c *Client) Stream(ctx context.Context, payload *models.CompletionPayload) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		resp, err := c.post(ctx, payload)
		if err != nil {
			c.logger.Warn("Upstream streaming call failed", zap.Error(err))
			emit(ctx, out, streamErrorChunk(err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(resp.Body)
			c.logger.Warn("Upstream streaming call rejected",
				zap.Int("status", resp.StatusCode),
				zap.String("body", string(body)))
			emit(ctx, out, fmt.Sprintf("ERROR: upstream returned %d: %s", resp.StatusCode, body))
			return
		}

		buf := make([]byte, streamBufferSize)
		for {
			n, err := resp.Body.Read(buf)
			if n > 0 {
				if !emit(ctx, out, string(buf[:n])) {
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					c.logger.Warn("Upstream stream aborted", zap.Error(err))
					emit(ctx, out, streamErrorChunk(err))
				}
				return
			}
		}
	}()

	return out
}

// post marshals the payload and performs the HTTP exchange, mapping
// transport failures to the typed error taxonomy.
func (c *Client) post(ctx context.Context, payload *models.CompletionPayload) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Sending upstream request",
		zap.String("url", c.url),
		zap.String("model", payload.Model),
		zap.Bool("stream", payload.Stream))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, &TransportError{Err: err}
	}

	c.logger.Debug("Upstream responded", zap.Int("status", resp.StatusCode))
	return resp, nil
}

// emit delivers a chunk unless the downstream caller has gone away.
// A canceled context means nobody is reading anymore; dropping the
// chunk releases the upstream connection.
func emit(ctx context.Context, out chan<- string, chunk string) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

func streamErrorChunk(err error) string {
	if errors.Is(err, ErrTimeout) || isTimeout(err) {
		return "ERROR: upstream request timed out"
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return "ERROR: " + statusErr.Error()
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "ERROR: " + transportErr.Error()
	}
	return "ERROR: request failed: " + err.Error()
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
