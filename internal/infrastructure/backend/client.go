package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"taller_web/internal/domain/entities"
	"taller_web/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionExpired means the backend rejected the bearer token. The gateway
// has already destroyed the session record; callers must send the browser
// back to /login instead of retrying.
var ErrSessionExpired = errors.New("session expired or token invalid")

// StatusError is any non-2xx, non-401 backend response. The message is the
// raw response body: the backend encodes structured detail (e.g. duplicate
// conflicts) as JSON-in-string payloads that callers may parse.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if strings.TrimSpace(e.Body) != "" {
		return e.Body
	}
	return fmt.Sprintf("Error HTTP %d", e.Code)
}

// SessionInvalidator is the slice of the session store the gateway needs for
// the forced-logout path.
type SessionInvalidator interface {
	Delete(ctx context.Context, sid string) error
}

// Client is the authenticated request gateway in front of the workshop
// backend API. Every call is a fresh round trip: no retries, no caching, no
// request timeout (transport defaults apply), no in-flight deduplication.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionInvalidator
	logger     *zap.Logger
}

var _ interfaces.IBackendGateway = (*Client)(nil)

func NewClient(baseURL string, sessions SessionInvalidator, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		sessions:   sessions,
		logger:     logger,
	}
}

// Do performs one backend call on behalf of the given session. A zero session
// (no token) issues an unauthenticated call, which only the login endpoint
// uses.
func (c *Client) Do(ctx context.Context, sess entities.Session, method, path string, body any) (json.RawMessage, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	// 401 is fatal to the session regardless of the body: destroy the record
	// here so every caller converges on the same forced logout.
	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("backend rejected token, destroying session",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("sid", sess.SID))
		if sess.SID != "" {
			if derr := c.sessions.Delete(ctx, sess.SID); derr != nil {
				c.logger.Error("failed to destroy session after 401", zap.Error(derr))
			}
		}
		return nil, ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("backend error response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	c.logger.Debug("backend request ok",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))

	if len(respBody) == 0 {
		return nil, nil
	}
	return respBody, nil
}
