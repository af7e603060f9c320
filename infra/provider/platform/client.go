// Package platform is the HTTP client of the crowdfunding platform's REST API.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/amirasaad/crowdfund/pkg/metrics"
	"github.com/amirasaad/crowdfund/pkg/provider/api"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const maxErrorBody = 4 << 10

// Client implements every platform API contract over HTTP. It issues one
// request per call and never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a Client from cfg. httpClient may be nil.
func New(cfg *config.API, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		timeout:    cfg.Timeout,
		logger:     logger.With("component", "platform"),
	}
}

// request is one API call. route is the path template used for logs and
// metrics, path the concrete one.
type request struct {
	method string
	route  string
	path   string
	query  url.Values
	token  string
	body   any
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	op := r.method + " " + r.route
	if err := c.limiter.Wait(ctx); err != nil {
		return api.NetworkError(op, err)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + "/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordRemoteRequest(r.method, r.route, "error", time.Since(start))
		c.logger.Debug("Platform request failed", "op", op, "error", err)
		return api.NetworkError(op, err)
	}
	defer resp.Body.Close() //nolint:errcheck
	metrics.RecordRemoteRequest(r.method, r.route, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := errorMessage(resp.Body)
		c.logger.Debug("Platform rejected request", "op", op, "status", resp.StatusCode, "message", msg)
		return api.StatusError(op, resp.StatusCode, msg)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &api.Error{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    "malformed response",
			Err:        fmt.Errorf("%w: %w", domain.ErrServer, err),
		}
	}
	return nil
}

// errorMessage extracts a human message from an error body. It understands
// {"detail": ...}, {"message": ...} and {"error": ...}; anything else is
// returned as trimmed text.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var fields map[string]any
	if json.Unmarshal(data, &fields) == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if s, ok := fields[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return strings.TrimSpace(string(data))
}

// page is the paginated list envelope used by the platform.
type page[T any] struct {
	Results []T `json:"results"`
}

// decodeList accepts both a bare JSON array and a paginated envelope.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}
	if raw[0] == '[' {
		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var p page[T]
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if p.Results == nil {
		p.Results = []T{}
	}
	return p.Results, nil
}

func getList[T any](ctx context.Context, c *Client, r request) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, r, &raw); err != nil {
		return nil, err
	}
	out, err := decodeList[T](raw)
	if err != nil {
		return nil, &api.Error{
			Op:      r.method + " " + r.route,
			Message: "malformed list response",
			Err:     fmt.Errorf("%w: %w", domain.ErrServer, err),
		}
	}
	return out, nil
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}

var _ api.Platform = (*Client)(nil)
