package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/devnexus/marketplace-console/internal/core/domain"
	"github.com/devnexus/marketplace-console/internal/core/ports"
	"github.com/devnexus/marketplace-console/internal/pkg/metrics"
	"github.com/devnexus/marketplace-console/internal/pkg/requestid"
)

const (
	defaultTimeout = 15 * time.Second

	AuthorizationHeader = "Authorization"

	maxErrorBody = 64 << 10
)

// Config points the client at the backend.
type Config struct {
	BaseURL string
	// Timeout is the hard ceiling for every call, body included.
	Timeout time.Duration
}

// Client is the console's only path to the backend REST API. It attaches
// the stored bearer token, clears it on any 401, and turns every failure
// into a *domain.BackendError.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     ports.TokenStore
	log        zerolog.Logger

	mu             sync.RWMutex
	onUnauthorized []func()
}

var (
	_ ports.AuthAPI    = (*Client)(nil)
	_ ports.ProfileAPI = (*Client)(nil)
	_ ports.ProjectAPI = (*Client)(nil)
	_ ports.CatalogAPI = (*Client)(nil)
)

// NewClient builds a Client. A nil httpClient gets a fresh one with cfg.Timeout.
func NewClient(cfg Config, tokens ports.TokenStore, httpClient *http.Client, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend: invalid base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		tokens:     tokens,
		log:        log,
	}, nil
}

// OnUnauthorized registers fn to run after a 401 cleared the stored token.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

// Ping checks that the backend answers at all; any HTTP status counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL.String(), nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	_ = resp.Body.Close()
	return nil
}

type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   io.Reader
	ctype  string
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, request{op: op, method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) sendJSON(ctx context.Context, op, method, path string, payload, out any) error {
	req := request{op: op, method: method, path: path}
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", op, err)
		}
		req.body = bytes.NewReader(buf)
		req.ctype = "application/json"
	}
	return c.do(ctx, req, out)
}

// sendFiles posts files as a single multipart batch under field.
func (c *Client) sendFiles(ctx context.Context, op, path, field string, files []ports.Upload, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Filename))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("create part: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("write part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	return c.do(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   path,
		body:   &buf,
		ctype:  mw.FormDataContentType(),
	}, out)
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		metrics.BackendRequestsTotal.WithLabelValues(r.op, outcome).Inc()
		metrics.BackendRequestDuration.WithLabelValues(r.op).Observe(time.Since(start).Seconds())
	}()

	u := *c.baseURL
	u.Path = u.Path + r.path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), r.body)
	if err != nil {
		outcome = "transport_error"
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.ctype != "" {
		req.Header.Set("Content-Type", r.ctype)
	}
	req.Header.Set(requestid.Header, requestid.From(ctx))

	token, err := c.tokens.Load(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("op", r.op).Msg("token store read failed, sending anonymous request")
	} else if token != "" {
		req.Header.Set(AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = "transport_error"
		c.log.Warn().Err(err).Str("op", r.op).Msg("backend request failed")
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		outcome = "unauthorized"
		c.expire(ctx)
	}

	if resp.StatusCode >= 400 {
		if outcome == "ok" {
			outcome = "client_error"
			if resp.StatusCode >= 500 {
				outcome = "server_error"
			}
		}
		be := &domain.BackendError{Status: resp.StatusCode, Message: errorMessage(resp)}
		c.log.Debug().Str("op", r.op).Int("status", be.Status).Str("message", be.Message).Msg("backend rejected request")
		return be
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		outcome = "transport_error"
		return &domain.BackendError{Status: resp.StatusCode, Message: "malformed response: " + err.Error()}
	}
	return nil
}

// expire clears the stored token and notifies listeners.
func (c *Client) expire(ctx context.Context) {
	if err := c.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		c.log.Error().Err(err).Msg("failed to clear expired token")
	}

	c.mu.RLock()
	hooks := append([]func(){}, c.onUnauthorized...)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func errorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 200 {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func transportError(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &domain.BackendError{Message: "request timed out"}
	}
	return &domain.BackendError{Message: err.Error()}
}
