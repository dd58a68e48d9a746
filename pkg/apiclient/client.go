// Package apiclient is the HTTP client for the Tijarah backend. It
// builds authenticated JSON and multipart requests and normalizes every
// response into a Result: transport failures, unparseable bodies and
// backend rejections all come back as data, never as a panic or a raw
// error escaping to a screen.
package apiclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/kart-io/logger"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for authenticated requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Client calls the Tijarah backend. Construct one at app start and pass
// it into every controller; tests inject their own against a fake
// server.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets the bearer token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithTracer enables a span per request.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) { c.tracer = tracer }
}

// WithTimeout sets the request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tracer:  noop.NewTracerProvider().Tracer("apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request is one call intent.
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body is JSON-encoded when set and Form is nil.
	Body any

	// Form switches the request to multipart encoding.
	Form *Form

	// Authenticated attaches the bearer token. A missing token does not
	// abort the call here; screens gate on credentials before reaching
	// the client, and the backend answers 401 regardless.
	Authenticated bool
}

// Do executes a request and normalizes the outcome. It never returns a
// Go error: transport and parse failures yield a NetworkError result.
func (c *Client) Do(ctx context.Context, req Request) Result {
	requestID := ulid.Make().String()

	ctx, span := c.tracer.Start(ctx, req.Method+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.route", req.Path),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	httpReq, err := c.build(ctx, req, requestID)
	if err != nil {
		logger.Warnw("request build failed", "path", req.Path, "error", err)
		span.SetStatus(codes.Error, "build failed")
		return networkResult()
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.Warnw("request failed", "method", req.Method, "path", req.Path,
			"request_id", requestID, "error", err)
		span.SetStatus(codes.Error, "transport failure")
		return networkResult()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, "read failure")
		return networkResult()
	}

	var env Envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		logger.Warnw("unparseable response", "method", req.Method, "path", req.Path,
			"request_id", requestID, "http_status", resp.StatusCode)
		span.SetStatus(codes.Error, "malformed body")
		return networkResult()
	}

	result := resultFromEnvelope(env)
	span.SetAttributes(attribute.Int("tijarah.status", result.Status))
	logger.Debugw("request completed", "method", req.Method, "path", req.Path,
		"request_id", requestID, "status", result.Status, "success", result.Success)
	return result
}

func (c *Client) build(ctx context.Context, req Request, requestID string) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := ""

	switch {
	case req.Form != nil:
		encoded, ct, err := req.Form.encode()
		if err != nil {
			return nil, err
		}
		body = encoded
		contentType = ct
	case req.Body != nil:
		raw, err := sonic.Marshal(req.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if req.Authenticated && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err == nil && token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return httpReq, nil
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, path string, query url.Values) Result {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Authenticated: true})
}

// Post issues an authenticated JSON POST.
func (c *Client) Post(ctx context.Context, path string, body any) Result {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Authenticated: true})
}

// Put issues an authenticated JSON PUT.
func (c *Client) Put(ctx context.Context, path string, body any) Result {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body, Authenticated: true})
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) Result {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Authenticated: true})
}

// PostForm issues an authenticated multipart POST.
func (c *Client) PostForm(ctx context.Context, path string, form *Form) Result {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Form: form, Authenticated: true})
}
