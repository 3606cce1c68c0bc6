// Package api is the HTTP client for the blogsphere backend. Every request
// carries the current bearer token, and a 401 response ends the local
// session before the error reaches the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"blogsphere/internal/envelope"
	"blogsphere/internal/logger"
)

const tracerName = "blogsphere/internal/client/api"

// Raw is a success envelope whose data has not been decoded yet.
type Raw = envelope.Response[json.RawMessage]

type options struct {
	session        Session
	notifier       func()
	transport      http.RoundTripper
	tracerProvider trace.TracerProvider
	log            *logger.Logger
}

// Option configures a Client.
type Option func(*options)

// WithSession sets where tokens are read from and what is cleared on 401.
func WithSession(s Session) Option {
	return func(o *options) {
		o.session = s
	}
}

// WithExpiryNotifier registers fn to run after a 401 has cleared the
// session. A nil fn is ignored.
func WithExpiryNotifier(fn func()) Option {
	return func(o *options) {
		o.notifier = fn
	}
}

// WithTransport replaces the underlying transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// Client sends requests relative to a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
	session Session
	expire  *expiryTransport
	tracer  trace.Tracer
	log     *logger.Logger
}

// New builds a Client for baseURL, e.g. "http://localhost:8080/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("api: base URL is required")
	}
	o := options{
		transport:      http.DefaultTransport,
		tracerProvider: otel.GetTracerProvider(),
		log:            logger.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	expire := &expiryTransport{session: o.session, notifier: o.notifier, next: o.transport}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &bearerTransport{tokens: o.session, next: expire},
		},
		session: o.session,
		expire:  expire,
		tracer:  o.tracerProvider.Tracer(tracerName),
		log:     o.log,
	}, nil
}

// BaseURL returns the URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string) (Raw, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (Raw, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (Raw, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (Raw, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do sends body JSON-encoded as is. A nil body sends no payload.
func (c *Client) Do(ctx context.Context, method, path string, body any) (Raw, error) {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Raw{}, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, reader, contentType)
}

// FilePart is one file in a multipart upload.
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Body        io.Reader
}

// Upload posts a multipart form with the given fields and file.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, file FilePart) (Raw, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return Raw{}, fmt.Errorf("write form field %s: %w", k, err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.FileName))
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return Raw{}, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return Raw{}, fmt.Errorf("copy file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return Raw{}, fmt.Errorf("close multipart body: %w", err)
	}

	return c.send(ctx, http.MethodPost, path, &buf, w.FormDataContentType())
}

// Download streams a non-enveloped response body into dst.
func (c *Client) Download(ctx context.Context, path string, dst io.Writer) (int64, error) {
	ctx, span := c.startSpan(ctx, http.MethodGet, path)
	defer span.End()

	resp, err := c.roundTrip(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		recordError(span, err)
		return 0, err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		recordError(span, apiErr)
		return 0, apiErr
	}
	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		recordError(span, err)
		return n, fmt.Errorf("read response body: %w", err)
	}
	return n, nil
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) (Raw, error) {
	ctx, span := c.startSpan(ctx, method, path)
	defer span.End()

	resp, err := c.roundTrip(ctx, method, path, body, contentType)
	if err != nil {
		recordError(span, err)
		return Raw{}, err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		c.log.Debug("request failed", "method", method, "path", path, "status", apiErr.StatusCode, "message", apiErr.Message)
		recordError(span, apiErr)
		return Raw{}, apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		recordError(span, err)
		return Raw{}, fmt.Errorf("read response body: %w", err)
	}
	out := Raw{StatusCode: resp.StatusCode}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		recordError(span, err)
		return Raw{}, fmt.Errorf("decode response envelope: %w", err)
	}
	if out.StatusCode == 0 {
		out.StatusCode = resp.StatusCode
	}
	return out, nil
}

// roundTrip returns transport errors exactly as the http.Client reports them.
func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return c.http.Do(req)
}

func (c *Client) startSpan(ctx context.Context, method, path string) (context.Context, trace.Span) {
	route := path
	if i := strings.IndexByte(route, '?'); i >= 0 {
		route = route[:i]
	}
	return c.tracer.Start(ctx, method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", c.baseURL+path),
		),
	)
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func decodeError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var body envelope.Error
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.Message
		apiErr.Code = body.Code
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// Into decodes the data of a Raw envelope as T. It is meant to wrap a verb
// call directly: Into[Blog](c.Get(ctx, "/blogs/"+id)).
func Into[T any](raw Raw, err error) (envelope.Response[T], error) {
	out := envelope.Response[T]{Message: raw.Message, StatusCode: raw.StatusCode}
	if err != nil {
		return out, err
	}
	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw.Data, &out.Data); err != nil {
		return out, fmt.Errorf("decode response data: %w", err)
	}
	return out, nil
}
