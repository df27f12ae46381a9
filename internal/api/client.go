// Package api is the HTTP client for the geospatial feature API.
//
// Every call issues exactly one request on a fresh connection that is
// released before the call returns.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/gezibash/geoclient/internal/observability"
	geoerrors "github.com/gezibash/geoclient/pkg/errors"
)

// Client issues feature API requests against one host endpoint.
type Client struct {
	host      *url.URL
	reporter  Reporter
	metrics   *observability.Metrics
	transport func() http.RoundTripper
}

// Option configures a Client.
type Option func(*Client)

// WithReporter sets the request/response reporter. Nil restores NopReporter.
func WithReporter(r Reporter) Option {
	return func(c *Client) {
		if r == nil {
			r = NopReporter{}
		}
		c.reporter = r
	}
}

// WithMetrics records request metrics into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTransport replaces the per-request transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = func() http.RoundTripper { return rt }
	}
}

// New creates a client for host. host is used as-is for collection requests.
func New(host *url.URL, opts ...Option) *Client {
	c := &Client{
		host:      host,
		reporter:  NopReporter{},
		transport: newTransport,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newTransport() http.RoundTripper {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DisableKeepAlives = true
	return t
}

// Host returns the collection endpoint.
func (c *Client) Host() *url.URL {
	u := *c.host
	return &u
}

// Resolve returns host/id. A trailing slash on the host path is optional.
func (c *Client) Resolve(id uuid.UUID) *url.URL {
	return c.host.JoinPath(id.String())
}

// Add uploads the feature file at path and returns its new identifier.
func (c *Client) Add(ctx context.Context, path string) (uuid.UUID, error) {
	return c.upload(ctx, c.Host(), path)
}

// AddAt uploads the feature file at path to an existing identifier and
// returns the identifier the server confirms.
func (c *Client) AddAt(ctx context.Context, path string, id uuid.UUID) (uuid.UUID, error) {
	return c.upload(ctx, c.Resolve(id), path)
}

// Delete removes a feature and returns the identifier the server confirms.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	resp, err := c.do(ctx, http.MethodDelete, c.Resolve(id), nil)
	if err != nil {
		return uuid.Nil, err
	}
	return resp.Identifier()
}

// Get returns the raw feature document stored under id.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.Resolve(id), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// GetAll returns the raw collection listing from the host endpoint.
func (c *Client) GetAll(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.Host(), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *Client) upload(ctx context.Context, target *url.URL, path string) (uuid.UUID, error) {
	body, err := newFeatureBody(path)
	if err != nil {
		return uuid.Nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, target, body)
	if err != nil {
		return uuid.Nil, err
	}
	return resp.Identifier()
}

func (c *Client) do(ctx context.Context, method string, target *url.URL, body *featureBody) (_ *Response, err error) {
	ctx, span := observability.StartRequestSpan(ctx, method, target)
	defer func() { observability.EndSpan(span, err) }()

	var reqBody io.Reader
	var sent int
	if body != nil {
		reqBody = bytes.NewReader(body.data)
		sent = len(body.data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}
	c.reporter.Request(req)

	hc := &http.Client{Transport: c.transport()}
	defer hc.CloseIdleConnections()

	start := time.Now()
	httpResp, err := hc.Do(req)
	if err != nil {
		c.observe(method, "error", time.Since(start), sent, 0)
		return nil, fmt.Errorf("%w: %w", geoerrors.ErrConnection, err)
	}
	resp, err := readResponse(httpResp)
	if err != nil {
		c.observe(method, "error", time.Since(start), sent, 0)
		return nil, fmt.Errorf("%w: read response: %w", geoerrors.ErrConnection, err)
	}
	c.observe(method, strconv.Itoa(resp.StatusCode), time.Since(start), sent, len(resp.Body))

	observability.SetResponseStatus(span, resp.StatusCode)
	c.reporter.Response(resp)
	return resp, nil
}

func (c *Client) observe(method, code string, d time.Duration, sent, received int) {
	if c.metrics == nil {
		return
	}
	c.metrics.RequestsTotal.WithLabelValues(method, code).Inc()
	c.metrics.RequestDuration.WithLabelValues(method, code).Observe(d.Seconds())
	c.metrics.BytesTransferred.WithLabelValues("out").Add(float64(sent))
	c.metrics.BytesTransferred.WithLabelValues("in").Add(float64(received))
}
