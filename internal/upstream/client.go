// Package upstream is the client for the read-only archive API that serves
// hansards, inquiries and search results.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hyperjump/legisview/internal/metrics"
	"github.com/hyperjump/legisview/internal/models"
	"github.com/hyperjump/legisview/internal/search"
	"github.com/hyperjump/legisview/internal/storage"
)

// ErrNotFound is returned when the archive has no such record.
var ErrNotFound = errors.New("not found")

// StatusError is an unexpected HTTP status from the archive API.
type StatusError struct {
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("archive returned %d for %s: %s", e.Status, e.Path, e.Body)
}

// Endpoint names used for metrics and logs.
const (
	EndpointHansardList = "hansard_list"
	EndpointHansard     = "hansard"
	EndpointInquiryList = "inquiry_list"
	EndpointInquiry     = "inquiry"
	EndpointSearch      = "search"
)

const maxErrorBody = 512

// Client fetches archive records. Document fetches are de-duplicated while in
// flight and, when a cache is configured, served from it. Search is never
// cached and is cancelled with the caller's context. Nothing is retried.
type Client struct {
	baseURL string
	http    *http.Client
	cache   storage.Cache
	metrics *metrics.Metrics
	logger  *zap.Logger
	group   singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCache stores immutable document payloads in cache.
func WithCache(cache storage.Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithMetrics records request counts and durations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the archive API at baseURL. timeout bounds every
// request, including reading the body.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse upstream url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("upstream url must be http or https: %q", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimSuffix(u.String(), "/"),
		http:    &http.Client{Timeout: timeout},
		cache:   storage.NopCache{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var expandAll = url.Values{"expand": {"~all"}}.Encode()

// HansardList returns the summaries of all transcripts.
func (c *Client) HansardList(ctx context.Context) ([]models.HansardSummary, error) {
	var out []models.HansardSummary
	if err := c.document(ctx, EndpointHansardList, "/api/hansard.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Hansard returns a fully expanded transcript.
func (c *Client) Hansard(ctx context.Context, id int64) (*models.Hansard, error) {
	var out models.Hansard
	path := "/api/hansard/" + strconv.FormatInt(id, 10) + ".json?" + expandAll
	if err := c.document(ctx, EndpointHansard, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InquiryList returns all inquiries without their logs.
func (c *Client) InquiryList(ctx context.Context) ([]models.Inquiry, error) {
	var out []models.Inquiry
	if err := c.document(ctx, EndpointInquiryList, "/api/inquiry.json", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Inquiry returns a fully expanded inquiry.
func (c *Client) Inquiry(ctx context.Context, id int64) (*models.Inquiry, error) {
	var out models.Inquiry
	path := "/api/inquiry/" + strconv.FormatInt(id, 10) + ".json?" + expandAll
	if err := c.document(ctx, EndpointInquiry, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search runs q against the archive index and decodes the records for q's facet.
func (c *Client) Search(ctx context.Context, q models.SearchQuery) (*search.Results, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	body, err := c.fetch(ctx, EndpointSearch, "/api/search?"+q.Values().Encode())
	if err != nil {
		return nil, err
	}
	return search.Decode(q.DocumentType, body)
}

// document fetches an archive record, shared between concurrent callers and
// cached. The shared fetch is detached from any single caller's cancellation
// and bounded by the client timeout; each caller still stops waiting when its
// own context ends.
func (c *Client) document(ctx context.Context, endpoint, path string, out interface{}) error {
	body, ok, err := c.cache.Get(ctx, path)
	if err != nil {
		c.logger.Warn("cache read failed", zap.String("path", path), zap.Error(err))
	}
	if ok {
		c.metrics.CacheHit(endpoint)
		return decodeDocument(path, body, out)
	}

	ch := c.group.DoChan(path, func() (interface{}, error) {
		fetchCtx := context.WithoutCancel(ctx)
		body, err := c.fetch(fetchCtx, endpoint, path)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Put(fetchCtx, path, body); err != nil {
			c.logger.Warn("cache write failed", zap.String("path", path), zap.Error(err))
		}
		return body, nil
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return decodeDocument(path, res.Val.([]byte), out)
	}
}

func decodeDocument(path string, body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, endpoint, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(endpoint, 0, time.Since(start))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstream(endpoint, resp.StatusCode, time.Since(start))
	c.logger.Debug("upstream request",
		zap.String("endpoint", endpoint),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Path: path, Status: resp.StatusCode, Body: string(b)}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return body, nil
}
