// Package boundary fetches country outlines from a Nominatim-compatible
// place-search service.
package boundary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/rootsroads/internal/domain/geomap"
	"github.com/okian/rootsroads/pkg/logger"
	"github.com/okian/rootsroads/pkg/metrics"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultTimeout   = 8 * time.Second
	defaultUserAgent = "rootsroads/1.0"
	defaultCacheSize = 256
	maxResponseBytes = 16 << 20
)

// Client looks up country boundaries and caches them by country code.
type Client struct {
	base      string
	http      *http.Client
	timeout   time.Duration
	userAgent string
	cacheSize int
	log       logger.Logger

	cache *lru.Cache[string, geomap.Boundary]
}

var _ geomap.BoundaryService = (*Client)(nil)

// New creates a client for the service at baseURL, e.g.
// "https://nominatim.openstreetmap.org".
func New(baseURL string, opts ...Option) (*Client, error) {
	const op = "boundary.new"

	if _, err := url.Parse(baseURL); err != nil || baseURL == "" {
		return nil, fmt.Errorf("%s: invalid base url %q", op, baseURL)
	}
	c := &Client{
		base:      strings.TrimRight(baseURL, "/"),
		http:      http.DefaultClient,
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
		cacheSize: defaultCacheSize,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	cache, err := lru.New[string, geomap.Boundary](c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.cache = cache
	return c, nil
}

// searchResult is the subset of a Nominatim search hit we read.
type searchResult struct {
	DisplayName string          `json:"display_name"`
	BoundingBox []string        `json:"boundingbox"`
	GeoJSON     json.RawMessage `json:"geojson"`
}

// Lookup returns the outline for id, from cache when possible.
func (c *Client) Lookup(ctx context.Context, id geomap.BoundaryID) (geomap.Boundary, error) {
	if b, ok := c.cache.Get(id.Code); ok {
		metrics.RecordBoundaryLookup("hit")
		return b, nil
	}

	start := time.Now()
	b, err := c.fetch(ctx, id)
	metrics.RecordBoundaryLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordBoundaryLookup("failed")
		return geomap.Boundary{}, err
	}
	metrics.RecordBoundaryLookup("fetched")
	c.cache.Add(id.Code, b)
	c.log.Debug(ctx, "boundary cached", logger.String("code", id.Code), logger.Int("cached", c.cache.Len()))
	return b, nil
}

func (c *Client) fetch(ctx context.Context, id geomap.BoundaryID) (geomap.Boundary, error) {
	const op = "boundary.fetch"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("country", id.Query)
	q.Set("polygon_geojson", "1")
	q.Set("format", "json")
	q.Set("limit", "1")
	if id.Code != "" {
		q.Set("countrycodes", strings.ToLower(id.Code))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/search?"+q.Encode(), http.NoBody)
	if err != nil {
		return geomap.Boundary{}, fmt.Errorf("%s: %w: %w", op, ErrRequest, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return geomap.Boundary{}, fmt.Errorf("%s: %w: %w", op, ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return geomap.Boundary{}, fmt.Errorf("%s: %w: status %d", op, ErrRequest, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&results); err != nil {
		return geomap.Boundary{}, fmt.Errorf("%s: %w: %w", op, ErrDecode, err)
	}
	if len(results) == 0 {
		return geomap.Boundary{}, fmt.Errorf("%s: %w: %s", op, ErrNotFound, id.Query)
	}
	hit := results[0]
	if len(hit.GeoJSON) == 0 {
		return geomap.Boundary{}, fmt.Errorf("%s: %w: no geometry for %s", op, ErrDecode, id.Query)
	}
	bounds, err := parseBoundingBox(hit.BoundingBox)
	if err != nil {
		return geomap.Boundary{}, fmt.Errorf("%s: %w: %w", op, ErrDecode, err)
	}
	return geomap.Boundary{
		ID:       id,
		Name:     hit.DisplayName,
		Bounds:   bounds,
		Geometry: hit.GeoJSON,
	}, nil
}

// parseBoundingBox reads Nominatim's [south, north, west, east] strings.
func parseBoundingBox(box []string) (geomap.Bounds, error) {
	if len(box) != 4 {
		return geomap.Bounds{}, fmt.Errorf("bounding box has %d values", len(box))
	}
	var v [4]float64
	for i, s := range box {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return geomap.Bounds{}, fmt.Errorf("bounding box value %q: %w", s, err)
		}
		v[i] = f
	}
	return geomap.Bounds{South: v[0], North: v[1], West: v[2], East: v[3]}, nil
}

// Cached reports how many boundaries are held in memory.
func (c *Client) Cached() int { return c.cache.Len() }
