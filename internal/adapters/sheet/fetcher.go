// Package sheet retrieves the published survey spreadsheet and tokenizes its
// CSV export into rows keyed by column label.
package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "rootsroads/1.0"
	// maxPayloadBytes guards against a misconfigured URL serving something huge.
	maxPayloadBytes = 32 << 20
)

// Fetcher downloads the published CSV export.
type Fetcher struct {
	url       string
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBytes  int64
}

// NewFetcher creates a Fetcher for the given published-CSV URL.
func NewFetcher(url string, opts ...Option) *Fetcher {
	f := &Fetcher{
		url:       url,
		client:    http.DefaultClient,
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
		maxBytes:  maxPayloadBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the endpoint the fetcher reads.
func (f *Fetcher) URL() string { return f.url }

// Fetch performs one GET and returns the body text. It fails with ErrNetwork
// on transport errors, timeouts and non-2xx statuses, with ErrEmptyPayload
// when the body is blank and with ErrParse when it exceeds the size limit.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	const op = "sheet.fetch"

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%s: %w: status %d", op, ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%s: %w: read body: %w", op, ErrNetwork, err)
	}
	if int64(len(body)) > f.maxBytes {
		return "", fmt.Errorf("%s: %w: payload exceeds %d bytes", op, ErrParse, f.maxBytes)
	}
	text := string(body)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyPayload)
	}
	return text, nil
}
