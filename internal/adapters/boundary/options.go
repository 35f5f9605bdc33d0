package boundary

import (
	"net/http"
	"time"

	"github.com/okian/rootsroads/pkg/logger"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout bounds a single lookup.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header. Public Nominatim instances
// require an identifying agent.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

// WithCacheSize caps the number of cached boundaries.
func WithCacheSize(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.cacheSize = n
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.log = l
		}
	}
}
