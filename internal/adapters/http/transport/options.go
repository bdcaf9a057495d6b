package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/okian/sideline/pkg/logger"
	"github.com/okian/sideline/pkg/metrics"
	"golang.org/x/oauth2"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets scheme and host, e.g. "http://localhost:9528".
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithProfile selects the path prefix and envelope.
func WithProfile(p Profile) Option {
	return func(c *Client) {
		c.profile = p
	}
}

// WithTimeout bounds each round trip. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client. The client is copied,
// not mutated.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTokenSource authenticates every request with a bearer token.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = ts
	}
}

// WithToken is WithTokenSource for a fixed access token. Empty disables auth.
func WithToken(token string) Option {
	return func(c *Client) {
		if token == "" {
			c.tokenSource = nil
			return
		}
		c.tokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	}
}

// WithLogoutCodes marks backend codes that end the session.
func WithLogoutCodes(codes ...string) Option {
	return func(c *Client) {
		c.logoutCodes = make(map[string]struct{}, len(codes))
		for _, code := range codes {
			c.logoutCodes[code] = struct{}{}
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}
