package annotation

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option is a functional option for configuring the BioMartClient
type Option func(*BioMartClient)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *BioMartClient) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithHost points every query at host instead of the species' own mart host.
func WithHost(host string) Option {
	return func(c *BioMartClient) {
		c.host = host
	}
}

// WithTimeout bounds a whole request, response body included. Zero keeps the default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *BioMartClient) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *BioMartClient) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *BioMartClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}
