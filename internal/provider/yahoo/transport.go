package yahoo

import (
	"net/http"
	"time"
)

// baseTransportConfig returns the shared HTTP transport configuration used
// by Yahoo chart clients.
func baseTransportConfig() *http.Transport {
	return &http.Transport{
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		MaxIdleConnsPerHost:   2,
	}
}

// newHTTPClient creates an HTTP client configured for chart requests.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: baseTransportConfig(),
		Timeout:   time.Minute,
	}
}

// NewClient constructs a Client with a shared HTTP client.
func NewClient() (*Client, error) {
	return &Client{
		client:     newHTTPClient(),
		baseURL:    chartBaseURL,
		retryDelay: retryDelay,
	}, nil
}
