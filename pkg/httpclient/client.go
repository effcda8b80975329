package httpclient

import (
	"net/http"
	"time"
)

// Client is the subset of *http.Client used by outbound integrations.
// Tests substitute an httptest server or a stub implementation.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// New returns an *http.Client with the given overall timeout; zero means 30s.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
