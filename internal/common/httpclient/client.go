// internal/common/httpclient/client.go
package httpclient

import (
	"net"
	"net/http"
	"net/url"
	"time"
)

// Options configures outbound HTTP clients. Proxy use is explicit: the
// process environment is consulted only when UseSystemProxies is set.
type Options struct {
	Timeout          time.Duration
	UseSystemProxies bool
}

// New builds an *http.Client with its own transport.
func New(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	dialer := &net.Dialer{
		Timeout:   15 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 proxyFunc(opts.UseSystemProxies),
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func proxyFunc(useSystemProxies bool) func(*http.Request) (*url.URL, error) {
	if useSystemProxies {
		return http.ProxyFromEnvironment
	}
	return nil
}
