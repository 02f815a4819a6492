// SPDX-License-Identifier: MIT OR Apache-2.0

// Package proxy builds and dispatches the upstream request for a
// mapping whose response carries a proxy_base_url, streaming the body
// back as a single buffered, lossy-UTF-8 string. It deliberately
// discards the upstream status and headers and always reports success
// to its caller, keeping the caller's response shape a plain string
// body regardless of how the upstream request went.
package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/deadmock/deadmock/internal/config"
)

// timeout bounds the whole upstream request/response cycle.
const timeout = 10 * time.Second

// Forwarder dispatches upstream requests through the connector implied
// by the operator's proxy configuration: direct (TLS or plain,
// selected transparently by net/http.Transport based on the upstream
// scheme), or a forward proxy with optional Basic credentials.
type Forwarder struct {
	client *http.Client
	log    logr.Logger
}

// NewForwarder builds a Forwarder from the proxy configuration. It
// returns config.ErrInvalidProxyConfig if use_proxy is set without a
// proxy_url, mirroring the Proxy.Validate invariant.
func NewForwarder(cfg config.Proxy, log logr.Logger) (*Forwarder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := &http.Transport{}

	if cfg.UseProxy {
		proxyURL, err := url.Parse(*cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy url: %w", err)
		}
		// Credentials ride as URL userinfo so the transport attaches
		// Proxy-Authorization on plain requests and CONNECT tunnels alike.
		if cfg.ProxyUsername != nil && cfg.ProxyPassword != nil {
			proxyURL.User = url.UserPassword(*cfg.ProxyUsername, *cfg.ProxyPassword)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &Forwarder{
		client: &http.Client{Transport: transport, Timeout: timeout},
		log:    log,
	}, nil
}

// UpstreamURL concatenates a proxy base URL with an incoming request's
// full URI (path + query).
func UpstreamURL(proxyBaseURL string, r *http.Request) string {
	return proxyBaseURL + r.URL.RequestURI()
}

// Forward issues a GET to upstreamURL, attaching additionalHeaders,
// and returns the accumulated body decoded as lossy UTF-8. Any error
// (connect failure, timeout, or a body read failure) is folded into
// the returned string rather than propagated, since the outer response
// always completes with a 200 and a text body.
func (f *Forwarder) Forward(ctx context.Context, upstreamURL string, additionalHeaders []config.Header) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, upstreamURL, nil)
	if err != nil {
		return fmt.Sprintf("Unable to process upstream response! %s", err)
	}
	for _, h := range additionalHeaders {
		req.Header.Add(h.Key, h.Value)
	}

	f.log.V(1).Info("making upstream request", "url", upstreamURL)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Error(err, "upstream request failed", "url", upstreamURL)
		return fmt.Sprintf("Unable to process upstream response! %s", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.log.Error(err, "failed reading upstream body", "url", upstreamURL)
		return "Unable to process upstream response!"
	}

	return strings.ToValidUTF8(string(body), "�")
}
