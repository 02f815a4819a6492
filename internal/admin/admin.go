// SPDX-License-Identifier: MIT OR Apache-2.0

// Package admin serves the process's operational surface (Prometheus
// metrics and basic liveness/readiness probes) on a listener separate
// from the mock/proxy traffic port, keeping control traffic off the
// data-plane listener.
package admin

import "net/http"

type handler struct {
	promHandler http.Handler
}

// NewHandler returns the admin http.Handler, serving /metrics (the
// default Prometheus registry), /ping, and /ready.
func NewHandler(promHandler http.Handler) http.Handler {
	return &handler{promHandler: promHandler}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	switch req.URL.Path {
	case "/metrics":
		h.promHandler.ServeHTTP(w, req)
	case "/ping":
		_, _ = w.Write([]byte("pong\n"))
	case "/ready":
		_, _ = w.Write([]byte("ok\n"))
	default:
		http.NotFound(w, req)
	}
}
