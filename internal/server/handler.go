// SPDX-License-Identifier: MIT OR Apache-2.0

// Package server wires the matcher, response builder, and proxy
// forwarder into a net/http.Handler, and starts the TCP listener that
// serves it.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/deadmock/deadmock/internal/matcher"
	"github.com/deadmock/deadmock/internal/metrics"
	"github.com/deadmock/deadmock/internal/proxy"
	"github.com/deadmock/deadmock/internal/response"
)

// Handler is the per-request pipeline: find the matching mapping, then
// either stream a proxied response or assemble a static one. Store is
// a matcher.EntryLister so it can be either a fixed mappings.Store or
// a hot-reloadable mappings.Watched.
type Handler struct {
	Store     matcher.EntryLister
	Matcher   *matcher.Matcher
	BodyStore *response.BodyStore
	Forwarder *proxy.Forwarder
	Log       logr.Logger
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	mapping, err := h.Matcher.GetMatch(r, h.Store)
	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
		h.Log.Info("no mapping matched", "method", r.Method, "path", r.URL.Path)
		writeError(w, http.StatusNotFound, "No mapping found")
		return
	}
	h.Log.V(1).Info("matched mapping", "name", mapping.Name, "priority", mapping.Priority)

	resp := mapping.Response
	if resp.ProxyBaseURL != nil {
		metrics.RequestsTotal.WithLabelValues(metrics.OutcomeProxied).Inc()
		upstream := proxy.UpstreamURL(*resp.ProxyBaseURL, r)
		body := h.Forwarder.Forward(r.Context(), upstream, resp.AdditionalProxyRequestHeaders)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, body)
		return
	}

	metrics.RequestsTotal.WithLabelValues(metrics.OutcomeStatic).Inc()
	static, err := response.Build(resp, h.BodyStore)
	if err != nil {
		h.Log.Error(err, "unable to construct response", "name", mapping.Name)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, hd := range static.Headers {
		w.Header().Add(hd.Key, hd.Value)
	}
	w.WriteHeader(static.Status)
	_, _ = io.WriteString(w, static.Body)
}

// writeError emits the wire error taxonomy's JSON body shape:
// {"message": "..."}.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Message string `json:"message"`
	}{Message: message})
}
