// SPDX-License-Identifier: MIT OR Apache-2.0

package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/deadmock/deadmock/internal/config"
	"github.com/deadmock/deadmock/internal/mappings"
	"github.com/deadmock/deadmock/internal/matcher"
	"github.com/deadmock/deadmock/internal/proxy"
	"github.com/deadmock/deadmock/internal/response"
)

func newHandler(t *testing.T, ms ...config.Mapping) *Handler {
	t.Helper()

	store := mappings.New()
	for _, m := range ms {
		if err := store.Insert(m); err != nil {
			t.Fatalf("inserting mapping: %v", err)
		}
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.json"), []byte(`{"hello":"world"}`), 0o644); err != nil {
		t.Fatalf("writing fixture body: %v", err)
	}
	bodyStore, err := response.NewBodyStore(dir)
	if err != nil {
		t.Fatalf("building body store: %v", err)
	}

	forwarder, err := proxy.NewForwarder(config.Proxy{}, logr.Discard())
	if err != nil {
		t.Fatalf("building forwarder: %v", err)
	}

	return &Handler{
		Store:     store,
		Matcher:   matcher.New(matcher.All, logr.Discard()),
		BodyStore: bodyStore,
		Forwarder: forwarder,
		Log:       logr.Discard(),
	}
}

func strp(s string) *string { return &s }

func TestHandlerNoMatchReturns404WithJSONBody(t *testing.T) {
	h := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("got Content-Type %q, want application/json", ct)
	}
	want := `{"message":"No mapping found"}` + "\n"
	if rec.Body.String() != want {
		t.Fatalf("got body %q, want %q", rec.Body.String(), want)
	}
}

func TestHandlerStaticMatchServesBodyFile(t *testing.T) {
	h := newHandler(t, config.Mapping{
		Name:     "static",
		Priority: 1,
		Request:  config.Request{URL: strp("/json")},
		Response: config.Response{BodyFileName: strp("hello.json")},
	})

	req := httptest.NewRequest(http.MethodGet, "/json", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if rec.Body.String() != `{"hello":"world"}` {
		t.Fatalf("got body %q", rec.Body.String())
	}
}

func TestHandlerMissingBodyFileServesErrorText(t *testing.T) {
	h := newHandler(t, config.Mapping{
		Name:     "missing-body",
		Priority: 1,
		Request:  config.Request{URL: strp("/missing")},
		Response: config.Response{BodyFileName: strp("nope.json")},
	})

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if rec.Body.String() != "Body file not found!" {
		t.Fatalf("got body %q, want %q", rec.Body.String(), "Body file not found!")
	}
}

func TestHandlerInvalidStatusReturns500WithJSONBody(t *testing.T) {
	bad := uint16(42)
	h := newHandler(t, config.Mapping{
		Name:     "bad-status",
		Priority: 1,
		Request:  config.Request{URL: strp("/bad")},
		Response: config.Response{Status: &bad},
	})

	req := httptest.NewRequest(http.MethodGet, "/bad", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("got Content-Type %q, want application/json", ct)
	}
	if !strings.Contains(rec.Body.String(), `"message"`) {
		t.Fatalf("expected a JSON error body, got %q", rec.Body.String())
	}
}

func TestHandlerAddsConfiguredHeaders(t *testing.T) {
	h := newHandler(t, config.Mapping{
		Name:     "with-headers",
		Priority: 1,
		Request:  config.Request{URL: strp("/json")},
		Response: config.Response{
			Headers:      []config.Header{{Key: "Content-Type", Value: "application/json"}},
			BodyFileName: strp("hello.json"),
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/json", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("got Content-Type %q, want application/json", got)
	}
}

func TestHandlerProxyMatchStreamsUpstreamBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("upstream body for " + r.URL.Path))
	}))
	defer upstream.Close()

	h := newHandler(t, config.Mapping{
		Name:     "proxy",
		Priority: 1,
		Request:  config.Request{URL: strp("/proxied")},
		Response: config.Response{ProxyBaseURL: strp(upstream.URL)},
	})

	req := httptest.NewRequest(http.MethodGet, "/proxied", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if want := "upstream body for /proxied"; rec.Body.String() != want {
		t.Fatalf("got body %q, want %q", rec.Body.String(), want)
	}
}
