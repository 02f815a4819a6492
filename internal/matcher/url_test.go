// SPDX-License-Identifier: MIT OR Apache-2.0

package matcher

import (
	"testing"

	"github.com/deadmock/deadmock/internal/config"
)

func TestExactMatchURL(t *testing.T) {
	rc := &config.Request{URL: strp("/json")}

	got, err := (ExactMatchURL{}).IsMatch(newReq("GET", "/json", nil), rc)
	if err != nil || got == nil || !*got {
		t.Fatalf("expected /json to match, got %v, %v", got, err)
	}

	got2, err := (ExactMatchURL{}).IsMatch(newReq("GET", "/other", nil), rc)
	if err != nil || got2 == nil || *got2 {
		t.Fatalf("expected /other to not match, got %v, %v", got2, err)
	}
}

func TestExactMatchURLNotApplicable(t *testing.T) {
	got, err := (ExactMatchURL{}).IsMatch(newReq("GET", "/json", nil), &config.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil when url is unset")
	}
}

func TestPatternMatchURL(t *testing.T) {
	rc := &config.Request{URLPattern: strp("^/admin/.*$")}
	got, err := (PatternMatchURL{}).IsMatch(newReq("GET", "/admin/list", nil), rc)
	if err != nil || got == nil || !*got {
		t.Fatalf("expected /admin/list to match, got %v, %v", got, err)
	}

	got2, err := (PatternMatchURL{}).IsMatch(newReq("GET", "/other", nil), rc)
	if err != nil || got2 == nil || *got2 {
		t.Fatalf("expected /other to not match, got %v, %v", got2, err)
	}
}
