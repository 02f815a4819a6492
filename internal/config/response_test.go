// SPDX-License-Identifier: MIT OR Apache-2.0

package config

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func u16p(v uint16) *uint16 { return &v }

func TestResponseRoundTrip(t *testing.T) {
	empty := Response{}
	partial := Response{
		Status:       u16p(200),
		Headers:      []Header{{Key: "Content-Type", Value: "application/json"}},
		ProxyBaseURL: strp("http://cdcproxy.kroger.com"),
	}
	full := partial
	full.BodyFileName = strp("test.json")
	full.AdditionalProxyRequestHeaders = []Header{{Key: "Authorization", Value: "Basic abcdef123"}}

	cases := []struct {
		name string
		r    Response
		json string
	}{
		{"empty", empty, `{}`},
		{"partial", partial, `{"status":200,"headers":[{"key":"Content-Type","value":"application/json"}],"proxy_base_url":"http://cdcproxy.kroger.com"}`},
		{"full", full, `{"status":200,"headers":[{"key":"Content-Type","value":"application/json"}],"body_file_name":"test.json","proxy_base_url":"http://cdcproxy.kroger.com","additional_proxy_request_headers":[{"key":"Authorization","value":"Basic abcdef123"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := json.Marshal(tc.r)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tc.json {
				t.Fatalf("got %s, want %s", out, tc.json)
			}

			var decoded Response
			if err := json.Unmarshal([]byte(tc.json), &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(tc.r, decoded); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
