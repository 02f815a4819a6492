// SPDX-License-Identifier: MIT OR Apache-2.0

package response

import (
	"fmt"
	"net/http"

	"github.com/deadmock/deadmock/internal/config"
)

// Static holds the materialized fields of a non-proxied response.
type Static struct {
	Status  int
	Headers []config.Header
	Body    string
}

// Build materializes a static response from the winning mapping's
// response configuration and the shared body store. A missing body
// file degrades to the literal "Body file not found!" text rather than
// failing the request, but an out-of-range status code is a
// construction failure: Build returns an error so the caller can emit
// a 500 with the error as the body, instead of serving a response
// under a status it can't actually set.
func Build(cfg config.Response, bodyStore *BodyStore) (Static, error) {
	status := http.StatusOK
	if cfg.Status != nil {
		s := int(*cfg.Status)
		if s < 100 || s > 599 {
			return Static{}, fmt.Errorf("invalid response status: %d", s)
		}
		status = s
	}

	body := "Unable to process body"
	if cfg.BodyFileName != nil {
		if contents, err := bodyStore.Load(*cfg.BodyFileName); err == nil {
			body = contents
		} else {
			body = "Body file not found!"
		}
	}

	return Static{Status: status, Headers: cfg.Headers, Body: body}, nil
}
