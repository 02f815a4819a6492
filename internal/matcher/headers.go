// SPDX-License-Identifier: MIT OR Apache-2.0

package matcher

import (
	"net/http"

	"github.com/deadmock/deadmock/internal/config"
)

// ExactMatchHeaders requires every configured header to equal at
// least one actual request header (case-insensitive name, exact
// value). Not applicable when no headers are configured.
type ExactMatchHeaders struct{}

func (ExactMatchHeaders) String() string { return "Exact Match Headers" }

func (ExactMatchHeaders) IsMatch(r *http.Request, rc *config.Request) (*bool, error) {
	if len(rc.Headers) == 0 {
		return nil, nil
	}
	actuals := flattenHeaders(r)
	for _, expected := range rc.Headers {
		found := false
		for _, actual := range actuals {
			if headerEquals(actual, expected) {
				found = true
				break
			}
		}
		if !found {
			return truep(false), nil
		}
	}
	return truep(true), nil
}
