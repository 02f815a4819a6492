// SPDX-License-Identifier: MIT OR Apache-2.0

package matcher

import (
	"net/http"

	"github.com/deadmock/deadmock/internal/config"
)

// ExactMatchHeader requires exactly one of the actual request's
// headers to equal the single configured header (case-insensitive
// name, exact value).
type ExactMatchHeader struct{}

func (ExactMatchHeader) String() string { return "Exact Match Header" }

func (ExactMatchHeader) IsMatch(r *http.Request, rc *config.Request) (*bool, error) {
	if rc.Header == nil {
		return nil, nil
	}
	count := 0
	for _, actual := range flattenHeaders(r) {
		if headerEquals(actual, *rc.Header) {
			count++
		}
	}
	return truep(count == 1), nil
}

// PatternMatchHeader requires exactly one of the actual request's
// headers to satisfy header_pattern (key lowercased, value as
// configured, each side either a literal or a regex).
type PatternMatchHeader struct{}

func (PatternMatchHeader) String() string { return "Pattern Match Header" }

func (PatternMatchHeader) IsMatch(r *http.Request, rc *config.Request) (*bool, error) {
	if rc.HeaderPattern == nil {
		return nil, nil
	}
	hp := rc.HeaderPattern
	count := 0
	for _, actual := range flattenHeaders(r) {
		if matchEitherKey(hp.Key, actual.Key) && matchEitherValue(hp.Value, actual.Value) {
			count++
		}
	}
	return truep(count == 1), nil
}
