// SPDX-License-Identifier: MIT OR Apache-2.0

package matcher

import (
	"net/http"

	"github.com/deadmock/deadmock/internal/config"
	"github.com/deadmock/deadmock/internal/regexcache"
)

// ExactMatchURL requires the configured url to equal the request path
// byte-for-byte.
type ExactMatchURL struct{}

func (ExactMatchURL) String() string { return "Exact Match On Url" }

func (ExactMatchURL) IsMatch(r *http.Request, rc *config.Request) (*bool, error) {
	if rc.URL == nil {
		return nil, nil
	}
	return truep(r.URL.Path == *rc.URL), nil
}

// PatternMatchURL requires url_pattern to match the request path as a
// regex.
type PatternMatchURL struct{}

func (PatternMatchURL) String() string { return "Pattern Match On Url" }

func (PatternMatchURL) IsMatch(r *http.Request, rc *config.Request) (*bool, error) {
	if rc.URLPattern == nil {
		return nil, nil
	}
	re, err := regexcache.Compile(*rc.URLPattern)
	if err != nil {
		return truep(false), nil
	}
	return truep(re.MatchString(r.URL.Path)), nil
}
