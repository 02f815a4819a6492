// SPDX-License-Identifier: MIT OR Apache-2.0

package matcher

import (
	"net/http"

	"github.com/deadmock/deadmock/internal/config"
	"github.com/deadmock/deadmock/internal/regexcache"
)

// ExactMatchMethod requires the configured method to equal the actual
// request method byte-for-byte (case-sensitive).
type ExactMatchMethod struct{}

func (ExactMatchMethod) String() string { return "Exact Match On Method" }

func (ExactMatchMethod) IsMatch(r *http.Request, rc *config.Request) (*bool, error) {
	if rc.Method == nil {
		return nil, nil
	}
	return truep(r.Method == *rc.Method), nil
}

// PatternMatchMethod requires method_pattern to match the actual
// request method as a regex.
type PatternMatchMethod struct{}

func (PatternMatchMethod) String() string { return "Pattern Match On Method" }

func (PatternMatchMethod) IsMatch(r *http.Request, rc *config.Request) (*bool, error) {
	if rc.MethodPattern == nil {
		return nil, nil
	}
	re, err := regexcache.Compile(*rc.MethodPattern)
	if err != nil {
		return truep(false), nil
	}
	return truep(re.MatchString(r.Method)), nil
}
