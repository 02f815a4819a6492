// SPDX-License-Identifier: MIT OR Apache-2.0

package matcher

import (
	"net/http"
	"strings"

	"github.com/deadmock/deadmock/internal/config"
	"github.com/deadmock/deadmock/internal/regexcache"
)

// flattenHeaders expands r.Header into one entry per header value,
// matching the per-line view the original header predicates iterate
// over (a repeated header produces multiple entries with the same key).
func flattenHeaders(r *http.Request) []config.Header {
	var out []config.Header
	for key, values := range r.Header {
		for _, v := range values {
			out = append(out, config.Header{Key: key, Value: v})
		}
	}
	return out
}

// headerEquals is the exact-match rule shared by ExactMatchHeader and
// ExactMatchHeaders: header names compare case-insensitively, values
// compare as exact byte equality.
func headerEquals(actual config.Header, expected config.Header) bool {
	return strings.EqualFold(actual.Key, expected.Key) && actual.Value == expected.Value
}

// matchEitherKey tests a header-pattern key side against an actual
// header name. The key is always compared lowercased, whether the
// configured side is a literal or a regex.
func matchEitherKey(e config.Either, actualKey string) bool {
	lower := strings.ToLower(actualKey)
	switch {
	case e.Left != nil:
		return strings.ToLower(*e.Left) == lower
	case e.Right != nil:
		re, err := regexcache.Compile(*e.Right)
		if err != nil {
			return false
		}
		return re.MatchString(lower)
	default:
		return false
	}
}

// matchEitherValue tests a header-pattern value side against an actual
// header value: the literal branch is case-sensitive, the regex branch
// matches the value as-is.
func matchEitherValue(e config.Either, actualValue string) bool {
	switch {
	case e.Left != nil:
		return *e.Left == actualValue
	case e.Right != nil:
		re, err := regexcache.Compile(*e.Right)
		if err != nil {
			return false
		}
		return re.MatchString(actualValue)
	default:
		return false
	}
}
