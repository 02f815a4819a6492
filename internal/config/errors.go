// SPDX-License-Identifier: MIT OR Apache-2.0

package config

import "errors"

// Sentinel errors for the config/load error taxonomy.
var (
	// ErrInvalidProxyConfig is returned when use_proxy is set without a proxy_url.
	ErrInvalidProxyConfig = errors.New("invalid proxy configuration: proxy url is required")
	// ErrInvalidRuntimeConfig is returned when the runtime configuration cannot be built.
	ErrInvalidRuntimeConfig = errors.New("invalid runtime configuration")
	// ErrMappingKeyCollision is returned when the mapping store generates a
	// colliding identifier; a fatal load-time invariant violation.
	ErrMappingKeyCollision = errors.New("mapping key collision")
	// ErrMappingNotFound is returned by the matcher when no mapping matches a request.
	ErrMappingNotFound = errors.New("no mapping found")
	// ErrBodyFileNotFound is returned by response.BodyStore.Load when a
	// configured body_file_name cannot be located under the files root.
	ErrBodyFileNotFound = errors.New("body file not found")
	// ErrDuplicateBodyFileName is a fatal load-time error raised when two
	// files under the files root share a base name; body files are
	// looked up by base name only, so this would make lookup ambiguous.
	ErrDuplicateBodyFileName = errors.New("duplicate body file name")
)
