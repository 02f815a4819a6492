// SPDX-License-Identifier: MIT OR Apache-2.0

package config

import "path/filepath"

// Files is the filesystem root under which body_file_name values are
// resolved (see internal/response).
type Files struct {
	Path string
}

// NewFiles builds a Files config from a CLI-supplied root, defaulting
// to "files" under the current directory when root is empty, mirroring
// the historical CLI default.
func NewFiles(root string) Files {
	if root == "" {
		return Files{Path: "files"}
	}
	return Files{Path: filepath.Join(root, "files")}
}
