// SPDX-License-Identifier: EPL-2.0

package gamemix

import (
	"path/filepath"
	"strings"
)

// isPathValid accepts only relative paths that stay inside the asset tree:
// no absolute paths, no drive or volume prefixes, no parent-directory
// traversal.
func isPathValid(path string) bool {
	if path == "" {
		return false
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") {
		return false
	}
	// Reject drive prefixes on every platform, not just where
	// filepath.VolumeName understands them.
	if filepath.VolumeName(path) != "" || strings.Contains(path, ":") {
		return false
	}
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return false
		}
	}
	return true
}
