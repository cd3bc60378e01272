// Package utils contains small helpers shared across the codecat packages.
package utils

import (
	"path/filepath"
)

// DeduplicateStrings returns values with later duplicates removed, keeping
// first occurrences in their original order.
func DeduplicateStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, value := range values {
		if _, duplicate := seen[value]; duplicate {
			continue
		}
		seen[value] = struct{}{}
		unique = append(unique, value)
	}
	return unique
}

// RelativePathOrSelf expresses fullPath relative to root in forward-slash
// form. The root itself becomes "."; when no relative form exists the
// cleaned fullPath is returned unchanged.
func RelativePathOrSelf(fullPath, root string) string {
	cleanedPath := filepath.Clean(fullPath)
	rootPath, absErr := filepath.Abs(root)
	if absErr != nil {
		return cleanedPath
	}
	rootPath = filepath.Clean(rootPath)
	if cleanedPath == rootPath {
		return "."
	}
	relative, relErr := filepath.Rel(rootPath, cleanedPath)
	if relErr != nil {
		return cleanedPath
	}
	return filepath.ToSlash(relative)
}
