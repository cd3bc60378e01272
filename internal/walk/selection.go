package walk

import (
	"strings"
)

// Selection decides which walked entries contribute content to the snapshot
// and which directories are annotated instead of traversed.
type Selection struct {
	allowedExtensions   map[string]struct{}
	includeNames        map[string]struct{}
	excludedDirectories map[string]struct{}
}

// NewSelection builds a Selection from raw configuration values. Extensions
// are normalized to dotted lower-case so "-x py" and "-x .PY" behave alike.
func NewSelection(allowedExtensions []string, includeNames []string, excludedDirectories []string) Selection {
	selection := Selection{
		allowedExtensions:   make(map[string]struct{}, len(allowedExtensions)),
		includeNames:        make(map[string]struct{}, len(includeNames)),
		excludedDirectories: make(map[string]struct{}, len(excludedDirectories)),
	}
	for _, extension := range allowedExtensions {
		normalized := NormalizeExtension(extension)
		if normalized == "" {
			continue
		}
		selection.allowedExtensions[normalized] = struct{}{}
	}
	for _, name := range includeNames {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		selection.includeNames[trimmed] = struct{}{}
	}
	for _, directoryName := range excludedDirectories {
		trimmed := strings.TrimSpace(directoryName)
		if trimmed == "" {
			continue
		}
		selection.excludedDirectories[trimmed] = struct{}{}
	}
	return selection
}

// NormalizeExtension lower-cases an extension value and guarantees a single
// leading dot. Empty or dot-only input normalizes to the empty string.
func NormalizeExtension(extension string) string {
	trimmed := strings.TrimSpace(strings.ToLower(extension))
	trimmed = strings.TrimLeft(trimmed, ".")
	if trimmed == "" {
		return ""
	}
	return "." + trimmed
}

// IncludesFile reports whether a file with the given base name is selected
// for aggregation. A non-empty include list restricts selection to exactly
// the listed names; otherwise the extension set decides.
func (selection Selection) IncludesFile(fileName string) bool {
	if len(selection.includeNames) > 0 {
		_, listed := selection.includeNames[fileName]
		return listed
	}
	dotIndex := strings.LastIndex(fileName, ".")
	if dotIndex < 0 {
		return false
	}
	extension := strings.ToLower(fileName[dotIndex:])
	_, allowed := selection.allowedExtensions[extension]
	return allowed
}

// ExcludesDirectory reports whether a directory with the given base name is
// annotated in the tree without being descended into.
func (selection Selection) ExcludesDirectory(directoryName string) bool {
	_, excluded := selection.excludedDirectories[directoryName]
	return excluded
}
