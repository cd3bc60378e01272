// Package manifest derives the project identity used in snapshot headers.
package manifest

import (
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

const goModuleFileName = "go.mod"

// DetectProjectName returns the module path declared by the root's go.mod
// when one exists, otherwise the base name of the root directory.
func DetectProjectName(rootPath string) string {
	goModulePath := filepath.Join(rootPath, goModuleFileName)
	goModuleBytes, readError := os.ReadFile(goModulePath)
	if readError == nil {
		moduleFile, parseError := modfile.Parse(goModuleFileName, goModuleBytes, nil)
		if parseError == nil && moduleFile != nil && moduleFile.Module != nil && moduleFile.Module.Mod.Path != "" {
			return moduleFile.Module.Mod.Path
		}
	}
	return filepath.Base(rootPath)
}
