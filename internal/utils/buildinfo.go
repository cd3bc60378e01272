package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const unknownVersion = "unknown"

// GetApplicationVersion reports the running binary's version. Module build
// info wins when present; a development build falls back to git describe in
// the enclosing repository, then to "unknown".
func GetApplicationVersion() string {
	buildInformation, buildInformationAvailable := debug.ReadBuildInfo()
	if buildInformationAvailable && buildInformation.Main.Version != "" && buildInformation.Main.Version != "(devel)" {
		return buildInformation.Main.Version
	}

	repositoryRoot, repositoryLookupError := findGitDirectory(".")
	if repositoryLookupError == nil && repositoryRoot != "" {
		if described := describeGitVersion(repositoryRoot, "describe", "--tags", "--exact-match"); described != "" {
			return described
		}
		if described := describeGitVersion(repositoryRoot, "describe", "--tags", "--long", "--dirty"); described != "" {
			return described
		}
	}

	return unknownVersion
}

func describeGitVersion(repositoryRoot string, arguments ...string) string {
	// #nosec G204
	describeCommand := exec.Command("git", arguments...)
	describeCommand.Dir = repositoryRoot
	describeOutput, describeError := describeCommand.Output()
	if describeError != nil || len(describeOutput) == 0 {
		return ""
	}
	return strings.TrimSpace(string(describeOutput))
}

// findGitDirectory walks upward from startDirectory until it finds a
// directory containing a .git folder.
func findGitDirectory(startDirectory string) (string, error) {
	directory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf("resolve absolute path of %s: %w", startDirectory, absoluteError)
	}

	for {
		candidate := filepath.Join(directory, GitDirectoryName)
		if information, statError := os.Stat(candidate); statError == nil && information.IsDir() {
			return directory, nil
		}
		parent := filepath.Dir(directory)
		if parent == directory {
			return "", fmt.Errorf("no %s directory in or above %s", GitDirectoryName, startDirectory)
		}
		directory = parent
	}
}
