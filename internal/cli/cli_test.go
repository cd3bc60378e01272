package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/codecat/internal/types"
)

func TestIsSupportedFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		format   string
		expected bool
	}{
		{format: types.FormatText, expected: true},
		{format: types.FormatJSON, expected: true},
		{format: types.FormatTxtar, expected: true},
		{format: "TEXT", expected: false},
		{format: "yaml", expected: false},
		{format: "", expected: false},
	}
	for _, testCase := range testCases {
		if actual := isSupportedFormat(testCase.format); actual != testCase.expected {
			t.Fatalf("isSupportedFormat(%q) = %t, expected %t", testCase.format, actual, testCase.expected)
		}
	}
}

func TestCollectFlagOverridesRecordsOnlyChangedFlags(t *testing.T) {
	t.Parallel()

	command := &cobra.Command{Use: "overrides-test"}
	values := &flagValues{}
	registerRootFlags(command, values)

	arguments := normalizeBooleanFlagArguments(command, []string{
		"-d", "src",
		"--format", "json",
		"-e", "dist",
		"--tokens", "no",
	})
	if parseErr := command.ParseFlags(arguments); parseErr != nil {
		t.Fatalf("parse flags: %v", parseErr)
	}

	overrides := collectFlagOverrides(command, values)

	if overrides.RootDirectory == nil || *overrides.RootDirectory != "src" {
		t.Fatalf("expected root directory override, got %+v", overrides.RootDirectory)
	}
	if overrides.Format == nil || *overrides.Format != "json" {
		t.Fatalf("expected format override, got %+v", overrides.Format)
	}
	if overrides.ExcludedDirectories == nil || !reflect.DeepEqual(*overrides.ExcludedDirectories, []string{"dist"}) {
		t.Fatalf("expected excluded directories override, got %+v", overrides.ExcludedDirectories)
	}
	if overrides.TokensEnabled == nil || *overrides.TokensEnabled {
		t.Fatalf("expected tokens override set to false, got %+v", overrides.TokensEnabled)
	}
	if overrides.OutputFile != nil {
		t.Fatalf("expected no output file override, got %q", *overrides.OutputFile)
	}
	if overrides.AllowedExtensions != nil || overrides.IncludeFiles != nil {
		t.Fatalf("expected no list overrides for untouched flags")
	}
	if overrides.TokenizerModel != nil || overrides.CopyToClipboard != nil {
		t.Fatalf("expected no overrides for untouched flags")
	}
}

func TestResolveRootDirectory(t *testing.T) {
	t.Parallel()

	existingRoot := t.TempDir()
	resolved, resolveErr := resolveRootDirectory(existingRoot)
	if resolveErr != nil {
		t.Fatalf("unexpected error for existing root: %v", resolveErr)
	}
	if resolved != filepath.Clean(existingRoot) {
		t.Fatalf("expected %q, got %q", filepath.Clean(existingRoot), resolved)
	}

	_, missingErr := resolveRootDirectory(filepath.Join(existingRoot, "absent"))
	if missingErr == nil || !strings.Contains(missingErr.Error(), "does not exist") {
		t.Fatalf("expected missing root error, got %v", missingErr)
	}

	filePath := filepath.Join(existingRoot, "plain.txt")
	if writeErr := os.WriteFile(filePath, []byte("plain"), 0o600); writeErr != nil {
		t.Fatalf("write file: %v", writeErr)
	}
	_, fileErr := resolveRootDirectory(filePath)
	if fileErr == nil || !strings.Contains(fileErr.Error(), "is not a directory") {
		t.Fatalf("expected non-directory error, got %v", fileErr)
	}
}

func isolateConfiguration(t *testing.T) {
	t.Helper()
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
}

func setupAggregationRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o600); err != nil {
		t.Fatalf("write main.go: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("notes\n"), 0o600); err != nil {
		t.Fatalf("write notes.txt: %v", err)
	}
	excludedDir := filepath.Join(root, "node_modules")
	if err := os.Mkdir(excludedDir, 0o755); err != nil {
		t.Fatalf("mkdir node_modules: %v", err)
	}
	if err := os.WriteFile(filepath.Join(excludedDir, "dep.js"), []byte("dep"), 0o600); err != nil {
		t.Fatalf("write dep.js: %v", err)
	}
	return root
}

func executeRootCommand(t *testing.T, arguments ...string) error {
	t.Helper()
	command := createRootCommand(zap.NewNop())
	command.SetOut(io.Discard)
	command.SetErr(io.Discard)
	command.SetArgs(normalizeBooleanFlagArguments(command, arguments))
	return command.Execute()
}

func TestRootCommandWritesTextSnapshot(t *testing.T) {
	isolateConfiguration(t)
	root := setupAggregationRoot(t)
	outputPath := filepath.Join(t.TempDir(), "out.txt")

	if runErr := executeRootCommand(t, "-d", root, "-o", outputPath); runErr != nil {
		t.Fatalf("execute: %v", runErr)
	}

	snapshotBytes, readErr := os.ReadFile(outputPath)
	if readErr != nil {
		t.Fatalf("read snapshot: %v", readErr)
	}
	snapshot := string(snapshotBytes)

	if !strings.Contains(snapshot, "Project: "+filepath.Base(root)) {
		t.Fatalf("expected project header in snapshot: %s", snapshot)
	}
	if !strings.Contains(snapshot, "Root: "+root) {
		t.Fatalf("expected root header in snapshot: %s", snapshot)
	}
	if !strings.Contains(snapshot, "--- Directory Tree: "+root+" ---") {
		t.Fatalf("expected tree banner in snapshot: %s", snapshot)
	}
	if !strings.Contains(snapshot, "├── node_modules/ [EXCLUDED]") {
		t.Fatalf("expected excluded annotation in snapshot: %s", snapshot)
	}
	if !strings.Contains(snapshot, "File: main.go\npackage main\nEnd of file: main.go") {
		t.Fatalf("expected aggregated main.go in snapshot: %s", snapshot)
	}
	if strings.Contains(snapshot, "File: notes.txt") {
		t.Fatalf("expected notes.txt content to be skipped: %s", snapshot)
	}
	if !strings.Contains(snapshot, "└── notes.txt") {
		t.Fatalf("expected notes.txt in tree: %s", snapshot)
	}
	if strings.Contains(snapshot, "dep.js") {
		t.Fatalf("expected excluded directory contents to be absent: %s", snapshot)
	}
}

func TestRootCommandAppliesConfigurationFile(t *testing.T) {
	isolateConfiguration(t)
	root := setupAggregationRoot(t)
	configPath := filepath.Join(t.TempDir(), "aggregate.yaml")
	if writeErr := os.WriteFile(configPath, []byte("format: json\n"), 0o600); writeErr != nil {
		t.Fatalf("write config: %v", writeErr)
	}
	outputPath := filepath.Join(t.TempDir(), "out.json")

	if runErr := executeRootCommand(t, "-d", root, "-o", outputPath, "--config", configPath); runErr != nil {
		t.Fatalf("execute: %v", runErr)
	}

	snapshotBytes, readErr := os.ReadFile(outputPath)
	if readErr != nil {
		t.Fatalf("read snapshot: %v", readErr)
	}
	var document map[string]any
	if decodeErr := json.Unmarshal(snapshotBytes, &document); decodeErr != nil {
		t.Fatalf("expected json snapshot, decode failed: %v", decodeErr)
	}
	if document["root"] != root {
		t.Fatalf("expected root %q in document, got %v", root, document["root"])
	}
}

func TestRootCommandFlagBeatsConfigurationFile(t *testing.T) {
	isolateConfiguration(t)
	root := setupAggregationRoot(t)
	configPath := filepath.Join(t.TempDir(), "aggregate.yaml")
	if writeErr := os.WriteFile(configPath, []byte("format: json\n"), 0o600); writeErr != nil {
		t.Fatalf("write config: %v", writeErr)
	}
	outputPath := filepath.Join(t.TempDir(), "out.txt")

	if runErr := executeRootCommand(t, "-d", root, "-o", outputPath, "--config", configPath, "--format", "text"); runErr != nil {
		t.Fatalf("execute: %v", runErr)
	}

	snapshotBytes, readErr := os.ReadFile(outputPath)
	if readErr != nil {
		t.Fatalf("read snapshot: %v", readErr)
	}
	if !strings.Contains(string(snapshotBytes), "Root: "+root) {
		t.Fatalf("expected text snapshot when flag overrides configuration: %s", snapshotBytes)
	}
}

func TestRootCommandRejectsInvalidFormat(t *testing.T) {
	isolateConfiguration(t)
	root := setupAggregationRoot(t)
	outputPath := filepath.Join(t.TempDir(), "out.txt")

	runErr := executeRootCommand(t, "-d", root, "-o", outputPath, "--format", "yaml")
	if runErr == nil || !strings.Contains(runErr.Error(), "Invalid format value 'yaml'") {
		t.Fatalf("expected invalid format error, got %v", runErr)
	}
	if _, statErr := os.Stat(outputPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output file for rejected format")
	}
}

func TestRootCommandRejectsMissingRoot(t *testing.T) {
	isolateConfiguration(t)
	missingRoot := filepath.Join(t.TempDir(), "absent")

	runErr := executeRootCommand(t, "-d", missingRoot, "-o", filepath.Join(t.TempDir(), "out.txt"))
	if runErr == nil || !strings.Contains(runErr.Error(), "does not exist") {
		t.Fatalf("expected missing root error, got %v", runErr)
	}
}
