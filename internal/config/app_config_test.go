package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/codecat/internal/utils"
)

func pointerTo[Value any](value Value) *Value {
	return &value
}

func TestLoadFileConfigurationMergesSources(t *testing.T) {
	testCases := []struct {
		name          string
		globalContent string
		localContent  string
		expectOutput  string
		expectFormat  string
		expectExclude []string
		expectTokens  *bool
		expectModel   string
		expectCopy    *bool
	}{
		{
			name:          "global file alone",
			globalContent: "output: global.txt\nformat: json\nexclude:\n  - dist\n",
			expectOutput:  "global.txt",
			expectFormat:  "json",
			expectExclude: []string{"dist"},
		},
		{
			name:          "local layered over global",
			globalContent: "output: global.txt\nformat: json\ncopy: true\n",
			localContent:  "format: txtar\ntokens:\n  enabled: true\n  model: custom\ncopy: false\n",
			expectOutput:  "global.txt",
			expectFormat:  "txtar",
			expectTokens:  pointerTo(true),
			expectModel:   "custom",
			expectCopy:    pointerTo(false),
		},
		{
			name:         "local file alone",
			localContent: "exclude:\n  - build\n  - build\ntokens:\n  enabled: false\n",
			expectExclude: []string{
				"build",
			},
			expectTokens: pointerTo(false),
		},
		{
			name: "no configuration present",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			if testCase.globalContent != "" {
				globalConfigDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
				if err := os.MkdirAll(globalConfigDir, 0o755); err != nil {
					t.Fatalf("create global config dir: %v", err)
				}
				globalPath := filepath.Join(globalConfigDir, utils.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}

			loaded, loadErr := LoadFileConfiguration(LoadOptions{WorkingDirectory: workingDir})
			if loadErr != nil {
				t.Fatalf("LoadFileConfiguration error: %v", loadErr)
			}

			if loaded.Output != testCase.expectOutput {
				t.Fatalf("expected output %q, got %q", testCase.expectOutput, loaded.Output)
			}
			if loaded.Format != testCase.expectFormat {
				t.Fatalf("expected format %q, got %q", testCase.expectFormat, loaded.Format)
			}
			if len(loaded.Exclude) != len(testCase.expectExclude) {
				t.Fatalf("expected exclude %v, got %v", testCase.expectExclude, loaded.Exclude)
			}
			for index, expectedName := range testCase.expectExclude {
				if loaded.Exclude[index] != expectedName {
					t.Fatalf("expected exclude %v, got %v", testCase.expectExclude, loaded.Exclude)
				}
			}
			if testCase.expectTokens == nil {
				if loaded.Tokens.Enabled != nil {
					t.Fatalf("expected no tokens override, got %v", *loaded.Tokens.Enabled)
				}
			} else if loaded.Tokens.Enabled == nil || *loaded.Tokens.Enabled != *testCase.expectTokens {
				t.Fatalf("unexpected tokens enabled value")
			}
			if loaded.Tokens.Model != testCase.expectModel {
				t.Fatalf("expected model %q, got %q", testCase.expectModel, loaded.Tokens.Model)
			}
			if testCase.expectCopy == nil {
				if loaded.Copy != nil {
					t.Fatalf("expected no copy override, got %v", *loaded.Copy)
				}
			} else if loaded.Copy == nil || *loaded.Copy != *testCase.expectCopy {
				t.Fatalf("unexpected copy value")
			}
		})
	}
}

func TestLoadFileConfigurationExplicitPath(t *testing.T) {
	homeDir := t.TempDir()
	workingDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)

	explicitName := "custom.yaml"
	explicitPath := filepath.Join(workingDir, explicitName)
	if err := os.WriteFile(explicitPath, []byte("directory: src\noutput: custom.txt\n"), 0o600); err != nil {
		t.Fatalf("write explicit config: %v", err)
	}

	// An ignored sibling proves the explicit path takes priority.
	localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
	if err := os.WriteFile(localPath, []byte("output: local.txt\n"), 0o600); err != nil {
		t.Fatalf("write local config: %v", err)
	}

	loaded, loadErr := LoadFileConfiguration(LoadOptions{
		WorkingDirectory: workingDir,
		ExplicitFilePath: explicitName,
	})
	if loadErr != nil {
		t.Fatalf("LoadFileConfiguration error: %v", loadErr)
	}
	if loaded.Directory != "src" {
		t.Fatalf("expected directory src, got %q", loaded.Directory)
	}
	if loaded.Output != "custom.txt" {
		t.Fatalf("expected output custom.txt, got %q", loaded.Output)
	}
}

func TestLoadFileConfigurationMissingExplicitPathFails(t *testing.T) {
	homeDir := t.TempDir()
	workingDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)

	_, loadErr := LoadFileConfiguration(LoadOptions{
		WorkingDirectory: workingDir,
		ExplicitFilePath: "absent.yaml",
	})
	if loadErr == nil {
		t.Fatalf("expected error for missing explicit configuration file")
	}
}

func TestLoadFileConfigurationRejectsUnparsableFile(t *testing.T) {
	homeDir := t.TempDir()
	workingDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)

	localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
	if err := os.WriteFile(localPath, []byte(": not yaml : ["), 0o600); err != nil {
		t.Fatalf("write local config: %v", err)
	}

	if _, loadErr := LoadFileConfiguration(LoadOptions{WorkingDirectory: workingDir}); loadErr == nil {
		t.Fatalf("expected error for unparsable configuration file")
	}
}

func TestFileConfigurationMerge(t *testing.T) {
	base := FileConfiguration{
		Output:  "base.txt",
		Format:  "text",
		Exclude: []string{"dist"},
		Tokens:  TokenConfiguration{Enabled: pointerTo(false), Model: "base-model"},
		Copy:    pointerTo(true),
	}
	override := FileConfiguration{
		Format:  "json",
		Exclude: []string{"build"},
		Tokens:  TokenConfiguration{Enabled: pointerTo(true)},
	}

	merged := base.Merge(override)

	if merged.Output != "base.txt" {
		t.Fatalf("expected base output to survive, got %q", merged.Output)
	}
	if merged.Format != "json" {
		t.Fatalf("expected override format, got %q", merged.Format)
	}
	if len(merged.Exclude) != 1 || merged.Exclude[0] != "build" {
		t.Fatalf("expected override exclude list, got %v", merged.Exclude)
	}
	if merged.Tokens.Enabled == nil || !*merged.Tokens.Enabled {
		t.Fatalf("expected tokens enabled override")
	}
	if merged.Tokens.Model != "base-model" {
		t.Fatalf("expected base model to survive, got %q", merged.Tokens.Model)
	}
	if merged.Copy == nil || !*merged.Copy {
		t.Fatalf("expected base copy value to survive")
	}
}
