// Package config resolves the run configuration from defaults, configuration
// files, and command line flags, in that order of precedence.
package config

import (
	"github.com/temirov/codecat/internal/types"
	"github.com/temirov/codecat/internal/utils"
)

const (
	// DefaultRootDirectory is aggregated when no -d flag is given.
	DefaultRootDirectory = "."
	// DefaultOutputFileName receives the snapshot when no -o flag is given.
	DefaultOutputFileName = "full_code.txt"
	// DefaultFormat selects the classic plain-text snapshot layout.
	DefaultFormat = types.FormatText
	// DefaultTokenizerModel is used when --tokens is set without --model.
	DefaultTokenizerModel = "gpt-4o"
)

// DefaultAllowedExtensions lists the extensions aggregated when neither an
// include list nor an extension override is configured.
var DefaultAllowedExtensions = []string{
	".py", ".go", ".js", ".jsx", ".ts", ".tsx", ".java", ".c", ".h", ".cpp",
	".hpp", ".cc", ".cs", ".rb", ".rs", ".kt", ".swift", ".php", ".scala",
	".sh", ".pl", ".lua", ".sql", ".html", ".css", ".json", ".yaml", ".yml",
	".toml", ".md",
}

// DefaultExcludedDirectories lists directory names never descended into.
// Names supplied via -e or configuration files are appended to this set.
var DefaultExcludedDirectories = []string{
	".git", "node_modules", "__pycache__", ".venv", "vendor",
}

// Settings is the resolved, immutable configuration of a single run.
type Settings struct {
	RootDirectory       string
	OutputFile          string
	Format              string
	AllowedExtensions   []string
	IncludeFiles        []string
	ExcludedDirectories []string
	TokensEnabled       bool
	TokenizerModel      string
	CopyToClipboard     bool
}

// FlagOverrides carries flag values that were explicitly set on the command
// line. Nil fields mean the flag was left at its default and configuration
// files may still decide the value.
type FlagOverrides struct {
	RootDirectory       *string
	OutputFile          *string
	Format              *string
	AllowedExtensions   *[]string
	IncludeFiles        *[]string
	ExcludedDirectories *[]string
	TokensEnabled       *bool
	TokenizerModel      *string
	CopyToClipboard     *bool
}

// NewSettings layers file configuration and flag overrides over the built-in
// defaults. Extension and include lists replace the previous layer; excluded
// directory names accumulate across all layers.
func NewSettings(fileConfiguration FileConfiguration, overrides FlagOverrides) Settings {
	settings := Settings{
		RootDirectory:       DefaultRootDirectory,
		OutputFile:          DefaultOutputFileName,
		Format:              DefaultFormat,
		AllowedExtensions:   append([]string{}, DefaultAllowedExtensions...),
		ExcludedDirectories: append([]string{}, DefaultExcludedDirectories...),
		TokenizerModel:      DefaultTokenizerModel,
	}

	if fileConfiguration.Directory != "" {
		settings.RootDirectory = fileConfiguration.Directory
	}
	if fileConfiguration.Output != "" {
		settings.OutputFile = fileConfiguration.Output
	}
	if fileConfiguration.Format != "" {
		settings.Format = fileConfiguration.Format
	}
	if len(fileConfiguration.Extensions) > 0 {
		settings.AllowedExtensions = append([]string{}, fileConfiguration.Extensions...)
	}
	if len(fileConfiguration.Include) > 0 {
		settings.IncludeFiles = append([]string{}, fileConfiguration.Include...)
	}
	if len(fileConfiguration.Exclude) > 0 {
		settings.ExcludedDirectories = append(settings.ExcludedDirectories, fileConfiguration.Exclude...)
	}
	if fileConfiguration.Tokens.Enabled != nil {
		settings.TokensEnabled = *fileConfiguration.Tokens.Enabled
	}
	if fileConfiguration.Tokens.Model != "" {
		settings.TokenizerModel = fileConfiguration.Tokens.Model
	}
	if fileConfiguration.Copy != nil {
		settings.CopyToClipboard = *fileConfiguration.Copy
	}

	if overrides.RootDirectory != nil {
		settings.RootDirectory = *overrides.RootDirectory
	}
	if overrides.OutputFile != nil {
		settings.OutputFile = *overrides.OutputFile
	}
	if overrides.Format != nil {
		settings.Format = *overrides.Format
	}
	if overrides.AllowedExtensions != nil {
		settings.AllowedExtensions = append([]string{}, *overrides.AllowedExtensions...)
	}
	if overrides.IncludeFiles != nil {
		settings.IncludeFiles = append([]string{}, *overrides.IncludeFiles...)
	}
	if overrides.ExcludedDirectories != nil {
		settings.ExcludedDirectories = append(settings.ExcludedDirectories, *overrides.ExcludedDirectories...)
	}
	if overrides.TokensEnabled != nil {
		settings.TokensEnabled = *overrides.TokensEnabled
	}
	if overrides.TokenizerModel != nil {
		settings.TokenizerModel = *overrides.TokenizerModel
	}
	if overrides.CopyToClipboard != nil {
		settings.CopyToClipboard = *overrides.CopyToClipboard
	}

	settings.AllowedExtensions = utils.DeduplicateStrings(settings.AllowedExtensions)
	settings.IncludeFiles = utils.DeduplicateStrings(settings.IncludeFiles)
	settings.ExcludedDirectories = utils.DeduplicateStrings(settings.ExcludedDirectories)

	return settings
}
