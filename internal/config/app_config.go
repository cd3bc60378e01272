package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/codecat/internal/utils"
)

// LoadOptions controls how file configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// FileConfiguration mirrors the YAML configuration schema. Pointer fields
// distinguish "unset" from "explicitly false" across merged layers.
type FileConfiguration struct {
	Directory  string             `mapstructure:"directory"`
	Output     string             `mapstructure:"output"`
	Format     string             `mapstructure:"format"`
	Extensions []string           `mapstructure:"extensions"`
	Include    []string           `mapstructure:"include"`
	Exclude    []string           `mapstructure:"exclude"`
	Tokens     TokenConfiguration `mapstructure:"tokens"`
	Copy       *bool              `mapstructure:"copy"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// configurationSource names one candidate configuration file. Required
// sources must exist on disk; optional ones are skipped when absent.
type configurationSource struct {
	path     string
	required bool
}

// LoadFileConfiguration reads every configuration layer in order and merges
// them, later layers overriding earlier ones. The global file under the home
// directory comes first, then the local file in the working directory, or the
// explicit file when one was requested. Only the explicit file must exist.
func LoadFileConfiguration(options LoadOptions) (FileConfiguration, error) {
	sources, sourcesErr := configurationSources(options)
	if sourcesErr != nil {
		return FileConfiguration{}, sourcesErr
	}

	var layered FileConfiguration
	for _, source := range sources {
		layer, decodeErr := decodeConfigurationFile(source)
		if decodeErr != nil {
			return FileConfiguration{}, decodeErr
		}
		layered = layered.Merge(layer)
	}
	return layered, nil
}

func configurationSources(options LoadOptions) ([]configurationSource, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var sources []configurationSource

	if homeDirectory, homeErr := os.UserHomeDir(); homeErr == nil && homeDirectory != "" {
		sources = append(sources, configurationSource{
			path: filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName),
		})
	}

	if explicitPath := options.ExplicitFilePath; explicitPath != "" {
		if !filepath.IsAbs(explicitPath) {
			explicitPath = filepath.Join(workingDirectory, explicitPath)
		}
		sources = append(sources, configurationSource{path: explicitPath, required: true})
		return sources, nil
	}

	sources = append(sources, configurationSource{
		path: filepath.Join(workingDirectory, utils.LocalConfigFileName),
	})
	return sources, nil
}

func decodeConfigurationFile(source configurationSource) (FileConfiguration, error) {
	info, statErr := os.Stat(source.path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !source.required {
			return FileConfiguration{}, nil
		}
		return FileConfiguration{}, fmt.Errorf("configuration file %s: %w", source.path, statErr)
	}
	if info.IsDir() {
		return FileConfiguration{}, fmt.Errorf("configuration path %s is a directory, not a file", source.path)
	}

	reader := viper.New()
	reader.SetConfigFile(source.path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return FileConfiguration{}, fmt.Errorf("parse configuration %s: %w", source.path, readErr)
	}
	var layer FileConfiguration
	if decodeErr := reader.Unmarshal(&layer); decodeErr != nil {
		return FileConfiguration{}, fmt.Errorf("map configuration %s: %w", source.path, decodeErr)
	}
	return layer, nil
}

// Merge overlays override onto the receiver returning the combined
// configuration. Scalars win when set, list values replace the base list
// entirely, and pointer fields carry explicit false across layers.
func (configuration FileConfiguration) Merge(override FileConfiguration) FileConfiguration {
	combined := configuration
	if override.Directory != "" {
		combined.Directory = override.Directory
	}
	if override.Output != "" {
		combined.Output = override.Output
	}
	if override.Format != "" {
		combined.Format = override.Format
	}
	if len(override.Extensions) > 0 {
		combined.Extensions = utils.DeduplicateStrings(override.Extensions)
	}
	if len(override.Include) > 0 {
		combined.Include = utils.DeduplicateStrings(override.Include)
	}
	if len(override.Exclude) > 0 {
		combined.Exclude = utils.DeduplicateStrings(override.Exclude)
	}
	combined.Tokens = combined.Tokens.overlay(override.Tokens)
	if override.Copy != nil {
		combined.Copy = clonePointer(override.Copy)
	}
	return combined
}

func (configuration TokenConfiguration) overlay(override TokenConfiguration) TokenConfiguration {
	combined := configuration
	if override.Enabled != nil {
		combined.Enabled = clonePointer(override.Enabled)
	}
	if override.Model != "" {
		combined.Model = override.Model
	}
	return combined
}

func clonePointer[Value any](pointer *Value) *Value {
	if pointer == nil {
		return nil
	}
	cloned := *pointer
	return &cloned
}
