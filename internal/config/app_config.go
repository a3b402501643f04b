package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/snapshot/internal/types"
	"github.com/temirov/snapshot/internal/utils"
)

const (
	// DefaultDescription names the project in the document introduction.
	DefaultDescription = "a software project"
	// DefaultGoalPlaceholder is left in the introduction for the reader to replace.
	DefaultGoalPlaceholder = "[...Describe your objective here...]"
	// DefaultTokenizerModel is used for token estimates when no model is configured.
	DefaultTokenizerModel = "gpt-4o"

	// configurationKeyDelimiter replaces viper's "." so extension keys such as ".go" stay intact.
	configurationKeyDelimiter = "::"

	errorWorkingDirectoryFormat   = "determine working directory: %w"
	errorResolveConfigPathFormat  = "resolve configuration path %s: %w"
	errorStatConfigFormat         = "stat configuration %s: %w"
	errorConfigIsDirectoryFormat  = "configuration path %s is a directory"
	errorReadConfigFormat         = "read configuration from %s: %w"
	errorDecodeConfigFormat       = "decode configuration from %s: %w"
	errorUnsupportedTreeStyle     = "unsupported tree style %q"
	errorNonPositiveMaxFileFormat = "max_file_size_mib must be positive, got %v"
	errorUnboundedMaxFileFormat   = "max_file_size_mib must be a finite number below %v, got %v"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds user defaults for a snapshot run.
type ApplicationConfiguration struct {
	Description    string              `mapstructure:"description"`
	Goal           string              `mapstructure:"goal"`
	TreeStyle      string              `mapstructure:"tree_style"`
	MaxFileSizeMiB *float64            `mapstructure:"max_file_size_mib"`
	Ignore         IgnoreConfiguration `mapstructure:"ignore"`
	Languages      map[string]string   `mapstructure:"languages"`
	Tokens         TokenConfiguration  `mapstructure:"tokens"`
	Copy           *bool               `mapstructure:"copy"`
}

// IgnoreConfiguration extends or replaces the built-in ignore sets.
type IgnoreConfiguration struct {
	UseDefaults *bool    `mapstructure:"use_defaults"`
	Directories []string `mapstructure:"directories"`
	Files       []string `mapstructure:"files"`
	Extensions  []string `mapstructure:"extensions"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
// Local values override global ones; missing files are not an error.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, currentDirectoryError := os.Getwd()
		if currentDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf(errorWorkingDirectoryFormat, currentDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeDirectoryError := os.UserHomeDir(); homeDirectoryError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	localConfig, loadError := loadConfigurationFromPath(localPath)
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	merged = merged.Merge(localConfig)

	merged.Ignore.Directories = utils.DeduplicatePatterns(merged.Ignore.Directories)
	merged.Ignore.Files = utils.DeduplicatePatterns(merged.Ignore.Files)
	merged.Ignore.Extensions = utils.DeduplicatePatterns(merged.Ignore.Extensions)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath, nil
	}
	if workingDirectory == "" {
		absolutePath, absolutePathError := filepath.Abs(explicitPath)
		if absolutePathError != nil {
			return "", fmt.Errorf(errorResolveConfigPathFormat, explicitPath, absolutePathError)
		}
		return absolutePath, nil
	}
	return filepath.Join(workingDirectory, explicitPath), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf(errorStatConfigFormat, path, statError)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf(errorConfigIsDirectoryFormat, path)
	}

	reader := viper.NewWithOptions(viper.KeyDelimiter(configurationKeyDelimiter))
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(errorReadConfigFormat, path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(errorDecodeConfigFormat, path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if override.Description != "" {
		result.Description = override.Description
	}
	if override.Goal != "" {
		result.Goal = override.Goal
	}
	if override.TreeStyle != "" {
		result.TreeStyle = override.TreeStyle
	}
	if override.MaxFileSizeMiB != nil {
		result.MaxFileSizeMiB = cloneFloat(override.MaxFileSizeMiB)
	}
	result.Ignore = result.Ignore.merge(override.Ignore)
	if len(override.Languages) > 0 {
		mergedLanguages := cloneLanguages(result.Languages)
		for extension, language := range override.Languages {
			mergedLanguages[extension] = language
		}
		result.Languages = mergedLanguages
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	return result
}

func (configuration IgnoreConfiguration) merge(override IgnoreConfiguration) IgnoreConfiguration {
	result := configuration
	if override.UseDefaults != nil {
		result.UseDefaults = cloneBool(override.UseDefaults)
	}
	result.Directories = append(append([]string{}, result.Directories...), override.Directories...)
	result.Files = append(append([]string{}, result.Files...), override.Files...)
	result.Extensions = append(append([]string{}, result.Extensions...), override.Extensions...)
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

// Rules builds the traversal rule set described by the configuration.
func (configuration ApplicationConfiguration) Rules() (Rules, error) {
	rules := DefaultRules()
	if configuration.Ignore.UseDefaults != nil && !*configuration.Ignore.UseDefaults {
		rules = Rules{
			Ignore: IgnoreRules{
				Directories:      map[string]struct{}{},
				Files:            map[string]struct{}{},
				MaxFileSizeBytes: DefaultMaxFileSizeBytes,
			},
			Languages: cloneLanguages(DefaultLanguageTags),
		}
	}
	if configuration.MaxFileSizeMiB != nil {
		maxFileSizeMiB := *configuration.MaxFileSizeMiB
		if math.IsNaN(maxFileSizeMiB) || math.IsInf(maxFileSizeMiB, 0) || maxFileSizeMiB >= utils.MaxMebibytes {
			return Rules{}, fmt.Errorf(errorUnboundedMaxFileFormat, utils.MaxMebibytes, maxFileSizeMiB)
		}
		if maxFileSizeMiB <= 0 {
			return Rules{}, fmt.Errorf(errorNonPositiveMaxFileFormat, maxFileSizeMiB)
		}
		rules = rules.WithMaxFileSize(utils.MebibytesToBytes(maxFileSizeMiB))
	}
	rules = rules.
		WithIgnoredDirectories(configuration.Ignore.Directories...).
		WithIgnoredFiles(configuration.Ignore.Files...).
		WithIgnoredExtensions(configuration.Ignore.Extensions...).
		WithLanguages(configuration.Languages)
	return rules, nil
}

// Introduction returns the document introduction with defaults applied.
func (configuration ApplicationConfiguration) Introduction() types.Introduction {
	introduction := types.Introduction{
		Description: strings.TrimSpace(configuration.Description),
		Goal:        strings.TrimSpace(configuration.Goal),
	}
	if introduction.Description == "" {
		introduction.Description = DefaultDescription
	}
	if introduction.Goal == "" {
		introduction.Goal = DefaultGoalPlaceholder
	}
	return introduction
}

// ResolvedTreeStyle returns the configured tree style, defaulting to the plain layout.
func (configuration ApplicationConfiguration) ResolvedTreeStyle() (string, error) {
	style := strings.ToLower(strings.TrimSpace(configuration.TreeStyle))
	switch style {
	case "":
		return types.TreeStylePlain, nil
	case types.TreeStylePlain, types.TreeStyleBox:
		return style, nil
	default:
		return "", fmt.Errorf(errorUnsupportedTreeStyle, configuration.TreeStyle)
	}
}

// TokenModel returns the configured tokenizer model or the default one.
func (configuration ApplicationConfiguration) TokenModel() string {
	if model := strings.TrimSpace(configuration.Tokens.Model); model != "" {
		return model
	}
	return DefaultTokenizerModel
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
