package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/snapshot/internal/commands"
	"github.com/temirov/snapshot/internal/config"
	"github.com/temirov/snapshot/internal/services/clipboard"
	"github.com/temirov/snapshot/internal/tokenizer"
	"github.com/temirov/snapshot/internal/utils"
)

const (
	analyzingProjectMessage    = "Analyzing project at: %s"
	snapshotWrittenMessage     = "Snapshot written to %s (%s)"
	tokenEstimateMessage       = "Token estimate"
	warningTokenCountFormat    = "failed to count tokens: %v"
	warningClipboardCopyFormat = "failed to copy snapshot to clipboard: %v"
	clipboardCopiedMessage     = "Snapshot copied to clipboard"

	errorOutputWriteFormat = "%w: %s: %v"
	errorStdoutWriteFormat = "write snapshot to standard output: %w"

	outputFilePermissions = 0o644
)

// snapshotOptions stores the values of the root command flags.
type snapshotOptions struct {
	projectPath         string
	outputPath          string
	configPath          string
	goal                string
	description         string
	maxSizeMiB          float64
	excludedDirectories []string
	excludedExtensions  []string
	treeStyle           string
	tokensEnabled       bool
	tokenModel          string
	copyEnabled         bool
}

// flagOverrides converts explicitly set flags into a configuration layer applied over the loaded files.
func flagOverrides(command *cobra.Command, options snapshotOptions) config.ApplicationConfiguration {
	flagSet := command.Flags()
	overrides := config.ApplicationConfiguration{
		Description: options.description,
		Goal:        options.goal,
		TreeStyle:   options.treeStyle,
		Ignore: config.IgnoreConfiguration{
			Directories: options.excludedDirectories,
			Extensions:  options.excludedExtensions,
		},
		Tokens: config.TokenConfiguration{Model: options.tokenModel},
	}
	if flagSet.Changed(maxSizeFlagName) {
		maxSizeMiB := options.maxSizeMiB
		overrides.MaxFileSizeMiB = &maxSizeMiB
	}
	if flagSet.Changed(tokensFlagName) {
		tokensEnabled := options.tokensEnabled
		overrides.Tokens.Enabled = &tokensEnabled
	}
	if flagSet.Changed(copyFlagName) {
		copyEnabled := options.copyEnabled
		overrides.Copy = &copyEnabled
	}
	return overrides
}

// runSnapshot loads configuration, builds the document, and delivers it.
func runSnapshot(dependencies applicationDependencies, options snapshotOptions, overrides config.ApplicationConfiguration) error {
	logger := dependencies.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	loadedConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: dependencies.workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if loadError != nil {
		return loadError
	}
	configuration := loadedConfiguration.Merge(overrides)

	outputPath := resolveOutputPath(dependencies.workingDirectory, options.outputPath)

	rules, rulesError := configuration.Rules()
	if rulesError != nil {
		return rulesError
	}
	treeStyle, treeStyleError := configuration.ResolvedTreeStyle()
	if treeStyleError != nil {
		return treeStyleError
	}

	rootPath := options.projectPath
	if !filepath.IsAbs(rootPath) && dependencies.workingDirectory != "" {
		rootPath = filepath.Join(dependencies.workingDirectory, rootPath)
	}
	resolvedRoot, resolveError := commands.ResolveRoot(rootPath)
	if resolveError != nil {
		return resolveError
	}
	logger.Info(fmt.Sprintf(analyzingProjectMessage, resolvedRoot))

	warn := func(message string) { logger.Warn(message) }
	snapshotter := &commands.Snapshotter{
		Rules:        rules,
		TreeStyle:    treeStyle,
		Introduction: configuration.Introduction(),
		Warn:         warn,
	}
	if outputPath != "" {
		snapshotter.ExcludedPaths = []string{outputPath}
	}
	snapshot, snapshotError := snapshotter.SnapshotResolved(resolvedRoot)
	if snapshotError != nil {
		return snapshotError
	}

	if outputPath != "" {
		if writeError := os.WriteFile(outputPath, []byte(snapshot.Document), outputFilePermissions); writeError != nil {
			return fmt.Errorf(errorOutputWriteFormat, ErrOutputWrite, outputPath, writeError)
		}
		displayPath := outputPath
		if dependencies.workingDirectory != "" {
			displayPath = utils.RelativePathOrSelf(outputPath, dependencies.workingDirectory)
		}
		logger.Info(fmt.Sprintf(snapshotWrittenMessage, displayPath, utils.FormatFileSize(int64(len(snapshot.Document)))))
	} else if _, writeError := fmt.Fprint(dependencies.stdout, snapshot.Document); writeError != nil {
		return fmt.Errorf(errorStdoutWriteFormat, writeError)
	}

	if configuration.Tokens.Enabled != nil && *configuration.Tokens.Enabled {
		reportTokenEstimate(dependencies, logger, configuration.TokenModel(), snapshot, warn)
	}
	if configuration.Copy != nil && *configuration.Copy {
		copySnapshot(dependencies, logger, snapshot.Document, warn)
	}
	return nil
}

// resolveOutputPath returns the cleaned absolute form of outputPath, or "" when no file was requested.
func resolveOutputPath(workingDirectory string, outputPath string) string {
	if outputPath == "" {
		return ""
	}
	if !filepath.IsAbs(outputPath) && workingDirectory != "" {
		outputPath = filepath.Join(workingDirectory, outputPath)
	}
	absoluteOutputPath, absolutePathError := filepath.Abs(outputPath)
	if absolutePathError != nil {
		return filepath.Clean(outputPath)
	}
	return absoluteOutputPath
}

// reportTokenEstimate logs the document's token count; failures only produce a warning.
func reportTokenEstimate(dependencies applicationDependencies, logger *zap.Logger, model string, snapshot commands.Snapshot, warn func(string)) {
	newCounter := dependencies.newCounter
	if newCounter == nil {
		newCounter = tokenizer.NewCounter
	}
	counter, resolvedModel, counterError := newCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		warn(fmt.Sprintf(warningTokenCountFormat, counterError))
		return
	}
	estimate, estimateError := tokenizer.EstimateSnapshot(counter, snapshot.Document, snapshot.Blocks)
	if estimateError != nil {
		warn(fmt.Sprintf(warningTokenCountFormat, estimateError))
		return
	}
	fields := []zap.Field{
		zap.Int("tokens", estimate.DocumentTokens),
		zap.String("model", resolvedModel),
		zap.Int("files", len(estimate.Blocks)),
	}
	if largest, found := estimate.Largest(); found {
		fields = append(fields, zap.String("largest_file", largest.RelativePath), zap.Int("largest_file_tokens", largest.Tokens))
	}
	logger.Info(tokenEstimateMessage, fields...)
}

// copySnapshot places the document on the clipboard; failures only produce a warning.
func copySnapshot(dependencies applicationDependencies, logger *zap.Logger, document string, warn func(string)) {
	if dependencies.copier == nil {
		warn(fmt.Sprintf(warningClipboardCopyFormat, clipboard.ErrUnavailable))
		return
	}
	if copyError := dependencies.copier.Copy(document); copyError != nil {
		warn(fmt.Sprintf(warningClipboardCopyFormat, copyError))
		return
	}
	logger.Info(clipboardCopiedMessage)
}
