// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/snapshot/internal/services/clipboard"
	"github.com/temirov/snapshot/internal/tokenizer"
	"github.com/temirov/snapshot/internal/utils"
)

const (
	outputFlagName       = "output"
	outputFlagShorthand  = "o"
	configFlagName       = "config"
	goalFlagName         = "goal"
	descriptionFlagName  = "description"
	maxSizeFlagName      = "max-size-mib"
	excludeDirFlagName   = "exclude-dir"
	excludeDirShorthand  = "e"
	excludeExtFlagName   = "exclude-ext"
	treeStyleFlagName    = "tree-style"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	copyFlagName         = "copy"
	versionFlagName      = "version"
	globalFlagName       = "global"
	forceFlagName        = "force"
	versionTemplate      = "snapshot version: %s\n"
	rootUse              = "snapshot <project-path>"
	rootShortDescription = "capture a project's structure and source as one document"
	rootLongDescription  = `snapshot walks a project directory and writes a single text document
containing a short introduction, the project structure, and the content of every included file.
Build output, IDE metadata, and binary assets are skipped. Files above the size ceiling are
replaced by a placeholder. The document is printed to standard output unless --output is given.`
	rootUsageExample = `  # Print a snapshot of the current project
  snapshot .

  # Write the snapshot to a file and describe the task
  snapshot ./service -o service_snapshot.txt --goal "add request tracing"

  # Render the structure with box-drawing connectors and copy the result
  snapshot . --tree-style box --copy`

	outputFlagDescription      = "write the document to this file instead of standard output"
	configFlagDescription      = "read configuration from this file instead of ./" + utils.ConfigFileName
	goalFlagDescription        = "goal stated in the document introduction"
	descriptionFlagDescription = "project description used in the document introduction"
	maxSizeFlagDescription     = "size ceiling in MiB above which file content is replaced by a placeholder"
	excludeDirFlagDescription  = "additional directory name to skip (repeatable)"
	excludeExtFlagDescription  = "additional file name suffix to skip (repeatable)"
	treeStyleFlagDescription   = "project structure style: plain or box"
	tokensFlagDescription      = "log an estimate of the document's token count"
	modelFlagDescription       = "tokenizer model to use for token counting"
	copyFlagDescription        = "copy the document to the system clipboard"
	versionFlagDescription     = "display application version"

	initUse                    = "init"
	initShortDescription       = "write a default configuration file"
	initLongDescription        = "Write the default configuration to ./" + utils.ConfigFileName + ", or to the global configuration file with --global."
	globalFlagDescription      = "write the global configuration under the home directory"
	forceFlagDescription       = "overwrite an existing configuration file"
	initializedMessageTemplate = "Configuration written to %s\n"

	errorProjectPathArgument = "requires exactly one project path argument, received %d"
	workingDirectoryErrorFmt = "unable to determine working directory: %w"
)

// ErrOutputWrite reports a document that could not be written to the requested output file.
var ErrOutputWrite = errors.New("unable to write snapshot output")

// counterFactory creates the token counter used for estimates.
type counterFactory func(configuration tokenizer.Config) (tokenizer.Counter, string, error)

// applicationDependencies carries the collaborators of a command run.
type applicationDependencies struct {
	logger           *zap.Logger
	stdout           io.Writer
	copier           clipboard.Copier
	newCounter       counterFactory
	workingDirectory string
}

// Execute runs the snapshot application.
func Execute(logger *zap.Logger) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFmt, workingDirectoryError)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	dependencies := applicationDependencies{
		logger:           logger,
		stdout:           os.Stdout,
		copier:           clipboard.NewService(),
		newCounter:       tokenizer.NewCounter,
		workingDirectory: workingDirectory,
	}
	rootCommand := createRootCommand(dependencies)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies applicationDependencies) *cobra.Command {
	var options snapshotOptions
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				return nil
			}
			if len(arguments) != 1 {
				return fmt.Errorf(errorProjectPathArgument, len(arguments))
			}
			return nil
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, printError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			options.projectPath = arguments[0]
			return runSnapshot(dependencies, options, flagOverrides(command, options))
		},
	}
	rootCommand.SetOut(dependencies.stdout)

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.StringVar(&options.goal, goalFlagName, "", goalFlagDescription)
	flagSet.StringVar(&options.description, descriptionFlagName, "", descriptionFlagDescription)
	flagSet.Float64Var(&options.maxSizeMiB, maxSizeFlagName, 0, maxSizeFlagDescription)
	flagSet.StringArrayVarP(&options.excludedDirectories, excludeDirFlagName, excludeDirShorthand, nil, excludeDirFlagDescription)
	flagSet.StringArrayVar(&options.excludedExtensions, excludeExtFlagName, nil, excludeExtFlagDescription)
	flagSet.StringVar(&options.treeStyle, treeStyleFlagName, "", treeStyleFlagDescription)
	registerBooleanFlag(flagSet, &options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.tokenModel, modelFlagName, "", modelFlagDescription)
	registerBooleanFlag(flagSet, &options.copyEnabled, copyFlagName, false, copyFlagDescription)
	flagSet.BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}
