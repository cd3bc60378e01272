// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/codecat/internal/config"
	"github.com/temirov/codecat/internal/manifest"
	"github.com/temirov/codecat/internal/output"
	"github.com/temirov/codecat/internal/services/clipboard"
	"github.com/temirov/codecat/internal/services/stream"
	"github.com/temirov/codecat/internal/tokenizer"
	"github.com/temirov/codecat/internal/types"
	"github.com/temirov/codecat/internal/utils"
	"github.com/temirov/codecat/internal/walk"
)

const (
	directoryFlagName  = "directory"
	outputFileFlagName = "output-file"
	includeFlagName    = "include-files"
	extensionsFlagName = "extensions"
	excludeFlagName    = "exclude-dirs"
	formatFlagName     = "format"
	tokensFlagName     = "tokens"
	modelFlagName      = "model"
	copyFlagName       = "copy"
	configFlagName     = "config"
	versionFlagName    = "version"

	directoryFlagShorthand  = "d"
	outputFileFlagShorthand = "o"
	includeFlagShorthand    = "i"
	extensionsFlagShorthand = "x"
	excludeFlagShorthand    = "e"

	versionTemplate      = "codecat version: %s\n"
	rootUse              = "codecat"
	rootShortDescription = "aggregate source files into a single snapshot"
	rootLongDescription  = `codecat walks a project directory and writes one snapshot file:
a rendered directory tree followed by the content of every selected file.
Files are selected by extension or by an explicit include list; excluded
directories appear in the tree but are never descended into.
Use --format to select text, json, or txtar output, and --version to print the application version.`

	// rootUsageExample demonstrates common invocations.
	rootUsageExample = `  # Aggregate the current directory into full_code.txt
  codecat

  # Aggregate only Python sources into sources.txt
  codecat -x py -o sources.txt

  # Skip generated directories and copy the snapshot to the clipboard
  codecat -e dist -e build --copy`

	directoryFlagDescription  = "root directory to aggregate"
	outputFileFlagDescription = "output file receiving the snapshot"
	includeFlagDescription    = "aggregate only files with these names"
	extensionsFlagDescription = "file extensions to aggregate (leading dot optional)"
	excludeFlagDescription    = "directory names excluded from traversal"
	formatFlagDescription     = "output format"
	tokensFlagDescription     = "include token counts"
	modelFlagDescription      = "tokenizer model to use for token counting"
	copyFlagDescription       = "copy the snapshot to the system clipboard"
	configFlagDescription     = "configuration file read instead of .codecat.yaml"
	versionFlagDescription    = "display application version"

	invalidFormatMessage        = "Invalid format value '%s'"
	warningClipboardFormat      = "Warning: failed to copy snapshot to clipboard: %v"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	summaryDestinationFormat    = "%s into %s"
	errorAbsolutePathFormat     = "resolve absolute path for '%s': %w"
	errorRootMissingFormat      = "root directory '%s' does not exist"
	errorRootNotDirectoryFormat = "root path '%s' is not a directory"
	errorStatFormat             = "inspect root '%s': %w"
	errorCreateOutputFormat     = "unable to create output file '%s': %w"
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatText, types.FormatJSON, types.FormatTxtar:
		return true
	default:
		return false
	}
}

// Execute runs the codecat application.
func Execute(loggerInstance *zap.Logger) error {
	rootCommand := createRootCommand(loggerInstance)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// flagValues stores raw command line flag values before they are layered
// over configuration files and defaults.
type flagValues struct {
	rootDirectory       string
	outputFile          string
	includeFiles        []string
	allowedExtensions   []string
	excludedDirectories []string
	format              string
	tokensEnabled       bool
	tokenizerModel      string
	copyToClipboard     bool
	configFile          string
}

// createRootCommand builds the root Cobra command.
func createRootCommand(loggerInstance *zap.Logger) *cobra.Command {
	var showVersion bool
	values := &flagValues{}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runAggregation(loggerInstance, command, values)
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	registerRootFlags(rootCommand, values)

	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// registerRootFlags registers every aggregation flag on the root command.
func registerRootFlags(rootCommand *cobra.Command, values *flagValues) {
	rootCommand.Flags().StringVarP(&values.rootDirectory, directoryFlagName, directoryFlagShorthand, config.DefaultRootDirectory, directoryFlagDescription)
	rootCommand.Flags().StringVarP(&values.outputFile, outputFileFlagName, outputFileFlagShorthand, config.DefaultOutputFileName, outputFileFlagDescription)
	rootCommand.Flags().StringSliceVarP(&values.includeFiles, includeFlagName, includeFlagShorthand, nil, includeFlagDescription)
	rootCommand.Flags().StringSliceVarP(&values.allowedExtensions, extensionsFlagName, extensionsFlagShorthand, nil, extensionsFlagDescription)
	rootCommand.Flags().StringSliceVarP(&values.excludedDirectories, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	rootCommand.Flags().StringVar(&values.format, formatFlagName, config.DefaultFormat, formatFlagDescription)
	registerBooleanFlag(rootCommand.Flags(), &values.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&values.tokenizerModel, modelFlagName, config.DefaultTokenizerModel, modelFlagDescription)
	registerBooleanFlag(rootCommand.Flags(), &values.copyToClipboard, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().StringVar(&values.configFile, configFlagName, "", configFlagDescription)
}

// collectFlagOverrides records only flags the user explicitly set so
// configuration files still decide untouched values.
func collectFlagOverrides(command *cobra.Command, values *flagValues) config.FlagOverrides {
	overrides := config.FlagOverrides{}
	flagSet := command.Flags()
	if flagSet.Changed(directoryFlagName) {
		overrides.RootDirectory = &values.rootDirectory
	}
	if flagSet.Changed(outputFileFlagName) {
		overrides.OutputFile = &values.outputFile
	}
	if flagSet.Changed(formatFlagName) {
		overrides.Format = &values.format
	}
	if flagSet.Changed(extensionsFlagName) {
		overrides.AllowedExtensions = &values.allowedExtensions
	}
	if flagSet.Changed(includeFlagName) {
		overrides.IncludeFiles = &values.includeFiles
	}
	if flagSet.Changed(excludeFlagName) {
		overrides.ExcludedDirectories = &values.excludedDirectories
	}
	if flagSet.Changed(tokensFlagName) {
		overrides.TokensEnabled = &values.tokensEnabled
	}
	if flagSet.Changed(modelFlagName) {
		overrides.TokenizerModel = &values.tokenizerModel
	}
	if flagSet.Changed(copyFlagName) {
		overrides.CopyToClipboard = &values.copyToClipboard
	}
	return overrides
}

// resolveRootDirectory converts the configured root into a validated absolute path.
func resolveRootDirectory(rootDirectory string) (string, error) {
	absoluteRoot, absoluteError := filepath.Abs(rootDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, rootDirectory, absoluteError)
	}
	cleanRoot := filepath.Clean(absoluteRoot)
	rootInformation, statError := os.Stat(cleanRoot)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorRootMissingFormat, rootDirectory)
		}
		return "", fmt.Errorf(errorStatFormat, rootDirectory, statError)
	}
	if !rootInformation.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectoryFormat, rootDirectory)
	}
	return cleanRoot, nil
}

// runAggregation resolves the run configuration and streams the snapshot
// into the output file.
func runAggregation(loggerInstance *zap.Logger, command *cobra.Command, values *flagValues) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	fileConfiguration, configurationError := config.LoadFileConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: values.configFile,
	})
	if configurationError != nil {
		return configurationError
	}

	settings := config.NewSettings(fileConfiguration, collectFlagOverrides(command, values))

	outputFormat := strings.ToLower(settings.Format)
	if !isSupportedFormat(outputFormat) {
		return fmt.Errorf(invalidFormatMessage, settings.Format)
	}

	rootPath, rootError := resolveRootDirectory(settings.RootDirectory)
	if rootError != nil {
		return rootError
	}

	outputPath, outputPathError := filepath.Abs(settings.OutputFile)
	if outputPathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, settings.OutputFile, outputPathError)
	}

	var tokenCounter tokenizer.Counter
	var tokenModel string
	if settings.TokensEnabled {
		createdCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: settings.TokenizerModel})
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
		tokenModel = resolvedModel
	}

	snapshotOptions := stream.SnapshotOptions{
		Root:         rootPath,
		Project:      manifest.DetectProjectName(rootPath),
		Selection:    walk.NewSelection(settings.AllowedExtensions, settings.IncludeFiles, settings.ExcludedDirectories),
		OutputPath:   outputPath,
		TokenCounter: tokenCounter,
		TokenModel:   tokenModel,
	}

	sink, sinkError := output.NewFileSink(outputPath)
	if sinkError != nil {
		return fmt.Errorf(errorCreateOutputFormat, settings.OutputFile, sinkError)
	}

	var clipboardBuffer bytes.Buffer
	var destination io.Writer = sink
	if settings.CopyToClipboard {
		destination = io.MultiWriter(sink, &clipboardBuffer)
	}

	renderer, rendererError := output.NewRenderer(outputFormat, destination)
	if rendererError != nil {
		sink.Close()
		return rendererError
	}

	signalCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	var summaryTotals *types.SnapshotSummary

	producer := func(streamCtx context.Context, events chan<- stream.Event) error {
		return stream.StreamSnapshot(streamCtx, snapshotOptions, events)
	}
	consumer := func(event stream.Event) error {
		switch event.Kind {
		case stream.EventKindWarning:
			if event.Message != nil {
				loggerInstance.Warn(event.Message.Message)
			}
			return nil
		case stream.EventKindSummary:
			if event.Summary != nil {
				summaryTotals = &types.SnapshotSummary{
					TotalFiles:  event.Summary.Files,
					TotalSize:   utils.FormatFileSize(event.Summary.Bytes),
					TotalTokens: event.Summary.Tokens,
					Model:       event.Summary.Model,
				}
			}
		}
		return renderer.Handle(event)
	}

	if streamError := dispatchStream(signalCtx, producer, consumer); streamError != nil {
		sink.Close()
		return streamError
	}
	if flushError := renderer.Flush(); flushError != nil {
		sink.Close()
		return flushError
	}
	if closeError := sink.Close(); closeError != nil {
		return closeError
	}

	if summaryTotals != nil {
		summaryLine := output.FormatSummaryLine(summaryTotals)
		destinationLabel := utils.RelativePathOrSelf(outputPath, workingDirectory)
		loggerInstance.Info(fmt.Sprintf(summaryDestinationFormat, summaryLine, destinationLabel))
	}

	if settings.CopyToClipboard {
		if copyError := clipboard.Copy(clipboardBuffer.String()); copyError != nil {
			loggerInstance.Warn(fmt.Sprintf(warningClipboardFormat, copyError))
		}
	}
	return nil
}

func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- stream.Event) error,
	consume func(stream.Event) error,
) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan stream.Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
