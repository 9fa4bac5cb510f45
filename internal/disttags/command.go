package disttags

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/relkit/internal/execshell"
	"github.com/temirov/relkit/internal/npmcli"
	flagutils "github.com/temirov/relkit/internal/utils/flags"
	pathutils "github.com/temirov/relkit/internal/utils/path"
)

const (
	commandUseConstant                      = "clean-npm-tags"
	commandShortDescriptionConstant         = "Clean up npm dist tags"
	commandLongDescriptionConstant          = "clean-npm-tags removes npm dist tags whose names match a regular expression, keeping protected tags such as latest."
	unexpectedArgumentsErrorMessageConstant = "clean-npm-tags does not accept positional arguments"
	commandExecutionErrorTemplateConstant   = "clean-npm-tags failed: %w"
	packageNameFlagNameConstant             = "name"
	packageNameFlagDescriptionConstant      = "npm package name (defaults to the name in package.json)"
	patternFlagNameConstant                 = "regexp"
	patternFlagDescriptionConstant          = "Regular expression matched against dist tag names"
	patternParseErrorTemplateConstant       = "invalid dist-tag pattern %q: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current clean-npm-tags configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the clean-npm-tags command.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	ConfigurationProvider    ConfigurationProvider
	Client                   DistTagClient
	CommandRunner            execshell.CommandRunner
	BackOffFactory           BackOffFactory
	FileSystem               afero.Fs
	WorkingDirectoryResolver *pathutils.WorkingDirectoryResolver
}

// Build constructs the clean-npm-tags command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	flagutils.BindWorkingDirectoryFlag(command)
	command.Flags().String(packageNameFlagNameConstant, "", packageNameFlagDescriptionConstant)
	command.Flags().String(patternFlagNameConstant, "", patternFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	cleanOptions, optionsError := builder.parseCleanOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	client, clientError := builder.resolveClient(logger)
	if clientError != nil {
		return clientError
	}

	service, serviceError := NewService(logger, client, builder.BackOffFactory)
	if serviceError != nil {
		return serviceError
	}

	if _, executionError := service.Execute(command.Context(), cleanOptions); executionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, executionError)
	}

	return nil
}

func (builder *CommandBuilder) parseCleanOptions(command *cobra.Command) (CleanOptions, error) {
	configuration := builder.resolveConfiguration()

	directoryFlagValue, directoryFlagError := flagutils.WorkingDirectoryValue(command)
	if directoryFlagError != nil {
		return CleanOptions{}, directoryFlagError
	}
	workingDirectoryResolver := builder.WorkingDirectoryResolver
	if workingDirectoryResolver == nil {
		workingDirectoryResolver = pathutils.NewWorkingDirectoryResolver()
	}
	workingDirectory, resolveError := workingDirectoryResolver.Resolve(directoryFlagValue)
	if resolveError != nil {
		return CleanOptions{}, fmt.Errorf(commandExecutionErrorTemplateConstant, resolveError)
	}

	packageNameFlagValue, packageNameFlagError := command.Flags().GetString(packageNameFlagNameConstant)
	if packageNameFlagError != nil {
		return CleanOptions{}, packageNameFlagError
	}
	packageName := selectStringValue(packageNameFlagValue, configuration.PackageName)
	if len(packageName) == 0 {
		manifestPackageName, manifestError := NewManifestReader(builder.FileSystem).PackageName(workingDirectory)
		if manifestError != nil {
			return CleanOptions{}, fmt.Errorf(commandExecutionErrorTemplateConstant, manifestError)
		}
		packageName = manifestPackageName
	}

	patternFlagValue, patternFlagError := command.Flags().GetString(patternFlagNameConstant)
	if patternFlagError != nil {
		return CleanOptions{}, patternFlagError
	}
	patternValue := selectStringValue(patternFlagValue, configuration.Pattern)
	compiledPattern, patternError := regexp.Compile(patternValue)
	if patternError != nil {
		return CleanOptions{}, fmt.Errorf(patternParseErrorTemplateConstant, patternValue, patternError)
	}

	return CleanOptions{
		WorkingDirectory: workingDirectory,
		PackageName:      packageName,
		Pattern:          compiledPattern,
		ProtectedTags:    configuration.ProtectedTags,
		MaxAttempts:      configuration.MaxAttempts,
		DryRun:           flagutils.DryRunValue(command, configuration.DryRun),
	}, nil
}

func (builder *CommandBuilder) resolveClient(logger *zap.Logger) (DistTagClient, error) {
	if builder.Client != nil {
		return builder.Client, nil
	}

	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewOSCommandRunner()
	}
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner)
	if executorError != nil {
		return nil, executorError
	}
	return npmcli.NewClient(shellExecutor)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	configuration := DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return configuration.Sanitize()
}

func selectStringValue(flagValue string, configurationValue string) string {
	trimmedFlagValue := strings.TrimSpace(flagValue)
	if len(trimmedFlagValue) > 0 {
		return trimmedFlagValue
	}
	return strings.TrimSpace(configurationValue)
}
