package sourcemaps

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	flagutils "github.com/temirov/relkit/internal/utils/flags"
	pathutils "github.com/temirov/relkit/internal/utils/path"
)

const (
	commandUseConstant                      = "source-maps"
	commandShortDescriptionConstant         = "Relocate TypeScript sources and rewrite source maps"
	commandLongDescriptionConstant          = "source-maps moves TypeScript sources into the source directory and points the generated .d.ts.map and .js.map files at the relocated sources."
	unexpectedArgumentsErrorMessageConstant = "source-maps does not accept positional arguments"
	commandExecutionErrorTemplateConstant   = "source-maps failed: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current source-maps configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the source-maps command.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	ConfigurationProvider    ConfigurationProvider
	FileSystem               afero.Fs
	WorkingDirectoryResolver *pathutils.WorkingDirectoryResolver
}

// Build constructs the source-maps command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	flagutils.BindWorkingDirectoryFlag(command)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	configuration := builder.resolveConfiguration()

	directoryFlagValue, directoryFlagError := flagutils.WorkingDirectoryValue(command)
	if directoryFlagError != nil {
		return directoryFlagError
	}

	workingDirectoryResolver := builder.WorkingDirectoryResolver
	if workingDirectoryResolver == nil {
		workingDirectoryResolver = pathutils.NewWorkingDirectoryResolver()
	}
	workingDirectory, resolveError := workingDirectoryResolver.Resolve(directoryFlagValue)
	if resolveError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, resolveError)
	}

	options := RelocationOptions{
		WorkingDirectory: workingDirectory,
		DryRun:           flagutils.DryRunValue(command, configuration.DryRun),
	}

	service := NewService(builder.resolveLogger(), builder.FileSystem, configuration)
	if _, executionError := service.Execute(options); executionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, executionError)
	}

	return nil
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
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return builder.ConfigurationProvider()
}
