package gitinfo

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/relkit/internal/gitrepo"
	flagutils "github.com/temirov/relkit/internal/utils/flags"
	pathutils "github.com/temirov/relkit/internal/utils/path"
)

const (
	commandUseConstant                      = "git-info"
	commandShortDescriptionConstant         = "Write Git information"
	commandLongDescriptionConstant          = "git-info records the origin remote, branch, and commit of a repository in git-info.json."
	unexpectedArgumentsErrorMessageConstant = "git-info does not accept positional arguments"
	commandExecutionErrorTemplateConstant   = "git-info failed: %w"
	urlStyleParseErrorTemplateConstant      = "invalid url style: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current git-info configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the git-info command.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	ConfigurationProvider    ConfigurationProvider
	FileSystem               afero.Fs
	WorkingDirectoryResolver *pathutils.WorkingDirectoryResolver
}

// Build constructs the git-info command.
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

	directoryFlagValue, directoryFlagError := flagutils.WorkingDirectoryValue(command)
	if directoryFlagError != nil {
		return directoryFlagError
	}

	directory, resolveError := builder.resolveWorkingDirectoryResolver().Resolve(directoryFlagValue)
	if resolveError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, resolveError)
	}

	style, styleError := gitrepo.ParseRemoteStyle(builder.resolveConfiguration().URLStyle)
	if styleError != nil {
		return fmt.Errorf(urlStyleParseErrorTemplateConstant, styleError)
	}

	service := NewService(builder.resolveLogger(), builder.FileSystem, style)
	if _, executionError := service.Execute(directory); executionError != nil {
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

func (builder *CommandBuilder) resolveWorkingDirectoryResolver() *pathutils.WorkingDirectoryResolver {
	if builder.WorkingDirectoryResolver == nil {
		return pathutils.NewWorkingDirectoryResolver()
	}
	return builder.WorkingDirectoryResolver
}
