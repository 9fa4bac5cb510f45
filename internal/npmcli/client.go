package npmcli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/relkit/internal/execshell"
)

const (
	distTagSubcommandConstant               = "dist-tag"
	listActionConstant                      = "ls"
	removeActionConstant                    = "rm"
	distTagLineSeparatorConstant            = ":"
	outputLineSeparatorConstant             = "\n"
	packageNameFieldNameConstant            = "package_name"
	tagNameFieldNameConstant                = "tag_name"
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "npm cli executor not configured"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	updateNotifierEnvironmentKeyConstant    = "npm_config_update_notifier"
	colorEnvironmentKeyConstant             = "npm_config_color"
	disabledEnvironmentValueConstant        = "false"
	listDistTagsOperationNameConstant       = OperationName("ListDistTags")
	removeDistTagOperationNameConstant      = OperationName("RemoveDistTag")
)

// OperationName describes a named npm CLI workflow supported by the client.
type OperationName string

// DistTag is a single npm distribution tag and the version it points to.
type DistTag struct {
	Name    string
	Version string
}

// NpmCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type NpmCommandExecutor interface {
	ExecuteNpm(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates npm CLI invocations through execshell.
type Client struct {
	executor NpmCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for npm CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// NewClient constructs a Client.
func NewClient(executor NpmCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// ListDistTags returns the dist tags of packageName in the order npm reports them.
func (client *Client) ListDistTags(executionContext context.Context, workingDirectory string, packageName string) ([]DistTag, error) {
	trimmedPackageName := strings.TrimSpace(packageName)
	if len(trimmedPackageName) == 0 {
		return nil, InvalidInputError{FieldName: packageNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	executionResult, executionError := client.executor.ExecuteNpm(executionContext, execshell.CommandDetails{
		Arguments:            []string{distTagSubcommandConstant, listActionConstant, trimmedPackageName},
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: quietEnvironment(),
	})
	if executionError != nil {
		return nil, OperationError{Operation: listDistTagsOperationNameConstant, Cause: executionError}
	}

	return ParseDistTags(executionResult.StandardOutput), nil
}

// RemoveDistTag deletes tagName from packageName.
func (client *Client) RemoveDistTag(executionContext context.Context, workingDirectory string, packageName string, tagName string) error {
	trimmedPackageName := strings.TrimSpace(packageName)
	if len(trimmedPackageName) == 0 {
		return InvalidInputError{FieldName: packageNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	trimmedTagName := strings.TrimSpace(tagName)
	if len(trimmedTagName) == 0 {
		return InvalidInputError{FieldName: tagNameFieldNameConstant, Message: requiredValueMessageConstant}
	}

	_, executionError := client.executor.ExecuteNpm(executionContext, execshell.CommandDetails{
		Arguments:            []string{distTagSubcommandConstant, removeActionConstant, trimmedPackageName, trimmedTagName},
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: quietEnvironment(),
	})
	if executionError != nil {
		return OperationError{Operation: removeDistTagOperationNameConstant, Cause: executionError}
	}
	return nil
}

// quietEnvironment keeps npm output free of update notices and color codes so
// ParseDistTags sees plain lines.
func quietEnvironment() map[string]string {
	return map[string]string{
		updateNotifierEnvironmentKeyConstant: disabledEnvironmentValueConstant,
		colorEnvironmentKeyConstant:          disabledEnvironmentValueConstant,
	}
}

// ParseDistTags reads `tag: version` lines. Lines without a separator or with
// an empty tag name are skipped.
func ParseDistTags(output string) []DistTag {
	distTags := []DistTag{}
	for _, outputLine := range strings.Split(output, outputLineSeparatorConstant) {
		tagName, version, separatorFound := strings.Cut(outputLine, distTagLineSeparatorConstant)
		if !separatorFound {
			continue
		}
		trimmedTagName := strings.TrimSpace(tagName)
		if len(trimmedTagName) == 0 {
			continue
		}
		distTags = append(distTags, DistTag{Name: trimmedTagName, Version: strings.TrimSpace(version)})
	}
	return distTags
}
