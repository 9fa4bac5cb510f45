package execshell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/relkit/internal/execshell"
)

const (
	testPackageNameConstant      = "relkit"
	testTagNameConstant          = "branch-main"
	testWorkingDirectoryConstant = "/workspace/package"
	testDistTagListingConstant   = "latest: 1.4.0\nbranch-main: 1.4.0-branch-main.3\n"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.executionResult, runner.executionError
}

type expectedLogEntry struct {
	level   zapcore.Level
	message string
}

func TestNewShellExecutorRequiresCollaborators(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectedError error
	}{
		{
			name:          "missing_logger",
			runner:        &recordingCommandRunner{},
			expectedError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:          "missing_runner",
			logger:        zap.NewNop(),
			expectedError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:   "configured",
			logger: zap.NewNop(),
			runner: &recordingCommandRunner{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner)
			if testCase.expectedError != nil {
				require.ErrorIs(subtest, creationError, testCase.expectedError)
				require.Nil(subtest, executor)
				return
			}
			require.NoError(subtest, creationError)
			require.NotNil(subtest, executor)
		})
	}
}

func TestShellExecutorNpmLifecycle(testInstance *testing.T) {
	listArguments := []string{"dist-tag", "ls", testPackageNameConstant}
	removeArguments := []string{"dist-tag", "rm", testPackageNameConstant, testTagNameConstant}

	testCases := []struct {
		name           string
		arguments      []string
		runner         *recordingCommandRunner
		expectedOutput string
		expectedError  any
		expectedLogs   []expectedLogEntry
	}{
		{
			name:           "list_succeeds",
			arguments:      listArguments,
			runner:         &recordingCommandRunner{executionResult: execshell.ExecutionResult{StandardOutput: testDistTagListingConstant}},
			expectedOutput: testDistTagListingConstant,
			expectedLogs: []expectedLogEntry{
				{level: zapcore.DebugLevel, message: "Listing dist tags for relkit"},
				{level: zapcore.DebugLevel, message: "Listed dist tags for relkit"},
			},
		},
		{
			name:          "remove_exits_non_zero",
			arguments:     removeArguments,
			runner:        &recordingCommandRunner{executionResult: execshell.ExecutionResult{ExitCode: 1, StandardError: "npm ERR! code E404\n"}},
			expectedError: execshell.CommandFailedError{},
			expectedLogs: []expectedLogEntry{
				{level: zapcore.DebugLevel, message: "Removing dist tag branch-main from relkit"},
				{level: zapcore.WarnLevel, message: "Failed to remove dist tag branch-main from relkit (exit code 1: npm ERR! code E404)"},
			},
		},
		{
			name:          "remove_cannot_start",
			arguments:     removeArguments,
			runner:        &recordingCommandRunner{executionError: errors.New("exec: \"npm\": executable file not found in $PATH")},
			expectedError: execshell.CommandExecutionError{},
			expectedLogs: []expectedLogEntry{
				{level: zapcore.DebugLevel, message: "Removing dist tag branch-main from relkit"},
				{level: zapcore.ErrorLevel, message: "Unable to remove dist tag branch-main from relkit: exec: \"npm\": executable file not found in $PATH"},
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			observerCore, observedLogs := observer.New(zap.DebugLevel)
			executor, creationError := execshell.NewShellExecutor(zap.New(observerCore), testCase.runner)
			require.NoError(subtest, creationError)

			executionResult, executionError := executor.ExecuteNpm(context.Background(), execshell.CommandDetails{
				Arguments:        testCase.arguments,
				WorkingDirectory: testWorkingDirectoryConstant,
			})

			if testCase.expectedError != nil {
				require.Error(subtest, executionError)
				require.IsType(subtest, testCase.expectedError, executionError)
				require.Empty(subtest, executionResult.StandardOutput)
			} else {
				require.NoError(subtest, executionError)
				require.Equal(subtest, testCase.expectedOutput, executionResult.StandardOutput)
			}

			require.Len(subtest, testCase.runner.recordedCommands, 1)
			require.Equal(subtest, execshell.CommandNpm, testCase.runner.recordedCommands[0].Name)
			require.Equal(subtest, testCase.arguments, testCase.runner.recordedCommands[0].Details.Arguments)

			loggedEntries := observedLogs.All()
			require.Len(subtest, loggedEntries, len(testCase.expectedLogs))
			for entryIndex, expectedEntry := range testCase.expectedLogs {
				require.Equal(subtest, expectedEntry.level, loggedEntries[entryIndex].Level)
				require.Equal(subtest, expectedEntry.message, loggedEntries[entryIndex].Message)
				require.Equal(subtest, testWorkingDirectoryConstant, loggedEntries[entryIndex].ContextMap()["working_directory"])
			}
		})
	}
}

func TestShellExecutorErrorsDescribeCommand(testInstance *testing.T) {
	runnerFailure := errors.New("executable file not found")
	commandDetails := execshell.CommandDetails{Arguments: []string{"dist-tag", "rm", testPackageNameConstant, testTagNameConstant}, WorkingDirectory: testWorkingDirectoryConstant}

	testCases := []struct {
		name            string
		runner          *recordingCommandRunner
		expectedMessage string
	}{
		{
			name:            "non_zero_exit",
			runner:          &recordingCommandRunner{executionResult: execshell.ExecutionResult{ExitCode: 1, StandardError: " npm ERR! 404 \n"}},
			expectedMessage: "npm dist-tag rm relkit branch-main (in /workspace/package) failed with exit code 1: npm ERR! 404",
		},
		{
			name:            "runner_failure",
			runner:          &recordingCommandRunner{executionError: runnerFailure},
			expectedMessage: "npm dist-tag rm relkit branch-main (in /workspace/package) failed: executable file not found",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			executor, creationError := execshell.NewShellExecutor(zap.NewNop(), testCase.runner)
			require.NoError(subtest, creationError)

			_, executionError := executor.ExecuteNpm(context.Background(), commandDetails)
			require.EqualError(subtest, executionError, testCase.expectedMessage)
		})
	}

	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), &recordingCommandRunner{executionError: runnerFailure})
	require.NoError(testInstance, creationError)
	_, executionError := executor.ExecuteNpm(context.Background(), commandDetails)
	require.ErrorIs(testInstance, executionError, runnerFailure)
}
