package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/relkit/internal/utils/path"
)

const (
	testWorkingDirectoryConstant = "/workspace/project"
	testHomeDirectoryConstant    = "/home/builder"
)

func TestWorkingDirectoryResolverResolve(testInstance *testing.T) {
	testCases := []struct {
		name         string
		candidate    string
		expectedPath string
	}{
		{name: "empty_defaults_to_working_directory", candidate: "", expectedPath: testWorkingDirectoryConstant},
		{name: "whitespace_defaults_to_working_directory", candidate: "   ", expectedPath: testWorkingDirectoryConstant},
		{name: "absolute_path_is_cleaned", candidate: "/opt/build/../dist", expectedPath: "/opt/dist"},
		{name: "relative_path_joins_working_directory", candidate: "packages/core", expectedPath: filepath.Join(testWorkingDirectoryConstant, "packages/core")},
		{name: "tilde_expands_home", candidate: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_prefix_expands_home", candidate: "~/projects/app", expectedPath: filepath.Join(testHomeDirectoryConstant, "projects/app")},
		{name: "tilde_user_form_is_relative", candidate: "~other", expectedPath: filepath.Join(testWorkingDirectoryConstant, "~other")},
	}

	resolver := pathutils.NewWorkingDirectoryResolverWithProviders(
		func() (string, error) { return testWorkingDirectoryConstant, nil },
		func() (string, error) { return testHomeDirectoryConstant, nil },
	)

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolvedPath, resolveError := resolver.Resolve(testCase.candidate)
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedPath, resolvedPath)
		})
	}
}

func TestWorkingDirectoryResolverPropagatesProviderErrors(testInstance *testing.T) {
	providerError := errors.New("home unavailable")
	resolver := pathutils.NewWorkingDirectoryResolverWithProviders(
		func() (string, error) { return testWorkingDirectoryConstant, nil },
		func() (string, error) { return "", providerError },
	)

	_, resolveError := resolver.Resolve("~/project")
	require.ErrorIs(testInstance, resolveError, providerError)

	relativePath, relativeError := resolver.Resolve("project")
	require.NoError(testInstance, relativeError)
	require.Equal(testInstance, filepath.Join(testWorkingDirectoryConstant, "project"), relativePath)
}
