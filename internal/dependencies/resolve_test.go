package dependencies_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/gitflow/internal/dependencies"
	"github.com/temirov/gitflow/internal/execshell"
	"github.com/temirov/gitflow/internal/filesystem"
)

type stubGitExecutor struct{}

func (stubGitExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func TestResolveGitExecutorPrefersExisting(testInstance *testing.T) {
	existing := stubGitExecutor{}

	resolved, resolveError := dependencies.ResolveGitExecutor(existing, zap.NewNop(), true)

	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, existing, resolved)
}

func TestResolveGitExecutorBuildsShellExecutor(testInstance *testing.T) {
	resolved, resolveError := dependencies.ResolveGitExecutor(nil, nil, false)

	require.NoError(testInstance, resolveError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, resolved)
}

func TestResolveFileSystemDefaultsToOperatingSystem(testInstance *testing.T) {
	require.Equal(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))
}
