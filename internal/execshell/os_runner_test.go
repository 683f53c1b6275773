package execshell_test

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitflow/internal/execshell"
)

func requireGitExecutable(testInstance *testing.T) {
	testInstance.Helper()
	if _, lookupError := exec.LookPath(string(execshell.CommandGit)); lookupError != nil {
		testInstance.Skip("git executable not available")
	}
}

func TestOSCommandRunnerCapturesStandardOutput(testInstance *testing.T) {
	requireGitExecutable(testInstance)

	runner := execshell.NewOSCommandRunner()
	result, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"--version"}},
	})

	require.NoError(testInstance, runError)
	require.Zero(testInstance, result.ExitCode)
	require.True(testInstance, strings.HasPrefix(result.StandardOutput, "git version"))
}

func TestOSCommandRunnerReportsNonZeroExitWithoutError(testInstance *testing.T) {
	requireGitExecutable(testInstance)

	missingDirectory := testInstance.TempDir() + "/missing"
	runner := execshell.NewOSCommandRunner()
	result, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"-C", missingDirectory, "status"}},
	})

	require.NoError(testInstance, runError)
	require.NotZero(testInstance, result.ExitCode)
	require.Contains(testInstance, result.StandardError, missingDirectory)
}

func TestOSCommandRunnerAppliesEnvironmentOverrides(testInstance *testing.T) {
	requireGitExecutable(testInstance)

	runner := execshell.NewOSCommandRunner()
	result, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:            []string{"var", "GIT_AUTHOR_IDENT"},
			WorkingDirectory:     testInstance.TempDir(),
			EnvironmentVariables: map[string]string{"GIT_AUTHOR_NAME": "Release Bot", "GIT_AUTHOR_EMAIL": "release@example.com"},
		},
	})

	require.NoError(testInstance, runError)
	require.Zero(testInstance, result.ExitCode)
	require.True(testInstance, strings.HasPrefix(result.StandardOutput, "Release Bot <release@example.com>"))
}

func TestOSCommandRunnerReturnsErrorForMissingExecutable(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()
	_, runError := runner.Run(context.Background(), execshell.ShellCommand{Name: execshell.CommandName("gitflow-missing-executable")})

	require.Error(testInstance, runError)
}
