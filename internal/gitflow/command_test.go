package gitflow_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gitflow/internal/execshell"
	"github.com/temirov/gitflow/internal/gitflow"
	"github.com/temirov/gitflow/internal/utils"
	pathutils "github.com/temirov/gitflow/internal/utils/path"
)

const (
	commandConfiguredRepositoryConstant = "/srv/configured"
	commandOverrideRepositoryConstant   = "/srv/override"
	commandConfiguredRemoteConstant     = "upstream"
	commandHomeDirectoryConstant        = "/home/gitflow"
)

func buildRootCommand(testInstance *testing.T, builder *gitflow.CommandBuilder) (*cobra.Command, *bytes.Buffer) {
	testInstance.Helper()
	commands, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	rootCommand := &cobra.Command{Use: "gitflow", SilenceUsage: true, SilenceErrors: true}
	rootCommand.AddCommand(commands...)

	outputBuffer := &bytes.Buffer{}
	rootCommand.SetOut(outputBuffer)
	rootCommand.SetErr(&bytes.Buffer{})
	return rootCommand, outputBuffer
}

func TestCommandBuilderRunsSessionOperations(testInstance *testing.T) {
	testCases := []struct {
		name              string
		arguments         []string
		configuration     gitflow.CommandConfiguration
		expectedArguments []string
	}{
		{
			name:              "current",
			arguments:         []string{"current"},
			expectedArguments: []string{"symbolic-ref", "--short", "HEAD"},
		},
		{
			name:              "branch_create",
			arguments:         []string{"branch", "create", "develop"},
			expectedArguments: []string{"checkout", "-b", "develop"},
		},
		{
			name:              "branch_delete",
			arguments:         []string{"branch", "delete", "feature/done"},
			expectedArguments: []string{"branch", "-d", "feature/done"},
		},
		{
			name:              "branch_force_delete",
			arguments:         []string{"branch", "delete", "feature/wip", "--force"},
			expectedArguments: []string{"branch", "-D", "feature/wip"},
		},
		{
			name:              "feature_start",
			arguments:         []string{"feature", "start", "login"},
			expectedArguments: []string{"checkout", "-b", "feature/login"},
		},
		{
			name:              "release_start",
			arguments:         []string{"release", "start", "2.0.0"},
			expectedArguments: []string{"checkout", "-b", "release/2.0.0"},
		},
		{
			name:              "hotfix_start",
			arguments:         []string{"hotfix", "start", "urgent"},
			expectedArguments: []string{"checkout", "-b", "hotfix/urgent"},
		},
		{
			name:              "merge",
			arguments:         []string{"merge", "release/2.0.0"},
			expectedArguments: []string{"merge", "release/2.0.0"},
		},
		{
			name:              "lightweight_tag",
			arguments:         []string{"tag", "v2"},
			expectedArguments: []string{"tag", "v2"},
		},
		{
			name:              "annotated_tag",
			arguments:         []string{"tag", "v1", "-m", "first release"},
			expectedArguments: []string{"tag", "-a", "v1", "-m", "first release"},
		},
		{
			name:              "push_uses_configuration",
			arguments:         []string{"push", "develop"},
			configuration:     gitflow.CommandConfiguration{RepositoryPath: commandConfiguredRepositoryConstant, RemoteName: commandConfiguredRemoteConstant, PushTags: true},
			expectedArguments: []string{"push", commandConfiguredRemoteConstant, "develop", "--tags"},
		},
		{
			name:              "push_flags_override_configuration",
			arguments:         []string{"push", "--remote", "mirror", "--tags=false"},
			configuration:     gitflow.CommandConfiguration{RepositoryPath: commandConfiguredRepositoryConstant, RemoteName: commandConfiguredRemoteConstant, PushTags: true},
			expectedArguments: []string{"push", "mirror"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configuration := testCase.configuration
			if len(configuration.RepositoryPath) == 0 {
				configuration = gitflow.CommandConfiguration{RepositoryPath: commandConfiguredRepositoryConstant}
			}

			executor := &stubGitExecutor{result: execshell.ExecutionResult{StandardOutput: "done\n"}}
			builder := &gitflow.CommandBuilder{
				ConfigurationProvider: func() gitflow.CommandConfiguration { return configuration },
				GitExecutor:           executor,
				FileSystem:            stubFileSystem{},
			}

			rootCommand, outputBuffer := buildRootCommand(testInstance, builder)
			rootCommand.SetArgs(testCase.arguments)

			require.NoError(testInstance, rootCommand.ExecuteContext(context.Background()))
			require.Len(testInstance, executor.recordedCalls, 1)
			expectedArguments := append([]string{"-C", commandConfiguredRepositoryConstant}, testCase.expectedArguments...)
			require.Equal(testInstance, expectedArguments, executor.recordedCalls[0].Arguments)
			require.Equal(testInstance, "done\n", outputBuffer.String())
		})
	}
}

func TestCommandBuilderRepositoryOverrideFromContext(testInstance *testing.T) {
	executor := &stubGitExecutor{result: execshell.ExecutionResult{StandardOutput: "main\n"}}
	builder := &gitflow.CommandBuilder{
		ConfigurationProvider: func() gitflow.CommandConfiguration {
			return gitflow.CommandConfiguration{RepositoryPath: commandConfiguredRepositoryConstant}
		},
		GitExecutor: executor,
	}

	rootCommand, _ := buildRootCommand(testInstance, builder)
	rootCommand.SetArgs([]string{"current"})
	executionContext := utils.NewCommandContextAccessor().WithRepositoryPath(context.Background(), commandOverrideRepositoryConstant)

	require.NoError(testInstance, rootCommand.ExecuteContext(executionContext))
	require.Len(testInstance, executor.recordedCalls, 1)
	require.Equal(testInstance, commandOverrideRepositoryConstant, executor.recordedCalls[0].Arguments[1])
}

func TestCommandBuilderExpandsHomeDirectory(testInstance *testing.T) {
	executor := &stubGitExecutor{}
	builder := &gitflow.CommandBuilder{
		ConfigurationProvider: func() gitflow.CommandConfiguration {
			return gitflow.CommandConfiguration{RepositoryPath: "~/projects/app"}
		},
		GitExecutor: executor,
		PathResolver: pathutils.NewRepositoryPathResolverWithProvider(func() (string, error) {
			return commandHomeDirectoryConstant, nil
		}),
	}

	rootCommand, _ := buildRootCommand(testInstance, builder)
	rootCommand.SetArgs([]string{"merge", "develop"})

	require.NoError(testInstance, rootCommand.ExecuteContext(context.Background()))
	require.Equal(testInstance, filepath.Join(commandHomeDirectoryConstant, "projects", "app"), executor.recordedCalls[0].Arguments[1])
}

func TestCommandBuilderInitReportsExistingRepository(testInstance *testing.T) {
	executor := &stubGitExecutor{}
	builder := &gitflow.CommandBuilder{
		ConfigurationProvider: func() gitflow.CommandConfiguration {
			return gitflow.CommandConfiguration{RepositoryPath: commandConfiguredRepositoryConstant}
		},
		GitExecutor: executor,
		FileSystem: stubFileSystem{existingPaths: map[string]bool{
			commandConfiguredRepositoryConstant:                        true,
			filepath.Join(commandConfiguredRepositoryConstant, ".git"): true,
		}},
	}

	rootCommand, outputBuffer := buildRootCommand(testInstance, builder)
	rootCommand.SetArgs([]string{"init"})

	require.NoError(testInstance, rootCommand.ExecuteContext(context.Background()))
	require.Empty(testInstance, executor.recordedCalls)
	require.Equal(testInstance, "Repository already initialized at "+commandConfiguredRepositoryConstant+"\n", outputBuffer.String())
}

func TestCommandBuilderPropagatesTypedErrors(testInstance *testing.T) {
	executor := &stubGitExecutor{err: failedCommand(testUnknownMergeDiagnostic, 1)}
	builder := &gitflow.CommandBuilder{
		ConfigurationProvider: func() gitflow.CommandConfiguration {
			return gitflow.CommandConfiguration{RepositoryPath: commandConfiguredRepositoryConstant}
		},
		GitExecutor: executor,
	}

	rootCommand, outputBuffer := buildRootCommand(testInstance, builder)
	rootCommand.SetArgs([]string{"merge", "nonexistent"})

	executionError := rootCommand.ExecuteContext(context.Background())
	var mergeError gitflow.MergeError
	require.ErrorAs(testInstance, executionError, &mergeError)
	require.Empty(testInstance, outputBuffer.String())
}

func TestCommandBuilderRejectsUnexpectedArguments(testInstance *testing.T) {
	executor := &stubGitExecutor{}
	builder := &gitflow.CommandBuilder{GitExecutor: executor}

	rootCommand, _ := buildRootCommand(testInstance, builder)
	rootCommand.SetArgs([]string{"current", "extra"})

	require.Error(testInstance, rootCommand.ExecuteContext(context.Background()))
	require.Empty(testInstance, executor.recordedCalls)
}

func TestCommandBuilderLogsSessionReady(testInstance *testing.T) {
	observerCore, observerLogs := observer.New(zap.DebugLevel)
	executor := &stubGitExecutor{}
	builder := &gitflow.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.New(observerCore) },
		ConfigurationProvider: func() gitflow.CommandConfiguration {
			return gitflow.CommandConfiguration{RepositoryPath: commandConfiguredRepositoryConstant}
		},
		GitExecutor: executor,
	}

	rootCommand, _ := buildRootCommand(testInstance, builder)
	rootCommand.SetArgs([]string{"current"})
	require.NoError(testInstance, rootCommand.ExecuteContext(context.Background()))

	entries := observerLogs.FilterField(zap.String("repository_path", commandConfiguredRepositoryConstant)).All()
	require.Len(testInstance, entries, 1)
	require.Equal(testInstance, "gitflow session ready", entries[0].Message)
}
