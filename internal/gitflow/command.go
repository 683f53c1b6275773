package gitflow

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitflow/internal/dependencies"
	"github.com/temirov/gitflow/internal/shared"
	"github.com/temirov/gitflow/internal/utils"
	pathutils "github.com/temirov/gitflow/internal/utils/path"
)

const (
	initCommandUseConstant              = "init"
	initCommandShortDescriptionConstant = "Initialize a git repository unless one already exists"
	initAlreadyPresentTemplateConstant  = "Repository already initialized at %s"

	currentCommandUseConstant              = "current"
	currentCommandShortDescriptionConstant = "Print the name of the current branch"

	branchCommandUseConstant                    = "branch"
	branchCommandShortDescriptionConstant       = "Create or delete local branches"
	branchCreateCommandUseConstant              = "create <name>"
	branchCreateCommandShortDescriptionConstant = "Create a branch at HEAD and switch to it"
	branchDeleteCommandUseConstant              = "delete <name>"
	branchDeleteCommandShortDescriptionConstant = "Delete a local branch"
	flagForceNameConstant                       = "force"
	flagForceDescriptionConstant                = "Delete the branch even when it has unmerged commits"

	featureCommandUseConstant              = "feature"
	featureCommandShortDescriptionConstant = "Work with feature/ branches"
	featureStartCommandUseConstant         = "start <name>"
	featureStartShortDescriptionConstant   = "Create and switch to feature/<name>"

	releaseCommandUseConstant              = "release"
	releaseCommandShortDescriptionConstant = "Work with release/ branches"
	releaseStartCommandUseConstant         = "start <version>"
	releaseStartShortDescriptionConstant   = "Create and switch to release/<version>"

	hotfixCommandUseConstant              = "hotfix"
	hotfixCommandShortDescriptionConstant = "Work with hotfix/ branches"
	hotfixStartCommandUseConstant         = "start <name>"
	hotfixStartShortDescriptionConstant   = "Create and switch to hotfix/<name>"

	mergeCommandUseConstant              = "merge <branch>"
	mergeCommandShortDescriptionConstant = "Merge a branch into the current branch"

	tagCommandUseConstant              = "tag <name>"
	tagCommandShortDescriptionConstant = "Tag HEAD, annotated when a message is provided"
	flagMessageNameConstant            = "message"
	flagMessageShorthandConstant       = "m"
	flagMessageDescriptionConstant     = "Annotation message; omit for a lightweight tag"

	pushCommandUseConstant              = "push [branch]"
	pushCommandShortDescriptionConstant = "Push a branch and optionally tags to a remote"
	flagRemoteNameConstant              = "remote"
	flagRemoteDescriptionConstant       = "Remote to push to"
	flagTagsNameConstant                = "tags"
	flagTagsDescriptionConstant         = "Push all tags as well"

	sessionCreationErrorTemplateConstant = "unable to open repository session: %w"
	logMessageSessionReadyConstant       = "gitflow session ready"
	logFieldRepositoryPathConstant       = "repository_path"
	logFieldCommandNameConstant          = "command_name"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current gitflow configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the Cobra commands backed by a repository Session.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        ConfigurationProvider
	GitExecutor                  shared.GitExecutor
	FileSystem                   shared.FileSystem
	PathResolver                 *pathutils.RepositoryPathResolver
}

// Build constructs the top-level gitflow commands.
func (builder *CommandBuilder) Build() ([]*cobra.Command, error) {
	return []*cobra.Command{
		builder.buildInitCommand(),
		builder.buildCurrentCommand(),
		builder.buildBranchCommand(),
		builder.buildPrefixedBranchCommand(featureCommandUseConstant, featureCommandShortDescriptionConstant, featureStartCommandUseConstant, featureStartShortDescriptionConstant, BranchKindFeature),
		builder.buildPrefixedBranchCommand(releaseCommandUseConstant, releaseCommandShortDescriptionConstant, releaseStartCommandUseConstant, releaseStartShortDescriptionConstant, BranchKindRelease),
		builder.buildPrefixedBranchCommand(hotfixCommandUseConstant, hotfixCommandShortDescriptionConstant, hotfixStartCommandUseConstant, hotfixStartShortDescriptionConstant, BranchKindHotfix),
		builder.buildMergeCommand(),
		builder.buildTagCommand(),
		builder.buildPushCommand(),
	}, nil
}

func (builder *CommandBuilder) buildInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   initCommandUseConstant,
		Short: initCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			session, sessionError := builder.openSession(command)
			if sessionError != nil {
				return sessionError
			}
			result, initializeError := session.Initialize(command.Context())
			if initializeError != nil {
				return initializeError
			}
			if result.AlreadyInitialized {
				return writeOutput(command, fmt.Sprintf(initAlreadyPresentTemplateConstant, result.RepositoryPath))
			}
			return writeOutput(command, result.Output)
		},
	}
}

func (builder *CommandBuilder) buildCurrentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   currentCommandUseConstant,
		Short: currentCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: builder.sessionAction(func(executionContext context.Context, session *Session, _ *cobra.Command, _ []string) (string, error) {
			return session.CurrentBranch(executionContext)
		}),
	}
}

func (builder *CommandBuilder) buildBranchCommand() *cobra.Command {
	branchCommand := &cobra.Command{
		Use:   branchCommandUseConstant,
		Short: branchCommandShortDescriptionConstant,
	}

	createCommand := &cobra.Command{
		Use:   branchCreateCommandUseConstant,
		Short: branchCreateCommandShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE: builder.sessionAction(func(executionContext context.Context, session *Session, _ *cobra.Command, arguments []string) (string, error) {
			return session.CreateBranch(executionContext, arguments[0])
		}),
	}

	deleteCommand := &cobra.Command{
		Use:   branchDeleteCommandUseConstant,
		Short: branchDeleteCommandShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE: builder.sessionAction(func(executionContext context.Context, session *Session, command *cobra.Command, arguments []string) (string, error) {
			forceValue, _ := command.Flags().GetBool(flagForceNameConstant)
			return session.DeleteBranch(executionContext, arguments[0], forceValue)
		}),
	}
	deleteCommand.Flags().Bool(flagForceNameConstant, false, flagForceDescriptionConstant)

	branchCommand.AddCommand(createCommand, deleteCommand)
	return branchCommand
}

func (builder *CommandBuilder) buildPrefixedBranchCommand(use string, short string, startUse string, startShort string, kind BranchKind) *cobra.Command {
	groupCommand := &cobra.Command{
		Use:   use,
		Short: short,
	}

	startCommand := &cobra.Command{
		Use:   startUse,
		Short: startShort,
		Args:  cobra.ExactArgs(1),
		RunE: builder.sessionAction(func(executionContext context.Context, session *Session, _ *cobra.Command, arguments []string) (string, error) {
			switch kind {
			case BranchKindRelease:
				return session.CreateReleaseBranch(executionContext, arguments[0])
			case BranchKindHotfix:
				return session.CreateHotfixBranch(executionContext, arguments[0])
			default:
				return session.CreateFeatureBranch(executionContext, arguments[0])
			}
		}),
	}

	groupCommand.AddCommand(startCommand)
	return groupCommand
}

func (builder *CommandBuilder) buildMergeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   mergeCommandUseConstant,
		Short: mergeCommandShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE: builder.sessionAction(func(executionContext context.Context, session *Session, _ *cobra.Command, arguments []string) (string, error) {
			return session.MergeBranch(executionContext, arguments[0])
		}),
	}
}

func (builder *CommandBuilder) buildTagCommand() *cobra.Command {
	tagCommand := &cobra.Command{
		Use:   tagCommandUseConstant,
		Short: tagCommandShortDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE: builder.sessionAction(func(executionContext context.Context, session *Session, command *cobra.Command, arguments []string) (string, error) {
			messageValue, _ := command.Flags().GetString(flagMessageNameConstant)
			return session.CreateTag(executionContext, arguments[0], messageValue)
		}),
	}
	tagCommand.Flags().StringP(flagMessageNameConstant, flagMessageShorthandConstant, "", flagMessageDescriptionConstant)
	return tagCommand
}

func (builder *CommandBuilder) buildPushCommand() *cobra.Command {
	pushCommand := &cobra.Command{
		Use:   pushCommandUseConstant,
		Short: pushCommandShortDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE: builder.sessionAction(func(executionContext context.Context, session *Session, command *cobra.Command, arguments []string) (string, error) {
			return session.Push(executionContext, builder.parsePushOptions(command, arguments))
		}),
	}
	pushCommand.Flags().String(flagRemoteNameConstant, "", flagRemoteDescriptionConstant)
	pushCommand.Flags().Bool(flagTagsNameConstant, false, flagTagsDescriptionConstant)
	return pushCommand
}

func (builder *CommandBuilder) parsePushOptions(command *cobra.Command, arguments []string) PushOptions {
	configuration := builder.resolveConfiguration()
	options := PushOptions{Remote: configuration.RemoteName, PushTags: configuration.PushTags}

	if command.Flags().Changed(flagRemoteNameConstant) {
		options.Remote, _ = command.Flags().GetString(flagRemoteNameConstant)
	}
	if command.Flags().Changed(flagTagsNameConstant) {
		options.PushTags, _ = command.Flags().GetBool(flagTagsNameConstant)
	}
	if len(arguments) > 0 {
		options.BranchName = arguments[0]
	}
	return options
}

type sessionOperation func(executionContext context.Context, session *Session, command *cobra.Command, arguments []string) (string, error)

func (builder *CommandBuilder) sessionAction(operation sessionOperation) func(*cobra.Command, []string) error {
	return func(command *cobra.Command, arguments []string) error {
		session, sessionError := builder.openSession(command)
		if sessionError != nil {
			return sessionError
		}
		output, operationError := operation(command.Context(), session, command, arguments)
		if operationError != nil {
			return operationError
		}
		return writeOutput(command, output)
	}
}

func (builder *CommandBuilder) openSession(command *cobra.Command) (*Session, error) {
	logger := builder.resolveLogger()

	repositoryPath, pathError := builder.resolveRepositoryPath(command.Context())
	if pathError != nil {
		return nil, fmt.Errorf(sessionCreationErrorTemplateConstant, pathError)
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.humanReadableLogging())
	if executorError != nil {
		return nil, fmt.Errorf(sessionCreationErrorTemplateConstant, executorError)
	}

	session, sessionError := NewSession(repositoryPath, SessionDependencies{
		GitExecutor: gitExecutor,
		FileSystem:  dependencies.ResolveFileSystem(builder.FileSystem),
	})
	if sessionError != nil {
		return nil, fmt.Errorf(sessionCreationErrorTemplateConstant, sessionError)
	}

	logger.Debug(logMessageSessionReadyConstant,
		zap.String(logFieldCommandNameConstant, command.CommandPath()),
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
	)
	return session, nil
}

func (builder *CommandBuilder) resolveRepositoryPath(executionContext context.Context) (string, error) {
	candidatePath := builder.resolveConfiguration().RepositoryPath
	if overridePath, overrideProvided := utils.NewCommandContextAccessor().RepositoryPath(executionContext); overrideProvided {
		candidatePath = overridePath
	}

	resolver := builder.PathResolver
	if resolver == nil {
		resolver = pathutils.NewRepositoryPathResolver()
	}
	return resolver.Resolve(candidatePath)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
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

func (builder *CommandBuilder) humanReadableLogging() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func writeOutput(command *cobra.Command, output string) error {
	if len(output) == 0 {
		return nil
	}
	_, writeError := fmt.Fprintln(command.OutOrStdout(), output)
	return writeError
}
