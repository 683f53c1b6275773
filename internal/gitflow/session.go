package gitflow

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/temirov/gitflow/internal/execshell"
	"github.com/temirov/gitflow/internal/filesystem"
	"github.com/temirov/gitflow/internal/shared"
)

const (
	gitDirectoryFlagConstant             = "-C"
	gitMetadataDirectoryNameConstant     = ".git"
	gitInitSubcommandConstant            = "init"
	gitSymbolicRefSubcommandConstant     = "symbolic-ref"
	gitShortFlagConstant                 = "--short"
	gitHeadReferenceConstant             = "HEAD"
	gitCheckoutSubcommandConstant        = "checkout"
	gitCreateBranchFlagConstant          = "-b"
	gitBranchSubcommandConstant          = "branch"
	gitDeleteBranchFlagConstant          = "-d"
	gitForceDeleteBranchFlagConstant     = "-D"
	gitMergeSubcommandConstant           = "merge"
	gitTagSubcommandConstant             = "tag"
	gitAnnotatedTagFlagConstant          = "-a"
	gitMessageFlagConstant               = "-m"
	gitPushSubcommandConstant            = "push"
	gitPushTagsFlagConstant              = "--tags"
	gitTerminalPromptEnvironmentName     = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledValueString = "0"
)

// SessionDependencies enumerates collaborators required by the session.
type SessionDependencies struct {
	GitExecutor shared.GitExecutor
	FileSystem  shared.FileSystem
}

// InitializationResult reports the outcome of Initialize.
type InitializationResult struct {
	RepositoryPath     string
	AlreadyInitialized bool
	Output             string
}

// PushOptions selects what Push sends and where. An empty Remote means origin; an empty
// BranchName leaves the choice of branch to git's push configuration.
type PushOptions struct {
	Remote     string
	BranchName string
	PushTags   bool
}

// Session runs GitFlow operations against one repository path. It keeps no state between calls:
// every method is a single git invocation of the form "git -C <path> <subcommand> [args...]".
type Session struct {
	repositoryPath string
	executor       shared.GitExecutor
	fileSystem     shared.FileSystem
}

// NewSession binds a session to repositoryPath. The path is not checked here.
func NewSession(repositoryPath string, dependencies SessionDependencies) (*Session, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return nil, ErrRepositoryPathRequired
	}
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}

	fileSystem := dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}

	return &Session{repositoryPath: trimmedRepositoryPath, executor: dependencies.GitExecutor, fileSystem: fileSystem}, nil
}

// RepositoryPath returns the path the session is bound to.
func (session *Session) RepositoryPath() string {
	return session.repositoryPath
}

// Initialize runs git init unless repository metadata already exists, in which case nothing is invoked.
func (session *Session) Initialize(executionContext context.Context) (InitializationResult, error) {
	if _, statError := session.fileSystem.Stat(session.repositoryPath); statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return InitializationResult{}, NotFoundError{RepositoryPath: session.repositoryPath}
		}
		return InitializationResult{}, InitializationError{RepositoryPath: session.repositoryPath, Cause: statError}
	}

	if _, metadataError := session.fileSystem.Stat(filepath.Join(session.repositoryPath, gitMetadataDirectoryNameConstant)); metadataError == nil {
		return InitializationResult{RepositoryPath: session.repositoryPath, AlreadyInitialized: true}, nil
	}

	output, initError := session.runGit(executionContext, nil, gitInitSubcommandConstant)
	if initError != nil {
		return InitializationResult{}, InitializationError{RepositoryPath: session.repositoryPath, Cause: initError}
	}
	return InitializationResult{RepositoryPath: session.repositoryPath, Output: output}, nil
}

// CurrentBranch returns the short name HEAD points to. It works on an unborn branch and fails on a detached HEAD.
func (session *Session) CurrentBranch(executionContext context.Context) (string, error) {
	output, executionError := session.runGit(executionContext, nil, gitSymbolicRefSubcommandConstant, gitShortFlagConstant, gitHeadReferenceConstant)
	if executionError != nil {
		return "", session.commandError(OperationCurrentBranch, "", executionError)
	}
	return output, nil
}

// CreateBranch creates branchName at HEAD and switches to it. git rejects existing names.
func (session *Session) CreateBranch(executionContext context.Context, branchName string) (string, error) {
	output, executionError := session.runGit(executionContext, nil, gitCheckoutSubcommandConstant, gitCreateBranchFlagConstant, branchName)
	if executionError != nil {
		return "", session.commandError(OperationCreateBranch, branchName, executionError)
	}
	return output, nil
}

// DeleteBranch removes branchName. Without force git refuses to delete unmerged work.
func (session *Session) DeleteBranch(executionContext context.Context, branchName string, force bool) (string, error) {
	deleteFlag := gitDeleteBranchFlagConstant
	if force {
		deleteFlag = gitForceDeleteBranchFlagConstant
	}
	output, executionError := session.runGit(executionContext, nil, gitBranchSubcommandConstant, deleteFlag, branchName)
	if executionError != nil {
		return "", session.commandError(OperationDeleteBranch, branchName, executionError)
	}
	return output, nil
}

// CreateFeatureBranch creates and switches to feature/<featureName>.
func (session *Session) CreateFeatureBranch(executionContext context.Context, featureName string) (string, error) {
	return session.CreateBranch(executionContext, BranchKindFeature.BranchName(featureName))
}

// CreateReleaseBranch creates and switches to release/<version>.
func (session *Session) CreateReleaseBranch(executionContext context.Context, version string) (string, error) {
	return session.CreateBranch(executionContext, BranchKindRelease.BranchName(version))
}

// CreateHotfixBranch creates and switches to hotfix/<hotfixName>.
func (session *Session) CreateHotfixBranch(executionContext context.Context, hotfixName string) (string, error) {
	return session.CreateBranch(executionContext, BranchKindHotfix.BranchName(hotfixName))
}

// MergeBranch merges branchName into the current branch. Conflicts are returned as MergeError and left in place.
func (session *Session) MergeBranch(executionContext context.Context, branchName string) (string, error) {
	output, executionError := session.runGit(executionContext, nil, gitMergeSubcommandConstant, branchName)
	if executionError != nil {
		return "", MergeError{BranchName: branchName, Cause: executionError}
	}
	return output, nil
}

// CreateTag tags HEAD. An empty message creates a lightweight tag; otherwise an annotated tag carrying the message.
func (session *Session) CreateTag(executionContext context.Context, tagName string, message string) (string, error) {
	arguments := []string{gitTagSubcommandConstant, tagName}
	if len(message) > 0 {
		arguments = []string{gitTagSubcommandConstant, gitAnnotatedTagFlagConstant, tagName, gitMessageFlagConstant, message}
	}
	output, executionError := session.runGit(executionContext, nil, arguments...)
	if executionError != nil {
		return "", session.commandError(OperationCreateTag, tagName, executionError)
	}
	return output, nil
}

// Push sends a branch, and optionally all tags, to a remote. Credential prompts are disabled so a push never waits on a terminal.
func (session *Session) Push(executionContext context.Context, options PushOptions) (string, error) {
	remoteName := strings.TrimSpace(options.Remote)
	if len(remoteName) == 0 {
		remoteName = shared.OriginRemoteNameConstant
	}

	arguments := []string{gitPushSubcommandConstant, remoteName}
	if len(options.BranchName) > 0 {
		arguments = append(arguments, options.BranchName)
	}
	if options.PushTags {
		arguments = append(arguments, gitPushTagsFlagConstant)
	}

	environment := map[string]string{gitTerminalPromptEnvironmentName: gitTerminalPromptDisabledValueString}
	output, executionError := session.runGit(executionContext, environment, arguments...)
	if executionError != nil {
		return "", session.commandError(OperationPush, remoteName, executionError)
	}
	return output, nil
}

func (session *Session) runGit(executionContext context.Context, environment map[string]string, arguments ...string) (string, error) {
	gitArguments := make([]string, 0, len(arguments)+2)
	gitArguments = append(gitArguments, gitDirectoryFlagConstant, session.repositoryPath)
	gitArguments = append(gitArguments, arguments...)

	executionResult, executionError := session.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            gitArguments,
		EnvironmentVariables: environment,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

func (session *Session) commandError(operation Operation, target string, cause error) CommandError {
	return CommandError{Operation: operation, Target: target, RepositoryPath: session.repositoryPath, Cause: cause}
}
