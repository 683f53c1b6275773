package gitflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitflow/internal/execshell"
)

const (
	repositoryPathRequiredMessageConstant = "repository path must be provided"
	gitExecutorMissingMessageConstant     = "git executor not configured"
	notFoundErrorTemplateConstant         = "repository path %q does not exist"
	initializationErrorTemplateConstant   = "failed to initialize git repository at %s: %s"
	mergeErrorTemplateConstant            = "failed to merge branch %q: %s"
	commandErrorTemplateConstant          = "failed to %s in %s: %s"
	unknownFailureMessageConstant         = "unknown error"
)

// ErrRepositoryPathRequired indicates the session was constructed without a repository path.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// Operation names the session action that produced a CommandError.
type Operation string

// Operations reported by CommandError.
const (
	OperationCurrentBranch Operation = "identify the current branch"
	OperationCreateBranch  Operation = "create branch"
	OperationDeleteBranch  Operation = "delete branch"
	OperationCreateTag     Operation = "create tag"
	OperationPush          Operation = "push"
)

// NotFoundError reports that the bound repository path does not exist. Only Initialize checks for it.
type NotFoundError struct {
	RepositoryPath string
}

// Error describes the missing path.
func (failure NotFoundError) Error() string {
	return fmt.Sprintf(notFoundErrorTemplateConstant, failure.RepositoryPath)
}

// InitializationError wraps a failed git init.
type InitializationError struct {
	RepositoryPath string
	Cause          error
}

// Error includes git's diagnostic.
func (failure InitializationError) Error() string {
	return fmt.Sprintf(initializationErrorTemplateConstant, failure.RepositoryPath, describeCause(failure.Cause))
}

// Unwrap exposes the underlying execution failure.
func (failure InitializationError) Unwrap() error {
	return failure.Cause
}

// MergeError wraps a failed merge, including conflicts. The merge is left for the caller to resolve or abort.
type MergeError struct {
	BranchName string
	Cause      error
}

// Error includes git's diagnostic.
func (failure MergeError) Error() string {
	return fmt.Sprintf(mergeErrorTemplateConstant, failure.BranchName, describeCause(failure.Cause))
}

// Unwrap exposes the underlying execution failure.
func (failure MergeError) Unwrap() error {
	return failure.Cause
}

// CommandError wraps any other failed git invocation.
type CommandError struct {
	Operation      Operation
	Target         string
	RepositoryPath string
	Cause          error
}

// Error includes the operation, its target when present, and git's diagnostic.
func (failure CommandError) Error() string {
	operationLabel := string(failure.Operation)
	if len(failure.Target) > 0 {
		operationLabel = fmt.Sprintf("%s %q", operationLabel, failure.Target)
	}
	return fmt.Sprintf(commandErrorTemplateConstant, operationLabel, failure.RepositoryPath, describeCause(failure.Cause))
}

// Unwrap exposes the underlying execution failure.
func (failure CommandError) Unwrap() error {
	return failure.Cause
}

// Diagnostic extracts git's own error text from a session failure, or the error text when git never ran.
func Diagnostic(failure error) string {
	var commandFailedError execshell.CommandFailedError
	if errors.As(failure, &commandFailedError) {
		return commandFailedError.Diagnostic()
	}
	if failure == nil {
		return ""
	}
	return strings.TrimSpace(failure.Error())
}

func describeCause(cause error) string {
	if cause == nil {
		return unknownFailureMessageConstant
	}
	if diagnostic := Diagnostic(cause); len(diagnostic) > 0 {
		return diagnostic
	}
	return cause.Error()
}
