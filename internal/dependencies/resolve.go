// Package dependencies supplies default implementations for collaborators
// that commands leave unset, so tests can inject stubs while the CLI runs
// against the real git executable and filesystem.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/gitflow/internal/execshell"
	"github.com/temirov/gitflow/internal/filesystem"
	"github.com/temirov/gitflow/internal/shared"
	"github.com/temirov/gitflow/internal/ui"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable logging registers a console observer that narrates each git invocation.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var observers []execshell.CommandEventObserver
	if humanReadableLogging {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}
