// Package shared declares the collaborator interfaces exchanged between the
// gitflow session, its command builders, and dependency resolution.
package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/gitflow/internal/execshell"
)

// OriginRemoteNameConstant identifies the remote used when none is configured.
const OriginRemoteNameConstant = "origin"

// GitExecutor exposes the subset of shell execution used by the repository session.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileSystem exposes the filesystem queries required before git is invoked.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
}
