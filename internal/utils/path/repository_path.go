package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	tildeSymbolConstant                   = "~"
	repositoryPathRequiredMessageConstant = "repository path must be provided"
	absolutePathErrorTemplateConstant     = "unable to resolve repository path %q: %w"
)

// ErrRepositoryPathRequired indicates an empty repository path was supplied.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// RepositoryPathResolver normalizes user-supplied repository paths into absolute paths.
type RepositoryPathResolver struct {
	homeDirectoryProvider HomeDirectoryProvider
}

// NewRepositoryPathResolver constructs a resolver that expands "~" using the operating system lookup.
func NewRepositoryPathResolver() *RepositoryPathResolver {
	return NewRepositoryPathResolverWithProvider(os.UserHomeDir)
}

// NewRepositoryPathResolverWithProvider constructs a resolver with a custom home directory lookup.
func NewRepositoryPathResolverWithProvider(provider HomeDirectoryProvider) *RepositoryPathResolver {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &RepositoryPathResolver{homeDirectoryProvider: provider}
}

// Resolve trims the candidate, expands a leading "~" or "~/", and returns a cleaned absolute path.
// The path is not required to exist.
func (resolver *RepositoryPathResolver) Resolve(candidatePath string) (string, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return "", ErrRepositoryPathRequired
	}

	expandedPath := resolver.expandHomeDirectory(trimmedPath)
	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return "", fmt.Errorf(absolutePathErrorTemplateConstant, trimmedPath, absoluteError)
	}
	return absolutePath, nil
}

func (resolver *RepositoryPathResolver) expandHomeDirectory(candidatePath string) string {
	if candidatePath != tildeSymbolConstant && !strings.HasPrefix(candidatePath, tildeSymbolConstant+"/") && !strings.HasPrefix(candidatePath, tildeSymbolConstant+string(os.PathSeparator)) {
		return candidatePath
	}

	homeDirectory, homeDirectoryError := resolver.homeDirectoryProvider()
	if homeDirectoryError != nil || len(homeDirectory) == 0 {
		return candidatePath
	}
	return filepath.Join(homeDirectory, strings.TrimPrefix(candidatePath, tildeSymbolConstant))
}
