// Package gitflow drives a single git repository through the GitFlow branching
// conventions by invoking the git executable. A Session binds a repository path
// and exposes feature, release, and hotfix branch helpers alongside init, branch,
// merge, tag, and push operations. Failures surface as typed errors carrying
// git's own diagnostic. CommandBuilder exposes the same operations as Cobra commands.
package gitflow
