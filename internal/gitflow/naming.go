package gitflow

// BranchKind identifies a GitFlow branch family.
type BranchKind string

// Supported branch families and their name prefixes.
const (
	BranchKindFeature BranchKind = "feature"
	BranchKindRelease BranchKind = "release"
	BranchKindHotfix  BranchKind = "hotfix"

	branchPrefixSeparatorConstant = "/"
)

// Prefix returns the branch name prefix for the family, e.g. "feature/".
func (kind BranchKind) Prefix() string {
	return string(kind) + branchPrefixSeparatorConstant
}

// BranchName prepends the family prefix to name without validating either part.
func (kind BranchKind) BranchName(name string) string {
	return kind.Prefix() + name
}
