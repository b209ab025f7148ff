package object

import "errors"

// Sentinel errors for the invariant violations spec §7 names. Components
// wrap these with fmt.Errorf("%w: ...") so callers can errors.Is against
// the taxonomy regardless of which stage raised the error.
var (
	// ErrDuplicateObject is raised when an identifier is inserted into the
	// Object Table more than once.
	ErrDuplicateObject = errors.New("duplicate object identifier")

	// ErrClosureViolation is raised when a commit's parent (or any other
	// referenced object) does not resolve to a record in the Object Table.
	ErrClosureViolation = errors.New("packfile lacks closure")

	// ErrUnknownKind is raised when type-index construction encounters an
	// object kind outside {commit, tree, blob, tag}.
	ErrUnknownKind = errors.New("unknown object kind")

	// ErrCommitMismatch is raised when the Name-Hint Collector's commit
	// count disagrees with the Object Table's commit count.
	ErrCommitMismatch = errors.New("commit count mismatch")
)
