// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package walk declares the revision-walker collaborator spec.md treats
// as external: ordered traversal driven by an inclusion predicate invoked
// before descending into a commit's parents. GraphWalker is an in-memory
// reference implementation used by tests and the cmd example.
package walk

import "github.com/packbitmap/index/object"

// Hooks wires a walk to its caller. This is the "interface — either
// function values with a shared context" the Design Notes call for, in
// place of the original's process-wide object flag bits.
type Hooks struct {
	// Seen reports whether an object (commit, tree, blob or tag) has
	// already been accounted for and should be skipped without further
	// processing or descent. The Bitmap Builder backs it with "is this
	// bit already set in base" and the Name-Hint Collector with its own
	// visited set; neither uses object-embedded flags.
	Seen func(id object.ID) bool

	// IncludeCommit is the inclusion predicate (spec §4.4). It is called
	// once per commit the walker encounters that Seen does not already
	// reject. A true return means the walker descends into the commit's
	// tree and parents; false means it does not, regardless of the
	// reason the caller had for declining.
	IncludeCommit func(id object.ID) (bool, error)

	// VisitObject is called once for each non-commit object (tree, blob,
	// tag) the walker reaches through an included commit's tree, along
	// with the path at which it was discovered.
	VisitObject func(id object.ID, kind object.Kind, path string) error
}

// Walker performs an ordered traversal of the commit/tree/blob graph from
// a set of root commits, applying Hooks at each step.
type Walker interface {
	Walk(roots []object.ID, hooks Hooks) error

	// Linearize returns the commits reachable from heads in the order
	// the Commit Selector should treat as its input (spec §4.3: "the
	// order given is what the walker produced").
	Linearize(heads []object.ID) ([]object.ID, error)
}

// Ancestry answers "is ancestor a transitive parent of descendant", the
// predicate the Bitmap Builder's carry-over decision needs (spec §4.4,
// Design Notes' Open Question).
type Ancestry interface {
	IsAncestor(ancestor, descendant object.ID) (bool, error)
}
