// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package store declares the object-store collaborator spec.md treats as
// external and out of scope (packfile parsing, object lookup, commit
// parsing, name-hint hashing). The builder only depends on this
// interface; Fixture is an in-memory reference implementation used by
// tests and the cmd example, not a packfile reader.
package store

import "github.com/packbitmap/index/object"

// Store is everything the Closure Loader, Name-Hint Collector and
// Selector need from the packfile / object database.
type Store interface {
	// NumObjects returns the number of objects packed.
	NumObjects() int

	// ObjectAt returns the identifier and kind of the i-th packed object,
	// in pack order.
	ObjectAt(i int) (object.ID, object.Kind, error)

	// Parents returns the parent commit identifiers of a commit.
	Parents(id object.ID) ([]object.ID, error)

	// Tree returns the tree object a commit points to.
	Tree(id object.ID) (object.ID, error)

	// Entries returns a tree's direct children along with the discovered
	// path segment for each, as (id, kind, name) triples. A tree entry's
	// kind is KindTree or KindBlob.
	Entries(tree object.ID) ([]Entry, error)

	// NameHash computes the canonical name-hint hash for a discovered
	// path (spec §4.2). Provided by the object store in a real
	// deployment; Fixture ships a default xxh3-based implementation.
	NameHash(path string) uint32

	// Checksum returns the companion packfile's identifier, embedded
	// verbatim in the index header (spec §6).
	Checksum() object.ID
}

// Entry is one child of a tree: another tree, or a blob.
type Entry struct {
	ID   object.ID
	Kind object.Kind
	Name string
}
