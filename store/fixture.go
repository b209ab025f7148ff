package store

import (
	"fmt"

	"github.com/packbitmap/index/object"
	"github.com/zeebo/xxh3"
)

// Fixture is a small in-memory object store used by tests and the cmd
// example to exercise the builder without a real packfile reader (out of
// scope per spec.md §1). It stores objects in the order they were added,
// which becomes pack order for ObjectAt.
type Fixture struct {
	order    []object.ID
	kinds    map[object.ID]object.Kind
	parents  map[object.ID][]object.ID
	trees    map[object.ID]object.ID
	entries  map[object.ID][]Entry
	checksum object.ID
}

// NewFixture returns an empty fixture store.
func NewFixture() *Fixture {
	return &Fixture{
		kinds:   make(map[object.ID]object.Kind),
		parents: make(map[object.ID][]object.ID),
		trees:   make(map[object.ID]object.ID),
		entries: make(map[object.ID][]Entry),
	}
}

func (f *Fixture) add(id object.ID, kind object.Kind) {
	if _, exists := f.kinds[id]; exists {
		return
	}
	f.kinds[id] = kind
	f.order = append(f.order, id)
}

// AddBlob registers a blob object.
func (f *Fixture) AddBlob(id object.ID) {
	f.add(id, object.KindBlob)
}

// AddTree registers a tree object along with its direct children.
func (f *Fixture) AddTree(id object.ID, entries ...Entry) {
	f.add(id, object.KindTree)
	f.entries[id] = entries
}

// AddTag registers a tag object.
func (f *Fixture) AddTag(id object.ID) {
	f.add(id, object.KindTag)
}

// AddCommit registers a commit object with its tree and parents. Parents
// must already be registered (pack closure, spec §4.1).
func (f *Fixture) AddCommit(id object.ID, tree object.ID, parents ...object.ID) {
	f.add(id, object.KindCommit)
	f.trees[id] = tree
	f.parents[id] = parents
}

// SetChecksum sets the packfile checksum embedded in the index header.
func (f *Fixture) SetChecksum(id object.ID) {
	f.checksum = id
}

func (f *Fixture) NumObjects() int {
	return len(f.order)
}

func (f *Fixture) ObjectAt(i int) (object.ID, object.Kind, error) {
	if i < 0 || i >= len(f.order) {
		return object.ID{}, 0, fmt.Errorf("object index %d out of range", i)
	}
	id := f.order[i]
	return id, f.kinds[id], nil
}

func (f *Fixture) Parents(id object.ID) ([]object.ID, error) {
	parents, ok := f.parents[id]
	if !ok {
		return nil, fmt.Errorf("object %s is not a known commit", id)
	}
	return parents, nil
}

func (f *Fixture) Tree(id object.ID) (object.ID, error) {
	tree, ok := f.trees[id]
	if !ok {
		return object.ID{}, fmt.Errorf("object %s is not a known commit", id)
	}
	return tree, nil
}

func (f *Fixture) Entries(tree object.ID) ([]Entry, error) {
	return f.entries[tree], nil
}

// NameHash is the default canonical name-hint function: an xxh3 hash of
// the discovered path, truncated to 32 bits (spec §4.2).
func (f *Fixture) NameHash(path string) uint32 {
	return uint32(xxh3.HashString(path))
}

func (f *Fixture) Checksum() object.ID {
	return f.checksum
}
