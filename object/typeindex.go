package object

import (
	"fmt"

	"github.com/packbitmap/index/rbitmap"
)

// TypeIndex holds the four compressed bitmaps (commits, trees, blobs,
// tags) over the Object Table, set during loading. Together they
// partition [0, N) — every bit belongs to exactly one of the four.
type TypeIndex struct {
	Commits *rbitmap.Compressed
	Trees   *rbitmap.Compressed
	Blobs   *rbitmap.Compressed
	Tags    *rbitmap.Compressed
}

// NewTypeIndex returns an empty TypeIndex.
func NewTypeIndex() *TypeIndex {
	return &TypeIndex{
		Commits: rbitmap.New(),
		Trees:   rbitmap.New(),
		Blobs:   rbitmap.New(),
		Tags:    rbitmap.New(),
	}
}

// Set records that the object at pos has the given kind. An unrecognized
// kind is a fatal invariant violation (spec §4.1, §9 Open Question).
func (ti *TypeIndex) Set(kind Kind, pos uint32) error {
	switch kind {
	case KindCommit:
		ti.Commits.Set(pos)
	case KindTree:
		ti.Trees.Set(pos)
	case KindBlob:
		ti.Blobs.Set(pos)
	case KindTag:
		ti.Tags.Set(pos)
	default:
		return fmt.Errorf("%w: kind %d at position %d", ErrUnknownKind, kind, pos)
	}
	return nil
}
