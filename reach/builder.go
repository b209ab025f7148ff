// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package reach implements the Bitmap Builder (spec §4.4): it walks
// selected commits in reverse order, producing one reachability bitmap
// per selected commit, reusing earlier bitmaps as memoized sub-results.
// This is the hard core of the index builder: the inclusion predicate
// below turns an O(selected * reachable) computation into one that is
// roughly O(reachable) amortized.
package reach

import (
	"fmt"

	"github.com/kelindar/bitmap"
	"github.com/packbitmap/index/object"
	"github.com/packbitmap/index/rbitmap"
	"github.com/packbitmap/index/walk"
)

// Selected is a bitmapped commit: a selected-commit record across its
// entire lifecycle (spec §3). WriteAs, XOROffset and WritePos are filled
// in later, by the XOR Compressor and Serializer respectively.
type Selected struct {
	CommitID  object.ID
	Bitmap    *rbitmap.Compressed // full reachability bitmap, owned here
	WriteAs   *rbitmap.Compressed // the variant actually written to disk
	XOROffset int                 // in [0, 10]; 0 means verbatim
	Flags     uint8
	WritePos  uint32
}

// Builder produces reachability bitmaps for a set of selected commits.
type Builder struct {
	table    *object.Table
	walker   walk.Walker
	ancestry walk.Ancestry
}

// New returns a Bitmap Builder over table, using walker to traverse the
// graph and ancestry to decide carry-over between consecutive selected
// commits.
func New(table *object.Table, walker walk.Walker, ancestry walk.Ancestry) *Builder {
	return &Builder{table: table, walker: walker, ancestry: ancestry}
}

// Build computes one reachability bitmap per entry of selectedIDs, which
// must be in forward selection order (spec §4.3's output order). The
// returned slice preserves that order; bitmaps are filled internally by
// iterating in reverse, per spec §4.4.
func (b *Builder) Build(selectedIDs []object.ID) ([]*Selected, error) {
	selected := make([]*Selected, len(selectedIDs))
	for i, id := range selectedIDs {
		selected[i] = &Selected{CommitID: id}
	}

	var base bitmap.Bitmap
	bitmapIndex := make(map[object.ID]*Selected, len(selected))

	for i := len(selected) - 1; i >= 0; i-- {
		s := selected[i]

		// Carry-over decision (spec §4.4 step 1): only reset when the
		// previously processed selected commit (in this reverse walk,
		// the one at i+1) is not an ancestor of s.
		if i < len(selected)-1 {
			prev := selected[i+1]
			isAncestor, err := b.ancestry.IsAncestor(prev.CommitID, s.CommitID)
			if err != nil {
				return nil, fmt.Errorf("ancestry test %s -> %s: %w", prev.CommitID, s.CommitID, err)
			}
			if !isAncestor {
				rbitmap.ClearAll(base)
			}
		}

		if err := b.walkOne(s, &base, bitmapIndex); err != nil {
			return nil, err
		}

		s.Bitmap = rbitmap.FromUncompressed(base)
		if _, dup := bitmapIndex[s.CommitID]; dup {
			return nil, fmt.Errorf("%w: commit %s already has a computed bitmap", object.ErrDuplicateObject, s.CommitID)
		}
		bitmapIndex[s.CommitID] = s
	}

	return selected, nil
}

// walkOne runs the revision walk for a single selected commit, applying
// the inclusion predicate (spec §4.4's "memoization rule").
func (b *Builder) walkOne(s *Selected, base *bitmap.Bitmap, bitmapIndex map[object.ID]*Selected) error {
	seenBit := func(pos uint32) bool {
		return int(pos) < len(*base)<<6 && base.Contains(pos)
	}

	hooks := walk.Hooks{
		Seen: func(id object.ID) bool {
			pos, err := b.table.Position(id)
			if err != nil {
				return false
			}
			return seenBit(pos)
		},
		IncludeCommit: func(id object.ID) (bool, error) {
			pos, err := b.table.Position(id)
			if err != nil {
				return false, err
			}

			if seenBit(pos) {
				// Early termination: already accounted for. Pure
				// optimization, no new reachability to absorb.
				return false, nil
			}

			if memoized, ok := bitmapIndex[id]; ok {
				// The commit already has a computed bitmap: absorb its
				// entire reachability in one OR, instead of re-walking
				// its ancestry. This is the memoization step that makes
				// the whole build roughly linear.
				memoized.Bitmap.OrInto(base)
				return false, nil
			}

			base.Set(pos)
			return true, nil
		},
		VisitObject: func(id object.ID, kind object.Kind, path string) error {
			pos, err := b.table.Position(id)
			if err != nil {
				return err
			}
			base.Set(pos)
			return nil
		},
	}

	return b.walker.Walk([]object.ID{s.CommitID}, hooks)
}
