// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package namehint implements the Name-Hint Collector (spec §4.2): a
// revision walk over root commits that records a name_hash per
// non-commit object, used later to aid delta matching during repack.
package namehint

import (
	"fmt"

	"github.com/packbitmap/index/object"
	"github.com/packbitmap/index/store"
	"github.com/packbitmap/index/walk"
)

// Collect walks every commit with Referenced == false (the forest roots)
// and records store.NameHash(path) on each non-commit object it reaches.
// It fails if the number of commits the walk visits disagrees with the
// Object Table's commit count (spec §4.2 post-condition).
func Collect(table *object.Table, st store.Store, walker walk.Walker) error {
	var roots []object.ID
	wantCommits := 0
	for _, rec := range table.Records() {
		if rec.Kind != object.KindCommit {
			continue
		}
		wantCommits++
		if !rec.Referenced {
			roots = append(roots, rec.ID)
		}
	}

	seen := make(map[object.ID]bool, table.Len())
	commitsVisited := 0

	hooks := walk.Hooks{
		Seen: func(id object.ID) bool {
			return seen[id]
		},
		IncludeCommit: func(id object.ID) (bool, error) {
			if seen[id] {
				return false, nil
			}
			seen[id] = true
			commitsVisited++
			return true, nil
		},
		VisitObject: func(id object.ID, kind object.Kind, path string) error {
			seen[id] = true
			rec, ok := table.Lookup(id)
			if !ok {
				return fmt.Errorf("%w: object %s reached by name-hint walk but missing from table",
					object.ErrClosureViolation, id)
			}
			rec.NameHash = st.NameHash(path)
			return nil
		},
	}

	if err := walker.Walk(roots, hooks); err != nil {
		return err
	}

	if commitsVisited != wantCommits {
		return fmt.Errorf("%w: name-hint walk visited %d commits, object table has %d",
			object.ErrCommitMismatch, commitsVisited, wantCommits)
	}
	return nil
}
