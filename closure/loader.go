// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

// Package closure implements the Closure Loader (spec §4.1): it
// populates the Object Table from a packfile and verifies every commit's
// parents are also present.
package closure

import (
	"fmt"

	"github.com/packbitmap/index/object"
	"github.com/packbitmap/index/store"
)

// Result bundles the two things the Closure Loader guarantees are
// complete and frozen once Load returns.
type Result struct {
	Table *object.Table
	Types *object.TypeIndex
}

// Load builds the Object Table and Type Index from st, then verifies pack
// closure: every commit's parents must already resolve to a record in the
// table. A missing parent is fatal (spec §4.1, §7).
func Load(st store.Store) (*Result, error) {
	n := st.NumObjects()
	table := object.NewTable(n)
	types := object.NewTypeIndex()

	for i := 0; i < n; i++ {
		id, kind, err := st.ObjectAt(i)
		if err != nil {
			return nil, fmt.Errorf("read object %d: %w", i, err)
		}

		rec, err := table.Add(id, kind)
		if err != nil {
			return nil, err
		}
		if err := types.Set(kind, rec.Position); err != nil {
			return nil, err
		}
	}

	for _, rec := range table.Records() {
		if rec.Kind != object.KindCommit {
			continue
		}

		parents, err := st.Parents(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve parents of commit %s: %w", rec.ID, err)
		}
		for _, parentID := range parents {
			parentRec, ok := table.Lookup(parentID)
			if !ok {
				return nil, fmt.Errorf("%w: commit %s references parent %s which is not packed",
					object.ErrClosureViolation, rec.ID, parentID)
			}
			parentRec.Referenced = true
		}
	}

	return &Result{Table: table, Types: types}, nil
}
