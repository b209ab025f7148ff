package walk

import (
	"path"

	"github.com/packbitmap/index/object"
	"github.com/packbitmap/index/store"
)

// GraphWalker is a reference Walker/Ancestry implementation driving a
// store.Store directly, with no caching of its own: every call recomputes
// from the store, which is the right tradeoff for the small in-memory
// fixtures it is meant for. A production deployment's revision walker
// (spec §1, out of scope) would use a commit-graph file for Ancestry and
// streaming pack access for Walk.
type GraphWalker struct {
	store store.Store
}

// NewGraphWalker returns a walker over st.
func NewGraphWalker(st store.Store) *GraphWalker {
	return &GraphWalker{store: st}
}

var _ Walker = (*GraphWalker)(nil)
var _ Ancestry = (*GraphWalker)(nil)

// Walk traverses from every root in order, depth-first: a commit's tree is
// emitted before its parents are visited, matching the original revision
// walker's commit-then-tree-then-parents order closely enough for the
// inclusion predicate's bookkeeping to hold.
func (w *GraphWalker) Walk(roots []object.ID, hooks Hooks) error {
	for _, root := range roots {
		if err := w.walkCommit(root, hooks); err != nil {
			return err
		}
	}
	return nil
}

func (w *GraphWalker) walkCommit(id object.ID, hooks Hooks) error {
	if hooks.Seen(id) {
		return nil
	}

	include, err := hooks.IncludeCommit(id)
	if err != nil {
		return err
	}
	if !include {
		return nil
	}

	tree, err := w.store.Tree(id)
	if err != nil {
		return err
	}
	if err := w.walkTree(tree, "", hooks); err != nil {
		return err
	}

	parents, err := w.store.Parents(id)
	if err != nil {
		return err
	}
	for _, parent := range parents {
		if err := w.walkCommit(parent, hooks); err != nil {
			return err
		}
	}
	return nil
}

func (w *GraphWalker) walkTree(id object.ID, at string, hooks Hooks) error {
	if hooks.Seen(id) {
		return nil
	}
	if err := hooks.VisitObject(id, object.KindTree, at); err != nil {
		return err
	}

	entries, err := w.store.Entries(id)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		childPath := path.Join(at, entry.Name)
		if entry.Kind == object.KindTree {
			if err := w.walkTree(entry.ID, childPath, hooks); err != nil {
				return err
			}
			continue
		}
		if hooks.Seen(entry.ID) {
			continue
		}
		if err := hooks.VisitObject(entry.ID, entry.Kind, childPath); err != nil {
			return err
		}
	}
	return nil
}

// IsAncestor reports whether ancestor is reachable from descendant by
// following parent edges. It is a plain BFS; see the GraphWalker doc
// comment for why that is acceptable here.
func (w *GraphWalker) IsAncestor(ancestor, descendant object.ID) (bool, error) {
	if ancestor == descendant {
		return true, nil
	}

	visited := make(map[object.ID]bool)
	queue := []object.ID{descendant}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if cur == ancestor {
			return true, nil
		}

		parents, err := w.store.Parents(cur)
		if err != nil {
			return false, err
		}
		queue = append(queue, parents...)
	}
	return false, nil
}

// Linearize returns the commits reachable from heads in a
// depth-first, newest-first order — a stand-in for whatever order a real
// revision walker would hand the Commit Selector (spec §4.3 takes that
// order as opaque input). Used by tests and the cmd example to build a
// selector input from a fixture store.
func (w *GraphWalker) Linearize(heads []object.ID) ([]object.ID, error) {
	var out []object.ID
	seen := make(map[object.ID]bool)

	var visit func(id object.ID) error
	visit = func(id object.ID) error {
		if seen[id] {
			return nil
		}
		seen[id] = true
		out = append(out, id)

		parents, err := w.store.Parents(id)
		if err != nil {
			return err
		}
		for _, parent := range parents {
			if err := visit(parent); err != nil {
				return err
			}
		}
		return nil
	}

	for _, head := range heads {
		if err := visit(head); err != nil {
			return nil, err
		}
	}
	return out, nil
}
