package packbitmap

import (
	"fmt"
	"path/filepath"

	"github.com/packbitmap/index/closure"
	"github.com/packbitmap/index/namehint"
	"github.com/packbitmap/index/object"
	"github.com/packbitmap/index/reach"
	"github.com/packbitmap/index/selector"
	"github.com/packbitmap/index/serialize"
	"github.com/packbitmap/index/store"
	"github.com/packbitmap/index/walk"
	"github.com/packbitmap/index/xorc"
)

// Builder owns the state of a single build from start to finish: the
// Object Table and Type Index once the Closure Loader has run. The
// selected commits live only within a Build call. It replaces the original's
// single process-wide writer with an explicit, caller-owned value (spec
// Design Notes).
type Builder struct {
	store  store.Store
	walker walk.Walker
	opts   BuildOptions

	table *object.Table
	types *object.TypeIndex
}

// New returns a Builder over st, traversed with walker.
func New(st store.Store, walker walk.Walker, opts ...func(*BuildOptions)) *Builder {
	return &Builder{
		store:  st,
		walker: walker,
		opts:   NewOptions(opts...),
	}
}

// Build runs the full pipeline (spec §2's data flow) and writes the
// resulting index to <dir>/<packBasename>.bitmap, atomically (spec §6).
// heads are the commits to linearize the selector's input from — the
// equivalent of the ref tips a real revision walker would start from.
func (b *Builder) Build(heads []object.ID, dir, packBasename string) error {
	b.opts.Progress.Phase("Building bitmap type index")
	loaded, err := closure.Load(b.store)
	if err != nil {
		return fmt.Errorf("closure loader: %w", err)
	}
	b.table = loaded.Table
	b.types = loaded.Types
	b.opts.Progress.Count(b.table.Len(), b.table.Len())

	b.opts.Progress.Phase("Collecting name hints")
	if err := namehint.Collect(b.table, b.store, b.walker); err != nil {
		return fmt.Errorf("name-hint collector: %w", err)
	}

	b.opts.Progress.Phase("Selecting bitmap commits")
	ordered, err := b.walker.Linearize(heads)
	if err != nil {
		return fmt.Errorf("linearize commit history: %w", err)
	}
	selectedIDs, err := selector.Select(ordered, b.store, b.opts.MaxBitmaps)
	if err != nil {
		return fmt.Errorf("commit selector: %w", err)
	}
	b.opts.Progress.Count(len(selectedIDs), len(ordered))

	ancestry, ok := b.walker.(walk.Ancestry)
	if !ok {
		return fmt.Errorf("walker %T does not implement walk.Ancestry", b.walker)
	}

	b.opts.Progress.Phase("Building bitmaps")
	selected, err := reach.New(b.table, b.walker, ancestry).Build(selectedIDs)
	if err != nil {
		return fmt.Errorf("bitmap builder: %w", err)
	}
	b.opts.Progress.Count(len(selected), len(selected))

	xorc.Compress(selected)

	return b.write(selected, dir, packBasename)
}

func (b *Builder) write(selected []*reach.Selected, dir, packBasename string) (err error) {
	finalName := packBasename + ".bitmap"

	w, err := serialize.Create(dir, finalName)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			w.Abandon()
		}
	}()

	options := serialize.OptFullDAG
	if b.opts.HashCache {
		options |= serialize.OptHashCache
	}

	header := serialize.Header{
		Version:    serialize.Version,
		Options:    options,
		EntryCount: uint32(len(selected)),
		Checksum:   b.store.Checksum(),
	}
	if err = w.WriteHeader(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if b.opts.HashCache {
		if err = w.WriteHashCache(b.table); err != nil {
			return fmt.Errorf("write hash cache: %w", err)
		}
	}

	if err = w.WriteTypeIndex(b.types); err != nil {
		return fmt.Errorf("write type index: %w", err)
	}

	if err = w.WriteSelected(selected); err != nil {
		return fmt.Errorf("write selected commits: %w", err)
	}

	if err = w.Finish(); err != nil {
		return fmt.Errorf("finish: %w", err)
	}

	b.opts.Progress.Phase(fmt.Sprintf("Wrote %s", filepath.Join(dir, finalName)))
	return nil
}
