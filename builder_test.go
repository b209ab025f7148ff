package packbitmap

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/packbitmap/index/object"
	"github.com/packbitmap/index/serialize"
	"github.com/packbitmap/index/store"
	"github.com/packbitmap/index/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(b byte) object.ID {
	var i object.ID
	i[0] = b
	return i
}

// threeCommitFixture builds commit3 -> commit2 -> commit1, each with its
// own tree and blob, plus a checksum — a complete, closed pack.
func threeCommitFixture() (*store.Fixture, object.ID) {
	fx := store.NewFixture()
	fx.SetChecksum(id(0xFF))

	blob1, blob2, blob3 := id(10), id(11), id(12)
	fx.AddBlob(blob1)
	fx.AddBlob(blob2)
	fx.AddBlob(blob3)

	tree1, tree2, tree3 := id(20), id(21), id(22)
	fx.AddTree(tree1, store.Entry{ID: blob1, Kind: object.KindBlob, Name: "a"})
	fx.AddTree(tree2, store.Entry{ID: blob2, Kind: object.KindBlob, Name: "b"})
	fx.AddTree(tree3, store.Entry{ID: blob3, Kind: object.KindBlob, Name: "c"})

	c1, c2, c3 := id(1), id(2), id(3)
	fx.AddCommit(c1, tree1)
	fx.AddCommit(c2, tree2, c1)
	fx.AddCommit(c3, tree3, c2)

	return fx, c3
}

func TestBuildEndToEndWritesValidIndex(t *testing.T) {
	fx, head := threeCommitFixture()
	w := walk.NewGraphWalker(fx)

	dir := t.TempDir()
	builder := New(fx, w, WithHashCache(true))

	require.NoError(t, builder.Build([]object.ID{head}, dir, "pack-test"))

	raw, err := os.ReadFile(filepath.Join(dir, "pack-test.bitmap"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 32)

	assert.Equal(t, serialize.Magic[:], raw[0:4])
	assert.Equal(t, serialize.Version, binary.BigEndian.Uint16(raw[4:6]))
	assert.NotZero(t, binary.BigEndian.Uint16(raw[6:8])&serialize.OptHashCache)
	assert.Equal(t, uint32(3), binary.BigEndian.Uint32(raw[8:12]))

	var wantChecksum object.ID
	wantChecksum[0] = 0xFF
	assert.Equal(t, wantChecksum[:], raw[12:32])

	info, err := os.Stat(filepath.Join(dir, "pack-test.bitmap"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0444), info.Mode().Perm())
}

func TestBuildEmptyStoreStillWritesHeader(t *testing.T) {
	fx := store.NewFixture()
	w := walk.NewGraphWalker(fx)

	dir := t.TempDir()
	builder := New(fx, w)

	require.NoError(t, builder.Build(nil, dir, "pack-empty"))

	raw, err := os.ReadFile(filepath.Join(dir, "pack-empty.bitmap"))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), binary.BigEndian.Uint32(raw[8:12]))
}

func TestBuildRespectsMaxBitmapsCap(t *testing.T) {
	fx, head := threeCommitFixture()
	w := walk.NewGraphWalker(fx)

	dir := t.TempDir()
	builder := New(fx, w, WithMaxBitmaps(1))

	require.NoError(t, builder.Build([]object.ID{head}, dir, "pack-capped"))

	raw, err := os.ReadFile(filepath.Join(dir, "pack-capped.bitmap"))
	require.NoError(t, err)
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(raw[8:12]))
}

func TestBuildOverRandomDAGProducesOneEntryPerSelectedCommit(t *testing.T) {
	fx, head := store.GenerateRandomDAG(500)
	w := walk.NewGraphWalker(fx)

	dir := t.TempDir()
	builder := New(fx, w)
	require.NoError(t, builder.Build([]object.ID{head}, dir, "pack-random"))

	raw, err := os.ReadFile(filepath.Join(dir, "pack-random.bitmap"))
	require.NoError(t, err)
	entryCount := binary.BigEndian.Uint32(raw[8:12])
	assert.Greater(t, entryCount, uint32(0))
	assert.Less(t, entryCount, uint32(500), "the selector must thin out a 500-commit history")
}

func TestBuildLeavesNoFileOnClosureViolation(t *testing.T) {
	fx := store.NewFixture()
	tree := id(1)
	fx.AddTree(tree)
	commit := id(2)
	missingParent := id(99)
	fx.AddCommit(commit, tree, missingParent)

	w := walk.NewGraphWalker(fx)
	dir := t.TempDir()
	builder := New(fx, w)

	err := builder.Build([]object.ID{commit}, dir, "pack-bad")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed build must not leave any file behind")
}
