package closure

import (
	"testing"

	"github.com/packbitmap/index/object"
	"github.com/packbitmap/index/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(b byte) object.ID {
	var i object.ID
	i[0] = b
	return i
}

func TestLoadPopulatesTableAndTypeIndex(t *testing.T) {
	fx := store.NewFixture()
	blob := id(1)
	fx.AddBlob(blob)
	tree := id(2)
	fx.AddTree(tree, store.Entry{ID: blob, Kind: object.KindBlob, Name: "f"})
	commit := id(3)
	fx.AddCommit(commit, tree)

	result, err := Load(fx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Table.Len())

	rec, ok := result.Table.Lookup(commit)
	require.True(t, ok)
	assert.Equal(t, object.KindCommit, rec.Kind)
	assert.True(t, result.Types.Commits.Contains(rec.Position))
}

func TestLoadMarksReferencedParents(t *testing.T) {
	fx := store.NewFixture()
	tree := id(1)
	fx.AddTree(tree)
	parent := id(2)
	child := id(3)
	fx.AddCommit(parent, tree)
	fx.AddCommit(child, tree, parent)

	result, err := Load(fx)
	require.NoError(t, err)

	parentRec, ok := result.Table.Lookup(parent)
	require.True(t, ok)
	assert.True(t, parentRec.Referenced)

	childRec, ok := result.Table.Lookup(child)
	require.True(t, ok)
	assert.False(t, childRec.Referenced)
}

func TestLoadRejectsMissingParent(t *testing.T) {
	fx := store.NewFixture()
	tree := id(1)
	fx.AddTree(tree)
	commit := id(2)
	missingParent := id(99)
	fx.AddCommit(commit, tree, missingParent)

	_, err := Load(fx)
	require.Error(t, err)
	assert.ErrorIs(t, err, object.ErrClosureViolation)
}

func TestLoadEmptyStoreSucceeds(t *testing.T) {
	fx := store.NewFixture()
	result, err := Load(fx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Table.Len())
}
